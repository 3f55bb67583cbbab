package report

import (
	"context"
	"fmt"

	"farmhub/models"
)

// ConfigError reports a required external identifier that is not configured.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configError: %s is not set", e.Key)
}

// Builder is the external Report Builder collaborator: it owns report
// existence checks and report creation for a schedule date. Reports are
// created at most once per date.
type Builder interface {
	Exists(ctx context.Context, dateLabel string) (bool, error)
	Create(ctx context.Context, matrix *models.ScheduleMatrix, dateLabel string) (string, error)
	List(ctx context.Context) ([]models.ReportSummary, error)
}

// Service evaluates and triggers the daily report.
type Service interface {
	// EnsureDailyReport loads the current schedule and decides whether the
	// automatic report is due, already produced, or not yet eligible. Safe
	// to re-invoke on a fixed interval.
	EnsureDailyReport(ctx context.Context) *models.ReportOutcome

	// CreateNow creates a report for the current schedule unconditionally.
	CreateNow(ctx context.Context) (string, error)

	// ListReports lists produced reports, newest first.
	ListReports(ctx context.Context) ([]models.ReportSummary, error)
}
