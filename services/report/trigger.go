package report

import (
	"context"
	"fmt"
	"time"

	"farmhub/models"
	"farmhub/services/schedule"

	"go.uber.org/zap"
)

// Report times are evaluated in island standard time, no daylight
// adjustment.
var islandZone = time.FixedZone("HST", -10*60*60)

// DefaultReportService implements Service on top of the schedule engine and
// a report builder.
type DefaultReportService struct {
	Schedule schedule.Service
	Builder  Builder
	Logger   *zap.Logger
	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

var _ Service = (*DefaultReportService)(nil)

func (s *DefaultReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureDailyReport loads the current schedule and runs the trigger decision
// once.
func (s *DefaultReportService) EnsureDailyReport(ctx context.Context) *models.ReportOutcome {
	matrix := s.Schedule.Load(ctx, schedule.LoadOptions{})
	return s.Decide(ctx, matrix)
}

// Decide is the auto-report state machine. Outcomes, in order of precedence:
// no-schedule, no-auto-time, pending(nextRun), exists, created(id),
// error(reason). Once a report exists for the schedule date, re-invocations
// observe exists and never re-create.
func (s *DefaultReportService) Decide(ctx context.Context, matrix *models.ScheduleMatrix) *models.ReportOutcome {
	if len(matrix.People) == 0 || len(matrix.Slots) == 0 {
		return &models.ReportOutcome{Status: models.ReportNoSchedule}
	}
	if matrix.ReportTime == "" {
		return &models.ReportOutcome{Status: models.ReportNoAutoTime}
	}

	target, err := time.Parse("15:04", matrix.ReportTime)
	if err != nil {
		s.log().Warn("unparseable report time setting", zap.String("reportTime", matrix.ReportTime))
		return &models.ReportOutcome{Status: models.ReportNoAutoTime}
	}

	now := s.now().In(islandZone)
	runAt := time.Date(now.Year(), now.Month(), now.Day(), target.Hour(), target.Minute(), 0, 0, islandZone)
	if now.Before(runAt) {
		return &models.ReportOutcome{
			Status:  models.ReportPending,
			NextRun: runAt.Format(time.RFC3339),
		}
	}

	dateLabel := matrix.ScheduleDate
	if dateLabel == "" {
		dateLabel = now.Format("01/02/2006")
	}

	exists, err := s.Builder.Exists(ctx, dateLabel)
	if err != nil {
		s.log().Error("report existence check failed", zap.Error(err))
		return &models.ReportOutcome{Status: models.ReportError, Error: err.Error()}
	}
	if exists {
		return &models.ReportOutcome{Status: models.ReportExists}
	}

	id, err := s.Builder.Create(ctx, matrix, dateLabel)
	if err != nil {
		s.log().Error("report creation failed", zap.Error(err))
		return &models.ReportOutcome{Status: models.ReportError, Error: err.Error()}
	}
	s.log().Info("daily report created",
		zap.String("dateLabel", dateLabel), zap.String("reportId", id))
	return &models.ReportOutcome{Status: models.ReportCreated, ReportID: id}
}

// CreateNow bypasses the time gate and creates a report for the current
// schedule. Fails when no schedule is assigned.
func (s *DefaultReportService) CreateNow(ctx context.Context) (string, error) {
	matrix := s.Schedule.Load(ctx, schedule.LoadOptions{})
	if len(matrix.People) == 0 || len(matrix.Slots) == 0 {
		return "", fmt.Errorf("no schedule has been assigned yet")
	}
	dateLabel := matrix.ScheduleDate
	if dateLabel == "" {
		dateLabel = s.now().In(islandZone).Format("01/02/2006")
	}
	return s.Builder.Create(ctx, matrix, dateLabel)
}

// ListReports delegates to the builder, which owns the reports parent.
func (s *DefaultReportService) ListReports(ctx context.Context) ([]models.ReportSummary, error) {
	return s.Builder.List(ctx)
}

func (s *DefaultReportService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
