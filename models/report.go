package models

// ReportStatus enumerates the outcomes of one auto-report evaluation.
type ReportStatus string

const (
	ReportNoSchedule ReportStatus = "no-schedule"
	ReportNoAutoTime ReportStatus = "no-auto-time"
	ReportPending    ReportStatus = "pending"
	ReportExists     ReportStatus = "exists"
	ReportCreated    ReportStatus = "created"
	ReportError      ReportStatus = "error"
)

// ReportOutcome is the result of one Auto-Report Trigger evaluation.
type ReportOutcome struct {
	Status   ReportStatus `json:"status"`
	NextRun  string       `json:"nextRun,omitempty"`
	ReportID string       `json:"reportId,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// ReportSummary is one entry in the report listing.
type ReportSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
}
