package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmhub/models"
	"farmhub/services/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type builderStub struct {
	exists    bool
	existsErr error
	createID  string
	createErr error
	created   int
	list      []models.ReportSummary
}

func (b *builderStub) Exists(context.Context, string) (bool, error) {
	return b.exists, b.existsErr
}

func (b *builderStub) Create(_ context.Context, _ *models.ScheduleMatrix, _ string) (string, error) {
	if b.createErr != nil {
		return "", b.createErr
	}
	b.created++
	return b.createID, nil
}

func (b *builderStub) List(context.Context) ([]models.ReportSummary, error) {
	return b.list, nil
}

type scheduleStub struct {
	schedule.Service
	matrix *models.ScheduleMatrix
}

func (s *scheduleStub) Load(context.Context, schedule.LoadOptions) *models.ScheduleMatrix {
	return s.matrix
}

func fixedNow(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 9, hour, minute, 0, 0, islandZone)
	}
}

func assignedMatrix(reportTime string) *models.ScheduleMatrix {
	return &models.ScheduleMatrix{
		People:       []string{"Ana"},
		Slots:        []models.SlotDescriptor{{Key: "1 | Breakfast (7:00-8:00)", Label: "Breakfast"}},
		Cells:        [][]string{{"Feed cows"}},
		ScheduleDate: "06/09/2025",
		ReportTime:   reportTime,
	}
}

func TestDecideNoSchedule(t *testing.T) {
	svc := &DefaultReportService{Builder: &builderStub{}, Now: fixedNow(18, 0)}
	outcome := svc.Decide(context.Background(), &models.ScheduleMatrix{})
	assert.Equal(t, models.ReportNoSchedule, outcome.Status)
}

func TestDecideNoAutoTime(t *testing.T) {
	svc := &DefaultReportService{Builder: &builderStub{}, Now: fixedNow(18, 0)}

	outcome := svc.Decide(context.Background(), assignedMatrix(""))
	assert.Equal(t, models.ReportNoAutoTime, outcome.Status)

	// Unparseable settings degrade the same way.
	outcome = svc.Decide(context.Background(), assignedMatrix("five pm"))
	assert.Equal(t, models.ReportNoAutoTime, outcome.Status)
}

func TestDecidePending(t *testing.T) {
	builder := &builderStub{}
	svc := &DefaultReportService{Builder: builder, Now: fixedNow(16, 30)}

	outcome := svc.Decide(context.Background(), assignedMatrix("17:00"))
	assert.Equal(t, models.ReportPending, outcome.Status)
	assert.Equal(t, time.Date(2025, 6, 9, 17, 0, 0, 0, islandZone).Format(time.RFC3339), outcome.NextRun)
	assert.Zero(t, builder.created, "no report before the configured time")
}

func TestDecideExists(t *testing.T) {
	builder := &builderStub{exists: true}
	svc := &DefaultReportService{Builder: builder, Now: fixedNow(17, 5)}

	outcome := svc.Decide(context.Background(), assignedMatrix("17:00"))
	assert.Equal(t, models.ReportExists, outcome.Status)
	assert.Zero(t, builder.created)
}

func TestDecideCreates(t *testing.T) {
	builder := &builderStub{createID: "report-1"}
	svc := &DefaultReportService{Builder: builder, Now: fixedNow(17, 5)}

	outcome := svc.Decide(context.Background(), assignedMatrix("17:00"))
	assert.Equal(t, models.ReportCreated, outcome.Status)
	assert.Equal(t, "report-1", outcome.ReportID)
	assert.Equal(t, 1, builder.created)
}

func TestDecideBuilderFailures(t *testing.T) {
	svc := &DefaultReportService{
		Builder: &builderStub{existsErr: errors.New("store down")},
		Now:     fixedNow(17, 5),
	}
	outcome := svc.Decide(context.Background(), assignedMatrix("17:00"))
	assert.Equal(t, models.ReportError, outcome.Status)
	assert.Contains(t, outcome.Error, "store down")

	svc = &DefaultReportService{
		Builder: &builderStub{createErr: errors.New("rejected")},
		Now:     fixedNow(17, 5),
	}
	outcome = svc.Decide(context.Background(), assignedMatrix("17:00"))
	assert.Equal(t, models.ReportError, outcome.Status)
	assert.Contains(t, outcome.Error, "rejected")
}

func TestEnsureDailyReport(t *testing.T) {
	builder := &builderStub{createID: "report-1"}
	svc := &DefaultReportService{
		Schedule: &scheduleStub{matrix: assignedMatrix("17:00")},
		Builder:  builder,
		Now:      fixedNow(17, 5),
	}
	outcome := svc.EnsureDailyReport(context.Background())
	assert.Equal(t, models.ReportCreated, outcome.Status)

	// A second evaluation observes the existing report and does not
	// re-create.
	builder.exists = true
	outcome = svc.EnsureDailyReport(context.Background())
	assert.Equal(t, models.ReportExists, outcome.Status)
	assert.Equal(t, 1, builder.created)
}

func TestCreateNowBypassesTimeGate(t *testing.T) {
	builder := &builderStub{createID: "report-1"}
	svc := &DefaultReportService{
		Schedule: &scheduleStub{matrix: assignedMatrix("23:59")},
		Builder:  builder,
		Now:      fixedNow(8, 0),
	}
	id, err := svc.CreateNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "report-1", id)
}

func TestCreateNowWithoutSchedule(t *testing.T) {
	svc := &DefaultReportService{
		Schedule: &scheduleStub{matrix: &models.ScheduleMatrix{Message: "No schedule has been assigned yet."}},
		Builder:  &builderStub{},
		Now:      fixedNow(8, 0),
	}
	_, err := svc.CreateNow(context.Background())
	assert.Error(t, err)
}
