package report

import (
	"context"
	"testing"

	"farmhub/models"
	"farmhub/store"
	"farmhub/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportsSchema() map[string]store.FieldSchema {
	return map[string]store.FieldSchema{
		"Name": {Type: "title"},
		"Date": {Type: "date"},
	}
}

func matrixFor(dateLabel string) *models.ScheduleMatrix {
	return &models.ScheduleMatrix{
		People:       []string{"Ana"},
		Slots:        []models.SlotDescriptor{{Key: "1 | Breakfast (7:00-8:00)"}},
		Cells:        [][]string{{"Feed cows"}},
		ScheduleDate: dateLabel,
	}
}

func TestBuilderContainerMode(t *testing.T) {
	fake := storetest.New()
	rootID := fake.AddContainer("", "Daily Reports", reportsSchema())
	builder := &StoreBuilder{Store: fake, RootID: rootID}
	ctx := context.Background()

	exists, err := builder.Exists(ctx, "06/09/2025")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := builder.Create(ctx, matrixFor("06/09/2025"), "06/09/2025")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	exists, err = builder.Exists(ctx, "06/09/2025")
	require.NoError(t, err)
	assert.True(t, exists)

	rows := fake.ActiveRows(rootID)
	require.Len(t, rows, 1)
	assert.Equal(t, "Daily Report - 06/09/2025", rows[0].Fields["Name"].PlainText())
	require.NotNil(t, rows[0].Fields["Date"].Date)
	assert.Equal(t, "2025-06-09", rows[0].Fields["Date"].Date.Start)
}

func TestBuilderContainerModeList(t *testing.T) {
	fake := storetest.New()
	rootID := fake.AddContainer("", "Daily Reports", reportsSchema())
	builder := &StoreBuilder{Store: fake, RootID: rootID}
	ctx := context.Background()

	_, err := builder.Create(ctx, matrixFor("06/09/2025"), "06/09/2025")
	require.NoError(t, err)
	_, err = builder.Create(ctx, matrixFor("06/16/2025"), "06/16/2025")
	require.NoError(t, err)

	reports, err := builder.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	// Newest first.
	assert.Equal(t, "Daily Report - 06/16/2025", reports[0].Title)
	assert.Equal(t, "2025-06-16", reports[0].Date)
	assert.Equal(t, "Daily Report - 06/09/2025", reports[1].Title)
}

func TestBuilderPageMode(t *testing.T) {
	fake := storetest.New()
	rootID := "reports-page"
	fake.AddPage(rootID)
	builder := &StoreBuilder{Store: fake, RootID: rootID}
	ctx := context.Background()

	exists, err := builder.Exists(ctx, "06/09/2025")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := builder.Create(ctx, matrixFor("06/09/2025"), "06/09/2025")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, fake.CreatePageCalls)

	exists, err = builder.Exists(ctx, "06/09/2025")
	require.NoError(t, err)
	assert.True(t, exists)

	reports, err := builder.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Daily Report - 06/09/2025", reports[0].Title)
}

func TestBuilderUnconfiguredRoot(t *testing.T) {
	builder := &StoreBuilder{Store: storetest.New()}
	_, err := builder.Exists(context.Background(), "06/09/2025")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "REPORTS_ROOT_ID", cfgErr.Key)
}
