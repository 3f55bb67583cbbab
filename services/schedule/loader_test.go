package schedule

import (
	"context"
	"errors"
	"testing"

	"farmhub/store"
	"farmhub/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsMatrix(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", true, map[string]string{
		"1 | Breakfast (7:00-8:00)":   "Feed cows\nbring extra hay",
		"2 | Field Work (9:00-12:00)": "-",
	})
	addPerson(fx.fake, fx.liveID, "Ben", false, map[string]string{
		"1 | Breakfast (7:00-8:00)": "Collect eggs",
	})

	matrix := fx.svc.Load(context.Background(), LoadOptions{})

	assert.Empty(t, matrix.Message)
	assert.Equal(t, "06/09/2025", matrix.ScheduleDate)
	assert.Equal(t, "17:00", matrix.ReportTime)
	assert.Equal(t, "04:00", matrix.TaskResetTime)
	assert.Equal(t, []string{"Ana", "Ben"}, matrix.People)
	assert.Equal(t, []bool{true, false}, matrix.ReportFlags)

	require.Len(t, matrix.Slots, 2)
	assert.Equal(t, "Breakfast", matrix.Slots[0].Label)
	assert.True(t, matrix.Slots[0].IsMeal)
	assert.Equal(t, "Field Work", matrix.Slots[1].Label)

	// Every row carries one cell per slot; sentinel and multi-line values
	// normalize away.
	require.Len(t, matrix.Cells, 2)
	assert.Equal(t, []string{"Feed cows", ""}, matrix.Cells[0])
	assert.Equal(t, []string{"Collect eggs", ""}, matrix.Cells[1])
}

func TestLoadSkipsNamelessRows(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", false, nil)
	fx.fake.AddRow(fx.liveID, map[string]store.FieldValue{
		"1 | Breakfast (7:00-8:00)": store.RichTextValue("orphaned value"),
	})

	matrix := fx.svc.Load(context.Background(), LoadOptions{})
	assert.Equal(t, []string{"Ana"}, matrix.People)
	assert.Len(t, matrix.Cells, 1)
}

func TestLoadEmptyContainer(t *testing.T) {
	fx := newPagedFixture(t)

	matrix := fx.svc.Load(context.Background(), LoadOptions{})
	assert.Empty(t, matrix.Message)
	assert.Empty(t, matrix.People)
	assert.Empty(t, matrix.Slots)
	assert.Empty(t, matrix.Cells)
	assert.Equal(t, "06/09/2025", matrix.ScheduleDate)
}

func TestLoadDegradesOnStoreFailure(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", false, nil)
	fx.fake.FailQueryAll[fx.liveID] = errors.New("store unavailable")

	matrix := fx.svc.Load(context.Background(), LoadOptions{})

	assert.Equal(t, "No schedule has been assigned yet.", matrix.Message)
	assert.NotNil(t, matrix.People)
	assert.NotNil(t, matrix.Slots)
	assert.NotNil(t, matrix.Cells)
	assert.Empty(t, matrix.People)
}

func TestLoadDirectRootTakesDateFromTitle(t *testing.T) {
	fake := storetest.New()
	rootID := fake.AddContainer("", "06/09/2025", scheduleSchema())
	svc := &DefaultScheduleService{Store: fake, RootID: rootID}
	addPerson(fake, rootID, "Ana", false, map[string]string{
		"1 | Breakfast (7:00-8:00)": "Feed cows",
	})

	matrix := svc.Load(context.Background(), LoadOptions{})
	assert.Equal(t, "06/09/2025", matrix.ScheduleDate)
	assert.Equal(t, []string{"Ana"}, matrix.People)
}
