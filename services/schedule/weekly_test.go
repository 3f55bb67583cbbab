package schedule

import (
	"context"
	"testing"

	"farmhub/store"
	"farmhub/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklySchema() map[string]store.FieldSchema {
	return map[string]store.FieldSchema{
		"Name":          {Type: "title"},
		"Breakfast":     {Type: "rich_text"},
		"Dinner":        {Type: "rich_text"},
		"Saturday AM":   {Type: "rich_text"},
		"Sunday PM":     {Type: "rich_text"},
		"Weekend Notes": {Type: "rich_text"},
	}
}

func addWeeklyRow(fake *storetest.Fake, containerID, name string, values map[string]string) {
	fields := map[string]store.FieldValue{
		"Name": store.TitleValue(name),
	}
	for key, value := range values {
		fields[key] = store.RichTextValue(value)
	}
	fake.AddRow(containerID, fields)
}

func TestLoadWeekPartitionsRows(t *testing.T) {
	fx := newPagedFixture(t)
	weeklyID := fx.fake.AddContainer(testRootID, "06/09/2025 - Weekly", weeklySchema())

	// Store order deliberately shuffles the weekdays.
	addWeeklyRow(fx.fake, weeklyID, "Tuesday", map[string]string{
		"Breakfast": "Ben",
	})
	addWeeklyRow(fx.fake, weeklyID, "Monday", map[string]string{
		"Breakfast": "Ana, Ben",
		"Dinner":    "Cal",
	})
	addWeeklyRow(fx.fake, weeklyID, "Water garden", map[string]string{
		"Saturday AM": "Ana\nBen",
	})
	addWeeklyRow(fx.fake, weeklyID, "Clean coop", map[string]string{
		"Sunday PM": "Cal",
	})

	// A mid-week date resolves to the same Monday-keyed weekly container.
	view, err := fx.svc.LoadWeek(context.Background(), "06/11/2025")
	require.NoError(t, err)

	assert.Equal(t, "06/09/2025", view.WeekLabel)
	// Saturday/Sunday task columns stay in the overview; only columns named
	// "weekend" are filtered out of it.
	assert.Equal(t, []string{"Breakfast", "Dinner", "Saturday AM", "Sunday PM"}, view.WeekOverview.Columns)
	assert.NotContains(t, view.WeekOverview.Columns, "Weekend Notes")

	require.Len(t, view.WeekOverview.Rows, 2)
	assert.Equal(t, "Monday", view.WeekOverview.Rows[0].Day)
	assert.Equal(t, []string{"Ana", "Ben"}, view.WeekOverview.Rows[0].Assignments["Breakfast"])
	assert.Equal(t, []string{"Cal"}, view.WeekOverview.Rows[0].Assignments["Dinner"])
	assert.Equal(t, "Tuesday", view.WeekOverview.Rows[1].Day)

	assert.Equal(t, []string{"Saturday AM", "Sunday PM"}, view.WeekendSchedule.Columns)
	require.Len(t, view.WeekendSchedule.Rows, 2)
	// Task rows keep store order.
	assert.Equal(t, "Water garden", view.WeekendSchedule.Rows[0].Task)
	assert.Equal(t, []string{"Ana", "Ben"}, view.WeekendSchedule.Rows[0].Assignments["Saturday AM"])
	assert.Equal(t, "Clean coop", view.WeekendSchedule.Rows[1].Task)
}

func TestLoadWeekUsesSelectedDate(t *testing.T) {
	fx := newPagedFixture(t)
	weeklyID := fx.fake.AddContainer(testRootID, "06/09/2025 - Weekly", weeklySchema())
	addWeeklyRow(fx.fake, weeklyID, "Monday", map[string]string{"Breakfast": "Ana"})

	view, err := fx.svc.LoadWeek(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "06/09/2025", view.WeekLabel)
}

func TestLoadWeekMissingContainer(t *testing.T) {
	fx := newPagedFixture(t)
	_, err := fx.svc.LoadWeek(context.Background(), "06/16/2025")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLoadWeekDirectRootRejected(t *testing.T) {
	fake := storetest.New()
	rootID := fake.AddContainer("", "Barn Duties", scheduleSchema())
	svc := &DefaultScheduleService{Store: fake, RootID: rootID}

	_, err := svc.LoadWeek(context.Background(), "06/09/2025")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
