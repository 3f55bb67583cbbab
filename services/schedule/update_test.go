package schedule

import (
	"context"
	"testing"

	"farmhub/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAssignmentReportFlag(t *testing.T) {
	fx := newPagedFixture(t)
	rowID := addPerson(fx.fake, fx.liveID, "Ana", false, nil)

	checked := true
	result, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:      "Ana",
		SlotKey:     "Report",
		ReportValue: &checked,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Checked)
	assert.True(t, *result.Checked)

	row, err := fx.fake.RetrievePage(context.Background(), rowID)
	require.NoError(t, err)
	require.NotNil(t, row.Fields["Report"].Checkbox)
	assert.True(t, *row.Fields["Report"].Checkbox)
}

func TestUpdateAssignmentAddAndRemove(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", false, map[string]string{
		"2 | Field Work (9:00-12:00)": "Fix fence, Muck stalls",
	})

	result, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:     "Ana",
		SlotKey:    "2 | Field Work (9:00-12:00)",
		AddTask:    "Water garden",
		RemoveTask: "muck stalls",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix fence, Water garden", result.Value)
}

func TestUpdateAssignmentAddIsDeduplicated(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", false, map[string]string{
		"2 | Field Work (9:00-12:00)": "Fix fence",
	})

	result, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:  "Ana",
		SlotKey: "2 | Field Work (9:00-12:00)",
		AddTask: "FIX FENCE",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix fence", result.Value)
}

func TestUpdateAssignmentReplaceValue(t *testing.T) {
	fx := newPagedFixture(t)
	addPerson(fx.fake, fx.liveID, "Ana", false, map[string]string{
		"2 | Field Work (9:00-12:00)": "Fix fence",
	})

	replacement := "Water garden, Plant beans"
	result, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:       "Ana",
		SlotKey:      "2 | Field Work (9:00-12:00)",
		ReplaceValue: &replacement,
	})
	require.NoError(t, err)
	assert.Equal(t, "Water garden, Plant beans", result.Value)
}

func TestUpdateAssignmentChoiceSlotExtendsOptions(t *testing.T) {
	fx := newPagedFixture(t)
	choiceKey := "3 | Evening Chores"
	require.NoError(t, fx.fake.UpdateContainerSchema(context.Background(), fx.liveID, map[string]store.FieldSchema{
		choiceKey: store.MultiSelectSchema([]store.Option{{Name: "Feed cows"}}),
	}))
	rowID := fx.fake.AddRow(fx.liveID, map[string]store.FieldValue{
		"Person":  store.TitleValue("Ana"),
		choiceKey: store.MultiSelectValue([]string{"Feed cows"}),
	})

	result, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:  "Ana",
		SlotKey: choiceKey,
		AddTask: "Fix fence",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Feed cows", "Fix fence"}, result.Values)

	// The unknown choice name was added to the field's option list first.
	schema := fx.fake.Container(fx.liveID).Schema[choiceKey]
	var names []string
	for _, opt := range schema.MultiSelectOptions() {
		names = append(names, opt.Name)
	}
	assert.Equal(t, []string{"Feed cows", "Fix fence"}, names)

	row, err := fx.fake.RetrievePage(context.Background(), rowID)
	require.NoError(t, err)
	assert.Equal(t, "Feed cows, Fix fence", row.Fields[choiceKey].PlainText())
}

func TestUpdateAssignmentUnknownPerson(t *testing.T) {
	fx := newPagedFixture(t)
	_, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{
		Person:  "Nobody",
		SlotKey: "Report",
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateAssignmentValidation(t *testing.T) {
	fx := newPagedFixture(t)
	_, err := fx.svc.UpdateAssignment(context.Background(), UpdateRequest{Person: "Ana"})
	assert.Error(t, err)
	_, err = fx.svc.UpdateAssignment(context.Background(), UpdateRequest{SlotKey: "Report"})
	assert.Error(t, err)
}
