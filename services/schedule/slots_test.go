package schedule

import (
	"testing"

	"farmhub/models"

	"github.com/stretchr/testify/assert"
)

func TestParseSlotKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want models.SlotDescriptor
	}{
		{
			name: "order and time range",
			key:  "3 | Lunch (11:00-12:00)",
			want: models.SlotDescriptor{Key: "3 | Lunch (11:00-12:00)", Label: "Lunch", TimeRange: "11:00-12:00", IsMeal: true, Order: 3},
		},
		{
			name: "order only",
			key:  "1 | Morning Chores",
			want: models.SlotDescriptor{Key: "1 | Morning Chores", Label: "Morning Chores", Order: 1},
		},
		{
			name: "time range only",
			key:  "Field Work (09:00-12:00)",
			want: models.SlotDescriptor{Key: "Field Work (09:00-12:00)", Label: "Field Work", TimeRange: "09:00-12:00", Order: models.UnrankedOrder},
		},
		{
			name: "bare label",
			key:  "Notes",
			want: models.SlotDescriptor{Key: "Notes", Label: "Notes", Order: models.UnrankedOrder},
		},
		{
			name: "meal detection is case-insensitive",
			key:  "2 | BREAKFAST prep",
			want: models.SlotDescriptor{Key: "2 | BREAKFAST prep", Label: "BREAKFAST prep", IsMeal: true, Order: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlotKey(tt.key))
		})
	}
}

func TestSlotDescriptorsOrdering(t *testing.T) {
	slots := slotDescriptors([]string{
		"Zeta Chores",
		"2 | Lunch (12:00-13:00)",
		"Alpha Chores",
		"1 | Breakfast (7:00-8:00)",
	})

	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, slot.Key)
	}
	// Ranked slots first by order, unranked alphabetical after them.
	assert.Equal(t, []string{
		"1 | Breakfast (7:00-8:00)",
		"2 | Lunch (12:00-13:00)",
		"Alpha Chores",
		"Zeta Chores",
	}, keys)
}

func TestNormalizeTaskValue(t *testing.T) {
	assert.Equal(t, "", normalizeTaskValue(""))
	assert.Equal(t, "", normalizeTaskValue("   "))
	assert.Equal(t, "", normalizeTaskValue("-"))
	assert.Equal(t, "", normalizeTaskValue("  -  \nleftover detail"))
	assert.Equal(t, "Feed cows", normalizeTaskValue("Feed cows"))
	assert.Equal(t, "Feed cows", normalizeTaskValue("  Feed cows  \nbring extra hay\nand water"))
}

func TestParseNamesList(t *testing.T) {
	assert.Equal(t, []string{}, parseNamesList(""))
	assert.Equal(t, []string{"Ana", "Ben"}, parseNamesList("Ana, Ben"))
	assert.Equal(t, []string{"Ana", "Ben", "Cal"}, parseNamesList("Ana\nBen,Cal"))
	assert.Equal(t, []string{"Ana"}, parseNamesList(" Ana ,, \n "))
}
