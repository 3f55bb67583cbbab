package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"farmhub/models"
)

// Reserved schema fields that never describe a slot.
const (
	personFieldKey = "Person"
	reportFieldKey = "Report"
)

var (
	slotOrderPattern = regexp.MustCompile(`^(\d+)\s*\|\s*(.+)$`)
	slotTimePattern  = regexp.MustCompile(`^(.+?)\s*\((.+)\)\s*$`)
	mealPattern      = regexp.MustCompile(`(?i)breakfast|lunch|dinner`)
)

// parseSlotKey turns a raw schema field name into a typed slot descriptor.
// "3 | Lunch (11:00-12:00)" carries an order prefix and a time range; both
// parts are optional.
func parseSlotKey(key string) models.SlotDescriptor {
	slot := models.SlotDescriptor{Key: key, Order: models.UnrankedOrder}

	rest := key
	if m := slotOrderPattern.FindStringSubmatch(key); m != nil {
		if order, err := strconv.Atoi(m[1]); err == nil {
			slot.Order = order
		}
		rest = m[2]
	}
	rest = strings.TrimSpace(rest)

	if m := slotTimePattern.FindStringSubmatch(rest); m != nil {
		slot.Label = strings.TrimSpace(m[1])
		slot.TimeRange = strings.TrimSpace(m[2])
	} else {
		slot.Label = rest
	}
	slot.IsMeal = mealPattern.MatchString(slot.Label)
	return slot
}

// slotDescriptors parses every eligible key and sorts ascending by
// (order, label): ranked slots first, unranked ones alphabetical after them.
func slotDescriptors(keys []string) []models.SlotDescriptor {
	slots := make([]models.SlotDescriptor, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, parseSlotKey(key))
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Order != slots[j].Order {
			return slots[i].Order < slots[j].Order
		}
		return slots[i].Label < slots[j].Label
	})
	return slots
}

// normalizeTaskValue reduces a raw cell value to one line of task text.
// A bare "-" is the product's sentinel for "no assignment" and maps to "".
func normalizeTaskValue(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	first, _, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimSpace(first)
	if first == "-" {
		return ""
	}
	return first
}

var namesListSeparator = regexp.MustCompile(`[\n,]+`)

// parseNamesList splits a cell on commas and newlines into trimmed,
// non-empty names.
func parseNamesList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := namesListSeparator.Split(value, -1)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
