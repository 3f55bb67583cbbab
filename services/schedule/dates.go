package schedule

import (
	"regexp"
	"strings"
	"time"
)

// Schedule dates are canonical MM/DD/YYYY labels everywhere in the engine.
const dateLabelLayout = "01/02/2006"

// Settings clock times are read in island standard time, which never
// observes daylight saving.
var islandZone = time.FixedZone("HST", -10*60*60)

var dateInputLayouts = []string{
	dateLabelLayout,
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// formatDateLabel canonicalizes a date string to MM/DD/YYYY. Unparseable
// input is returned unchanged, which makes formatting idempotent.
func formatDateLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	dt, ok := parseDateLabel(trimmed)
	if !ok {
		return trimmed
	}
	return dt.Format(dateLabelLayout)
}

func parseDateLabel(raw string) (time.Time, bool) {
	for _, layout := range dateInputLayouts {
		if dt, err := time.Parse(layout, raw); err == nil {
			return dt, true
		}
	}
	return time.Time{}, false
}

// scheduleTitleForDate returns the expected container title for a date:
// the label alone for live, "Staging - <label>" for staging.
func scheduleTitleForDate(dateLabel string, staging bool) string {
	formatted := formatDateLabel(dateLabel)
	if staging {
		return "Staging - " + formatted
	}
	return formatted
}

// weeklyScheduleTitleForDate returns the expected weekly container title.
func weeklyScheduleTitleForDate(dateLabel string) string {
	return formatDateLabel(dateLabel) + " - Weekly"
}

var stagingTitlePattern = regexp.MustCompile(`(?i)^staging\s*-\s*(.+)$`)

// parseScheduleTitle splits a container title into its date label and
// live/staging flag. Titles that do not carry a parseable date are rejected.
func parseScheduleTitle(title string) (dateLabel string, staging bool, ok bool) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", false, false
	}
	raw := trimmed
	if m := stagingTitlePattern.FindStringSubmatch(trimmed); m != nil {
		raw = strings.TrimSpace(m[1])
		staging = true
	}
	if _, parsed := parseDateLabel(raw); !parsed {
		return "", false, false
	}
	return formatDateLabel(raw), staging, true
}

// mondayDateLabel snaps a date label to the Monday of its week.
func mondayDateLabel(dateLabel string) string {
	dt, ok := parseDateLabel(dateLabel)
	if !ok {
		return dateLabel
	}
	back := (int(dt.Weekday()) + 6) % 7
	return dt.AddDate(0, 0, -back).Format(dateLabelLayout)
}

// islandClockTime reduces a store timestamp to a 24-hour HH:MM string in
// island standard time. Unparseable input yields "", never a zero time.
func islandClockTime(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02T15:04:05Z07:00"} {
		if dt, err := time.Parse(layout, raw); err == nil {
			return dt.In(islandZone).Format("15:04")
		}
	}
	return ""
}
