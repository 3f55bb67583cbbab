package schedule

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"farmhub/models"
)

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// weekendColumnOrder is the fixed output order of the weekend task columns.
// Columns absent from the schema are simply omitted.
var weekendColumnOrder = []string{"Saturday AM", "Saturday PM", "Sunday AM", "Sunday PM"}

var weekendKeyPattern = regexp.MustCompile(`(?i)weekend`)

// LoadWeek resolves and aggregates the weekly container for the week holding
// dateLabel (or the globally selected date), splitting rows into the weekday
// overview and the weekend task schedule.
func (s *DefaultScheduleService) LoadWeek(ctx context.Context, dateLabel string) (*models.WeeklyScheduleView, error) {
	discovery, err := s.discoverRoot(ctx)
	if err != nil {
		return nil, err
	}
	if discovery.direct != nil {
		return nil, NewNotFoundError("weekly schedules require a paged schedule root")
	}
	containers := childContainers(discovery.children)

	baseDate := ""
	if dateLabel != "" {
		baseDate = formatDateLabel(dateLabel)
	} else {
		settings, err := s.readSettings(ctx, containers)
		if err != nil {
			return nil, err
		}
		if settings.selectedDate != "" {
			baseDate = formatDateLabel(settings.selectedDate)
		}
	}
	if baseDate == "" {
		return nil, NewNotFoundError("Selected Schedule date is not configured in the store")
	}

	mondayLabel := mondayDateLabel(baseDate)
	expectedTitle := weeklyScheduleTitleForDate(mondayLabel)
	target, ok := findContainerByTitle(containers, expectedTitle, false)
	if !ok {
		return nil, NewNotFoundError("no weekly schedule container found for %s", expectedTitle)
	}

	meta, err := s.Store.RetrieveContainer(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	titleKey, ok := meta.TitleFieldKey()
	if !ok {
		titleKey = "Name"
	}

	var columnKeys []string
	for key := range meta.Schema {
		if key != titleKey {
			columnKeys = append(columnKeys, key)
		}
	}
	sort.Strings(columnKeys)

	// Only columns literally named "weekend" leave the overview; the
	// Saturday/Sunday task columns stay in it even though they also form the
	// weekend set.
	var overviewColumns []string
	for _, key := range columnKeys {
		if !weekendKeyPattern.MatchString(key) {
			overviewColumns = append(overviewColumns, key)
		}
	}

	type weekendColumn struct {
		label string
		key   string
	}
	var weekendColumns []weekendColumn
	for _, label := range weekendColumnOrder {
		for _, key := range columnKeys {
			if strings.EqualFold(key, label) {
				weekendColumns = append(weekendColumns, weekendColumn{label: label, key: key})
				break
			}
		}
	}

	rows, err := s.Store.QueryAllContainerRows(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	daySet := make(map[string]struct{}, len(weekdayOrder))
	for _, day := range weekdayOrder {
		daySet[strings.ToLower(day)] = struct{}{}
	}

	view := &models.WeeklyScheduleView{
		WeekLabel: mondayLabel,
		WeekOverview: models.WeekOverview{
			Columns: overviewColumns,
			Rows:    []models.WeekdayRow{},
		},
		WeekendSchedule: models.WeekendSchedule{
			Columns: make([]string, 0, len(weekendColumns)),
			Rows:    []models.WeekendRow{},
		},
	}
	for _, col := range weekendColumns {
		view.WeekendSchedule.Columns = append(view.WeekendSchedule.Columns, col.label)
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.Fields[titleKey].PlainText())
		if name == "" {
			continue
		}

		if _, isDay := daySet[strings.ToLower(name)]; isDay {
			assignments := make(map[string][]string, len(overviewColumns))
			for _, column := range overviewColumns {
				assignments[column] = parseNamesList(row.Fields[column].PlainText())
			}
			view.WeekOverview.Rows = append(view.WeekOverview.Rows, models.WeekdayRow{
				Day:         name,
				Assignments: assignments,
			})
			continue
		}

		assignments := make(map[string][]string, len(weekendColumns))
		for _, col := range weekendColumns {
			assignments[col.label] = parseNamesList(row.Fields[col.key].PlainText())
		}
		// Weekend/task rows keep store order.
		view.WeekendSchedule.Rows = append(view.WeekendSchedule.Rows, models.WeekendRow{
			Task:        name,
			Assignments: assignments,
		})
	}

	dayIndex := make(map[string]int, len(weekdayOrder))
	for i, day := range weekdayOrder {
		dayIndex[strings.ToLower(day)] = i
	}
	sort.SliceStable(view.WeekOverview.Rows, func(i, j int) bool {
		return dayIndex[strings.ToLower(view.WeekOverview.Rows[i].Day)] <
			dayIndex[strings.ToLower(view.WeekOverview.Rows[j].Day)]
	})

	return view, nil
}
