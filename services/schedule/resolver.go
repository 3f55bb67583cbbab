package schedule

import (
	"context"
	"errors"
	"sort"
	"strings"

	"farmhub/models"
	"farmhub/store"

	"go.uber.org/zap"
)

const (
	settingsContainerTitle = "Settings"
	selectedScheduleField  = "Selected Schedule"

	settingsRowSchedule  = "Settings"
	settingsRowReport    = "Report Time"
	settingsRowTaskReset = "Task Reset Time"
)

// rootDiscovery is the two-variant outcome of probing the configured root:
// either the root is itself a queryable container, or it is a page whose
// child containers hold the schedules. Produced once per operation and
// consumed without further fallible probing.
type rootDiscovery struct {
	direct   *store.Container
	children []store.ChildBlock
}

func (s *DefaultScheduleService) discoverRoot(ctx context.Context) (*rootDiscovery, error) {
	if s.RootID == "" {
		return nil, &ConfigError{Key: "SCHEDULE_ROOT_ID"}
	}

	container, err := s.Store.RetrieveContainer(ctx, s.RootID)
	if err == nil {
		return &rootDiscovery{direct: container}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	s.log().Debug("schedule root is not a container, reading page children")
	children, err := s.Store.ListChildren(ctx, s.RootID)
	if err != nil {
		return nil, err
	}
	return &rootDiscovery{children: children}, nil
}

func childContainers(children []store.ChildBlock) []store.ChildBlock {
	var containers []store.ChildBlock
	for _, child := range children {
		if child.Type == store.ChildTypeContainer {
			containers = append(containers, child)
		}
	}
	return containers
}

func findContainerByTitle(containers []store.ChildBlock, title string, fold bool) (store.ChildBlock, bool) {
	for _, c := range containers {
		candidate := strings.TrimSpace(c.Title)
		if candidate == title || (fold && strings.EqualFold(candidate, title)) {
			return c, true
		}
	}
	return store.ChildBlock{}, false
}

// scheduleSettings are the globally configured scheduling values read from
// the Settings container.
type scheduleSettings struct {
	containerID   string
	selectedDate  string
	reportTime    string
	taskResetTime string
}

func (s *DefaultScheduleService) readSettings(ctx context.Context, containers []store.ChildBlock) (*scheduleSettings, error) {
	settingsChild, ok := findContainerByTitle(containers, settingsContainerTitle, true)
	if !ok {
		return nil, NewNotFoundError("could not find Settings container under the schedule page")
	}

	meta, err := s.Store.RetrieveContainer(ctx, settingsChild.ID)
	if err != nil {
		return nil, err
	}
	titleKey, ok := meta.TitleFieldKey()
	if !ok {
		titleKey = "Name"
	}

	selected, err := s.querySettingDate(ctx, settingsChild.ID, titleKey, settingsRowSchedule)
	if err != nil {
		return nil, err
	}
	reportRaw, err := s.querySettingDate(ctx, settingsChild.ID, titleKey, settingsRowReport)
	if err != nil {
		return nil, err
	}
	taskResetRaw, err := s.querySettingDate(ctx, settingsChild.ID, titleKey, settingsRowTaskReset)
	if err != nil {
		return nil, err
	}

	return &scheduleSettings{
		containerID:   settingsChild.ID,
		selectedDate:  selected,
		reportTime:    islandClockTime(reportRaw),
		taskResetTime: islandClockTime(taskResetRaw),
	}, nil
}

// querySettingDate reads the "Selected Schedule" date value of the newest
// settings row with the given name.
func (s *DefaultScheduleService) querySettingDate(ctx context.Context, containerID, titleKey, rowName string) (string, error) {
	rows, err := s.Store.QueryContainer(ctx, containerID, store.Query{
		TitleFilterField:  titleKey,
		TitleFilterEquals: rowName,
		Sorts:             []store.Sort{{Field: selectedScheduleField, Descending: true}},
		PageSize:          1,
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	value := rows[0].Fields[selectedScheduleField]
	if value.Date == nil {
		return "", nil
	}
	return value.Date.Start, nil
}

// Resolve discovers which container holds the given date's rows and reads
// the global scheduling settings along the way.
func (s *DefaultScheduleService) Resolve(ctx context.Context, opts ResolveOptions) (*Resolution, error) {
	discovery, err := s.discoverRoot(ctx)
	if err != nil {
		return nil, err
	}

	if discovery.direct != nil {
		// There is exactly one schedule container overall; the effective
		// date is left to the caller.
		res := &Resolution{ContainerID: s.RootID, Container: discovery.direct, Direct: true}
		if opts.DateLabel != "" {
			res.ScheduleDate = formatDateLabel(opts.DateLabel)
		}
		return res, nil
	}

	containers := childContainers(discovery.children)
	settings, err := s.readSettings(ctx, containers)
	if err != nil {
		return nil, err
	}

	scheduleDate := ""
	switch {
	case opts.DateLabel != "":
		scheduleDate = formatDateLabel(opts.DateLabel)
	case settings.selectedDate != "":
		scheduleDate = formatDateLabel(settings.selectedDate)
	}
	if scheduleDate == "" {
		return nil, NewNotFoundError("Selected Schedule date is not configured in the store")
	}

	expectedTitle := scheduleTitleForDate(scheduleDate, opts.Staging)
	target, ok := findContainerByTitle(containers, expectedTitle, false)
	if !ok {
		return nil, NewNotFoundError("no schedule container found for %s", expectedTitle)
	}

	meta, err := s.Store.RetrieveContainer(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		ContainerID:   target.ID,
		Container:     meta,
		ScheduleDate:  scheduleDate,
		ReportTime:    settings.reportTime,
		TaskResetTime: settings.taskResetTime,
	}, nil
}

// List mirrors the discovery step of Resolve but returns every schedule
// container, parsed into date/staging entries and sorted chronologically.
func (s *DefaultScheduleService) List(ctx context.Context) (*Registry, error) {
	discovery, err := s.discoverRoot(ctx)
	if err != nil {
		return nil, err
	}
	if discovery.direct != nil {
		return &Registry{Mode: ModeDirect, Entries: []models.ScheduleContainer{}}, nil
	}

	containers := childContainers(discovery.children)
	registry := &Registry{Mode: ModePaged, Entries: []models.ScheduleContainer{}}
	if settingsChild, ok := findContainerByTitle(containers, settingsContainerTitle, true); ok {
		registry.SettingsContainerID = settingsChild.ID
	}

	for _, child := range containers {
		title := strings.TrimSpace(child.Title)
		if title == "" || strings.EqualFold(title, settingsContainerTitle) {
			continue
		}
		dateLabel, staging, ok := parseScheduleTitle(title)
		if !ok {
			continue
		}
		registry.Entries = append(registry.Entries, models.ScheduleContainer{
			ID:        child.ID,
			Title:     title,
			DateLabel: dateLabel,
			IsStaging: staging,
		})
	}

	sort.SliceStable(registry.Entries, func(i, j int) bool {
		a, aok := parseDateLabel(registry.Entries[i].DateLabel)
		b, bok := parseDateLabel(registry.Entries[j].DateLabel)
		if aok && bok && !a.Equal(b) {
			return a.Before(b)
		}
		return registry.Entries[i].DateLabel < registry.Entries[j].DateLabel
	})

	return registry, nil
}

// pairsByDate groups registry entries into live/staging pairs per date.
func pairsByDate(entries []models.ScheduleContainer) map[string]*models.SchedulePair {
	pairs := make(map[string]*models.SchedulePair)
	for _, entry := range entries {
		pair, ok := pairs[entry.DateLabel]
		if !ok {
			pair = &models.SchedulePair{DateLabel: entry.DateLabel}
			pairs[entry.DateLabel] = pair
		}
		if entry.IsStaging {
			pair.StagingID = entry.ID
		} else {
			pair.LiveID = entry.ID
		}
	}
	return pairs
}

func (s *DefaultScheduleService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
