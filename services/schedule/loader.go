package schedule

import (
	"context"

	"farmhub/models"

	"go.uber.org/zap"
)

// loadDegradedMessage is what callers see instead of an error when a read
// fails; the read path degrades, it does not crash consumers.
const loadDegradedMessage = "No schedule has been assigned yet."

// Load builds the people x slot assignment matrix for one container. Any
// failure along the way degrades to an empty but structurally valid matrix
// carrying a human readable message.
func (s *DefaultScheduleService) Load(ctx context.Context, opts LoadOptions) *models.ScheduleMatrix {
	matrix, err := s.loadMatrix(ctx, opts)
	if err != nil {
		s.log().Error("failed to load schedule from store", zap.Error(err))
		return &models.ScheduleMatrix{
			People:  []string{},
			Slots:   []models.SlotDescriptor{},
			Cells:   [][]string{},
			Message: loadDegradedMessage,
		}
	}
	return matrix
}

// loadMatrix is the error-returning loader behind Load. Write paths use it
// directly so a transient read failure fails loud instead of being mistaken
// for an empty schedule.
func (s *DefaultScheduleService) loadMatrix(ctx context.Context, opts LoadOptions) (*models.ScheduleMatrix, error) {
	resolution, err := s.Resolve(ctx, ResolveOptions{DateLabel: opts.DateLabel, Staging: opts.Staging})
	if err != nil {
		return nil, err
	}
	return s.loadResolved(ctx, resolution)
}

func (s *DefaultScheduleService) loadResolved(ctx context.Context, resolution *Resolution) (*models.ScheduleMatrix, error) {
	rows, err := s.Store.QueryAllContainerRows(ctx, resolution.ContainerID)
	if err != nil {
		return nil, err
	}

	matrix := &models.ScheduleMatrix{
		People:        []string{},
		Slots:         []models.SlotDescriptor{},
		Cells:         [][]string{},
		ScheduleDate:  resolution.ScheduleDate,
		ReportTime:    resolution.ReportTime,
		TaskResetTime: resolution.TaskResetTime,
	}
	if len(rows) == 0 {
		return matrix, nil
	}

	var slotKeys []string
	meta := resolution.Container
	if meta == nil {
		fetched, metaErr := s.Store.RetrieveContainer(ctx, resolution.ContainerID)
		if metaErr != nil {
			s.log().Error("failed to retrieve container schema, falling back to first row", zap.Error(metaErr))
		} else {
			meta = fetched
		}
	}
	if meta != nil {
		for key := range meta.Schema {
			if key != personFieldKey && key != reportFieldKey {
				slotKeys = append(slotKeys, key)
			}
		}
		if matrix.ScheduleDate == "" {
			matrix.ScheduleDate = meta.PlainTitle()
		}
	} else {
		for key := range rows[0].Fields {
			if key != personFieldKey && key != reportFieldKey {
				slotKeys = append(slotKeys, key)
			}
		}
	}

	matrix.Slots = slotDescriptors(slotKeys)

	for _, row := range rows {
		person := row.Fields[personFieldKey].PlainText()
		if person == "" {
			continue
		}
		matrix.People = append(matrix.People, person)

		reported := false
		if flag := row.Fields[reportFieldKey]; flag.Checkbox != nil {
			reported = *flag.Checkbox
		}
		matrix.ReportFlags = append(matrix.ReportFlags, reported)

		tasks := make([]string, len(matrix.Slots))
		for i, slot := range matrix.Slots {
			tasks[i] = normalizeTaskValue(row.Fields[slot.Key].PlainText())
		}
		matrix.Cells = append(matrix.Cells, tasks)
	}

	return matrix, nil
}
