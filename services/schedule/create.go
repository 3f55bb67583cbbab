package schedule

import (
	"context"
	"fmt"

	"farmhub/models"
)

// CreatePair ensures both the live and the staging container exist for a
// date, cloning the field schema of an existing schedule container (a live
// one when available, else any staging one).
func (s *DefaultScheduleService) CreatePair(ctx context.Context, dateLabel string) (*models.SchedulePair, error) {
	formatted := formatDateLabel(dateLabel)

	registry, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if registry.Mode == ModeDirect {
		return nil, ErrRootNotPaged
	}

	templateID := pickTemplateContainerID(registry.Entries)
	if templateID == "" {
		return nil, NewNotFoundError("no template schedule container found to copy schema")
	}
	templateMeta, err := s.Store.RetrieveContainer(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("retrieve template schema: %w", err)
	}

	pair := pairsByDate(registry.Entries)[formatted]
	if pair == nil {
		pair = &models.SchedulePair{DateLabel: formatted}
	}

	if pair.LiveID == "" {
		id, err := s.Store.CreateContainer(ctx, s.RootID, scheduleTitleForDate(formatted, false), templateMeta.Schema)
		if err != nil {
			return nil, fmt.Errorf("create live schedule container: %w", err)
		}
		pair.LiveID = id
	}
	if pair.StagingID == "" {
		id, err := s.Store.CreateContainer(ctx, s.RootID, scheduleTitleForDate(formatted, true), templateMeta.Schema)
		if err != nil {
			return nil, fmt.Errorf("create staging schedule container: %w", err)
		}
		pair.StagingID = id
	}

	return pair, nil
}

// pickTemplateContainerID prefers a live container's schema over a staging
// one. Entries are already sorted chronologically.
func pickTemplateContainerID(entries []models.ScheduleContainer) string {
	staging := ""
	for _, entry := range entries {
		if !entry.IsStaging {
			return entry.ID
		}
		if staging == "" {
			staging = entry.ID
		}
	}
	return staging
}
