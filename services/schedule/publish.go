package schedule

import (
	"context"
	"fmt"

	"farmhub/models"
	"farmhub/store"

	"go.uber.org/zap"
)

// Publish diffs the staging container for a date against its live
// counterpart and converges live to match: upserts every staging person's
// row, then archives live rows whose name left the staging roster. A live
// container is created from the staging schema when none exists yet.
//
// Mutations are issued strictly sequentially to respect the store's request
// budget. Concurrent publishes against the same date can race and lose
// updates; callers own that exclusion.
func (s *DefaultScheduleService) Publish(ctx context.Context, dateLabel string) error {
	formatted := formatDateLabel(dateLabel)

	registry, err := s.List(ctx)
	if err != nil {
		return err
	}
	if registry.Mode == ModeDirect {
		return ErrRootNotPaged
	}

	pair := pairsByDate(registry.Entries)[formatted]
	if pair == nil || pair.StagingID == "" {
		return NewNotFoundError("no staging schedule found for %s", formatted)
	}

	liveID := pair.LiveID
	if liveID == "" {
		templateMeta, err := s.Store.RetrieveContainer(ctx, pair.StagingID)
		if err != nil {
			return fmt.Errorf("retrieve staging schema: %w", err)
		}
		// Clone the staging schema verbatim: same field names, same kinds,
		// same kind-specific configuration.
		liveID, err = s.Store.CreateContainer(ctx, s.RootID, scheduleTitleForDate(formatted, false), templateMeta.Schema)
		if err != nil {
			return fmt.Errorf("create live schedule container: %w", err)
		}
		s.log().Info("created live schedule container",
			zap.String("dateLabel", formatted), zap.String("containerId", liveID))
	}

	staging, err := s.loadMatrix(ctx, LoadOptions{DateLabel: formatted, Staging: true})
	if err != nil {
		return fmt.Errorf("load staging schedule: %w", err)
	}

	liveMeta, err := s.Store.RetrieveContainer(ctx, liveID)
	if err != nil {
		return err
	}
	titleKey, ok := liveMeta.TitleFieldKey()
	if !ok {
		titleKey = personFieldKey
	}

	liveRows, err := s.Store.QueryAllContainerRows(ctx, liveID)
	if err != nil {
		return err
	}
	liveByName := make(map[string]store.Row, len(liveRows))
	for _, row := range liveRows {
		if name := row.Fields[titleKey].PlainText(); name != "" {
			liveByName[name] = row
		}
	}

	stagingNames := make(map[string]struct{}, len(staging.People))
	for i, person := range staging.People {
		stagingNames[person] = struct{}{}

		fields := make(map[string]store.FieldValue, len(staging.Slots))
		for j, slot := range staging.Slots {
			fields[slot.Key] = store.RichTextValue(staging.Cells[i][j])
		}

		existing, found := liveByName[person]
		if found {
			if rowMatches(existing, staging.Cells[i], staging.Slots) {
				continue
			}
			if err := s.Store.UpdateRow(ctx, existing.ID, fields); err != nil {
				return fmt.Errorf("update live row for %s: %w", person, err)
			}
			continue
		}

		fields[titleKey] = store.TitleValue(person)
		if _, err := s.Store.CreateRow(ctx, liveID, fields); err != nil {
			return fmt.Errorf("insert live row for %s: %w", person, err)
		}
	}

	for _, row := range liveRows {
		name := row.Fields[titleKey].PlainText()
		if name == "" {
			continue
		}
		if _, stillStaged := stagingNames[name]; !stillStaged {
			if err := s.Store.ArchiveRow(ctx, row.ID, true); err != nil {
				return fmt.Errorf("archive live row for %s: %w", name, err)
			}
		}
	}

	return nil
}

// rowMatches reports whether a live row already carries exactly the staged
// per-slot values, making an update a no-op to skip.
func rowMatches(row store.Row, cells []string, slots []models.SlotDescriptor) bool {
	for i, slot := range slots {
		if normalizeTaskValue(row.Fields[slot.Key].PlainText()) != cells[i] {
			return false
		}
	}
	return true
}
