package schedule

import (
	"context"
	"fmt"
	"strings"

	"farmhub/store"
)

// UpdateAssignment mutates one person/slot cell of the resolved schedule
// container. The write shape follows the slot's field kind: checkbox for the
// reported flag, multi-select with option-list extension for choice slots,
// comma-joined rich text otherwise.
func (s *DefaultScheduleService) UpdateAssignment(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	if req.Person == "" || req.SlotKey == "" {
		return nil, fmt.Errorf("missing person or slot")
	}

	resolution, err := s.Resolve(ctx, ResolveOptions{DateLabel: req.DateLabel, Staging: req.Staging})
	if err != nil {
		return nil, err
	}

	meta := resolution.Container
	if meta == nil {
		meta, err = s.Store.RetrieveContainer(ctx, resolution.ContainerID)
		if err != nil {
			return nil, err
		}
	}
	titleKey, ok := meta.TitleFieldKey()
	if !ok {
		titleKey = personFieldKey
	}

	rows, err := s.Store.QueryContainer(ctx, resolution.ContainerID, store.Query{
		TitleFilterField:  titleKey,
		TitleFilterEquals: req.Person,
		PageSize:          1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError("person row not found for %s", req.Person)
	}
	row := rows[0]

	slotSchema := meta.Schema[req.SlotKey]

	if slotSchema.Type == "checkbox" {
		checked := req.ReportValue != nil && *req.ReportValue
		err := s.Store.UpdateRow(ctx, row.ID, map[string]store.FieldValue{
			req.SlotKey: store.CheckboxValue(checked),
		})
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Checked: &checked}, nil
	}

	base := row.Fields[req.SlotKey].PlainText()
	if req.ReplaceValue != nil {
		base = *req.ReplaceValue
	}
	if slotSchema.Type == "multi_select" {
		base, _, _ = strings.Cut(base, "\n")
	}
	tasks := parseNamesList(base)

	if req.RemoveTask != "" {
		target := strings.ToLower(strings.TrimSpace(req.RemoveTask))
		kept := tasks[:0]
		for _, task := range tasks {
			if strings.ToLower(task) != target {
				kept = append(kept, task)
			}
		}
		tasks = kept
	}

	if req.AddTask != "" {
		add := strings.TrimSpace(req.AddTask)
		present := false
		for _, task := range tasks {
			if strings.EqualFold(task, add) {
				present = true
				break
			}
		}
		if !present {
			tasks = append(tasks, add)
		}
	}

	if slotSchema.Type == "multi_select" {
		if err := s.extendChoiceOptions(ctx, resolution.ContainerID, req.SlotKey, slotSchema, tasks); err != nil {
			return nil, err
		}
		err := s.Store.UpdateRow(ctx, row.ID, map[string]store.FieldValue{
			req.SlotKey: store.MultiSelectValue(tasks),
		})
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Values: tasks}, nil
	}

	next := strings.Join(tasks, ", ")
	err = s.Store.UpdateRow(ctx, row.ID, map[string]store.FieldValue{
		req.SlotKey: store.RichTextValue(next),
	})
	if err != nil {
		return nil, err
	}
	return &UpdateResult{Value: next}, nil
}

// extendChoiceOptions adds any task names missing from a multi-select
// field's option list before they can be assigned; the store rejects unknown
// choice names otherwise.
func (s *DefaultScheduleService) extendChoiceOptions(ctx context.Context, containerID, slotKey string, slotSchema store.FieldSchema, tasks []string) error {
	existing := slotSchema.MultiSelectOptions()
	known := make(map[string]struct{}, len(existing))
	for _, opt := range existing {
		known[strings.ToLower(opt.Name)] = struct{}{}
	}

	options := append([]store.Option(nil), existing...)
	missing := false
	for _, task := range tasks {
		if _, ok := known[strings.ToLower(task)]; !ok {
			options = append(options, store.Option{Name: task})
			missing = true
		}
	}
	if !missing {
		return nil
	}

	return s.Store.UpdateContainerSchema(ctx, containerID, map[string]store.FieldSchema{
		slotKey: store.MultiSelectSchema(options),
	})
}
