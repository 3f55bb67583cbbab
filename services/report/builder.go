package report

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"farmhub/models"
	"farmhub/store"

	"go.uber.org/zap"
)

// StoreBuilder keys reports by a "Daily Report - <date>" title under the
// configured reports root, which may be either a reports container or a
// plain page holding report child pages. Report content rendering is owned
// elsewhere; the builder only creates the keyed report object.
type StoreBuilder struct {
	Store  store.Client
	RootID string
	Logger *zap.Logger
}

var _ Builder = (*StoreBuilder)(nil)

func reportTitleForDate(dateLabel string) string {
	return "Daily Report - " + dateLabel
}

// reportsParent is the single discovery result for the reports root:
// container mode when meta is set, page mode otherwise.
type reportsParent struct {
	meta *store.Container
}

func (b *StoreBuilder) resolveParent(ctx context.Context) (*reportsParent, error) {
	if b.RootID == "" {
		return nil, &ConfigError{Key: "REPORTS_ROOT_ID"}
	}
	meta, err := b.Store.RetrieveContainer(ctx, b.RootID)
	if err == nil {
		return &reportsParent{meta: meta}, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return &reportsParent{}, nil
	}
	return nil, err
}

func (b *StoreBuilder) Exists(ctx context.Context, dateLabel string) (bool, error) {
	parent, err := b.resolveParent(ctx)
	if err != nil {
		return false, err
	}
	title := reportTitleForDate(dateLabel)

	if parent.meta != nil {
		titleKey, ok := parent.meta.TitleFieldKey()
		if !ok {
			titleKey = "Name"
		}
		rows, err := b.Store.QueryContainer(ctx, b.RootID, store.Query{
			TitleFilterField:  titleKey,
			TitleFilterEquals: title,
			PageSize:          1,
		})
		if err != nil {
			return false, err
		}
		return len(rows) > 0, nil
	}

	children, err := b.Store.ListChildren(ctx, b.RootID)
	if err != nil {
		return false, err
	}
	for _, child := range children {
		if child.Type == store.ChildTypePage && strings.TrimSpace(child.Title) == title {
			return true, nil
		}
	}
	return false, nil
}

func (b *StoreBuilder) Create(ctx context.Context, matrix *models.ScheduleMatrix, dateLabel string) (string, error) {
	parent, err := b.resolveParent(ctx)
	if err != nil {
		return "", err
	}
	title := reportTitleForDate(dateLabel)

	if parent.meta == nil {
		id, err := b.Store.CreatePage(ctx, b.RootID, title)
		if err != nil {
			return "", err
		}
		b.log().Info("created report page", zap.String("reportId", id))
		return id, nil
	}

	titleKey, ok := parent.meta.TitleFieldKey()
	if !ok {
		titleKey = "Name"
	}
	fields := map[string]store.FieldValue{
		titleKey: store.TitleValue(title),
	}
	if dateKey, ok := dateFieldKey(parent.meta); ok {
		if dt, err := time.Parse("01/02/2006", dateLabel); err == nil {
			fields[dateKey] = store.FieldValue{Date: &store.DateValue{Start: dt.Format("2006-01-02")}}
		}
	}
	return b.Store.CreateRow(ctx, b.RootID, fields)
}

func (b *StoreBuilder) List(ctx context.Context) ([]models.ReportSummary, error) {
	parent, err := b.resolveParent(ctx)
	if err != nil {
		return nil, err
	}

	if parent.meta != nil {
		titleKey, ok := parent.meta.TitleFieldKey()
		if !ok {
			titleKey = "Name"
		}
		sortField := titleKey
		dateKey, hasDate := dateFieldKey(parent.meta)
		if hasDate {
			sortField = dateKey
		}
		rows, err := b.Store.QueryContainer(ctx, b.RootID, store.Query{
			Sorts: []store.Sort{{Field: sortField, Descending: true}},
		})
		if err != nil {
			return nil, err
		}
		reports := make([]models.ReportSummary, 0, len(rows))
		for _, row := range rows {
			summary := models.ReportSummary{
				ID:    row.ID,
				Title: row.Fields[titleKey].PlainText(),
				Date:  row.CreatedTime,
			}
			if summary.Title == "" {
				summary.Title = "Untitled report"
			}
			if hasDate {
				if value := row.Fields[dateKey]; value.Date != nil {
					summary.Date = value.Date.Start
				}
			}
			reports = append(reports, summary)
		}
		return reports, nil
	}

	children, err := b.Store.ListChildren(ctx, b.RootID)
	if err != nil {
		return nil, err
	}
	reports := make([]models.ReportSummary, 0, len(children))
	for _, child := range children {
		if child.Type != store.ChildTypePage {
			continue
		}
		title := strings.TrimSpace(child.Title)
		if title == "" {
			title = "Untitled report"
		}
		reports = append(reports, models.ReportSummary{ID: child.ID, Title: title, Date: child.CreatedTime})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date > reports[j].Date
	})
	return reports, nil
}

func dateFieldKey(meta *store.Container) (string, bool) {
	for key, field := range meta.Schema {
		if field.Type == "date" {
			return key, true
		}
	}
	return "", false
}

func (b *StoreBuilder) log() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
