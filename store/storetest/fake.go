// Package storetest provides an in-memory store.Client for service tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"farmhub/store"

	"github.com/google/uuid"
)

// Fake is an in-memory record store. It tracks mutation counts so tests can
// assert properties like publish idempotency.
type Fake struct {
	mu sync.Mutex

	containers map[string]*store.Container
	rows       map[string][]*store.Row
	rowOwner   map[string]string
	children   map[string][]store.ChildBlock
	comments   map[string]int

	// Forced failures, keyed by object id. The mapped error is returned
	// instead of performing the operation.
	FailRetrieveContainer map[string]error
	FailQueryAll          map[string]error

	CreateRowCalls       int
	UpdateRowCalls       int
	ArchiveRowCalls      int
	CreateContainerCalls int
	CreatePageCalls      int
	ArchivedRowIDs       []string
}

var _ store.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		containers:            make(map[string]*store.Container),
		rows:                  make(map[string][]*store.Row),
		rowOwner:              make(map[string]string),
		children:              make(map[string][]store.ChildBlock),
		comments:              make(map[string]int),
		FailRetrieveContainer: make(map[string]error),
		FailQueryAll:          make(map[string]error),
	}
}

// AddPage registers a page id so ListChildren succeeds on it.
func (f *Fake) AddPage(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.children[id]; !ok {
		f.children[id] = nil
	}
}

// AddContainer registers a container; when parentID is non-empty it also
// appears among the parent's child blocks. Returns the container id.
func (f *Fake) AddContainer(parentID, title string, schema map[string]store.FieldSchema) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addContainerLocked(parentID, title, schema)
}

func (f *Fake) addContainerLocked(parentID, title string, schema map[string]store.FieldSchema) string {
	id := uuid.New().String()
	cloned := make(map[string]store.FieldSchema, len(schema))
	for key, field := range schema {
		cloned[key] = field
	}
	f.containers[id] = &store.Container{
		ID:     id,
		Title:  []store.RichText{{Type: "text", Text: &store.TextContent{Content: title}, PlainText: title}},
		Schema: cloned,
	}
	if parentID != "" {
		f.children[parentID] = append(f.children[parentID], store.ChildBlock{
			ID:    id,
			Type:  store.ChildTypeContainer,
			Title: title,
		})
	}
	return id
}

// AddChildPage registers a plain child page under a parent.
func (f *Fake) AddChildPage(parentID, title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New().String()
	f.children[parentID] = append(f.children[parentID], store.ChildBlock{
		ID:    id,
		Type:  store.ChildTypePage,
		Title: title,
	})
	f.children[id] = nil
	return id
}

// AddRow appends a row to a container and returns its id.
func (f *Fake) AddRow(containerID string, fields map[string]store.FieldValue) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addRowLocked(containerID, fields)
}

func (f *Fake) addRowLocked(containerID string, fields map[string]store.FieldValue) string {
	id := uuid.New().String()
	row := &store.Row{ID: id, Fields: cloneFields(fields)}
	f.rows[containerID] = append(f.rows[containerID], row)
	f.rowOwner[id] = containerID
	return id
}

// SetComments fixes the comment count reported for a row.
func (f *Fake) SetComments(rowID string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[rowID] = count
}

// Container returns the stored container, for schema assertions.
func (f *Fake) Container(id string) *store.Container {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containers[id]
}

// ActiveRows returns the non-archived rows of a container.
func (f *Fake) ActiveRows(containerID string) []store.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeRowsLocked(containerID)
}

func (f *Fake) activeRowsLocked(containerID string) []store.Row {
	var out []store.Row
	for _, row := range f.rows[containerID] {
		if !row.Archived {
			out = append(out, *row)
		}
	}
	return out
}

// ResetCounters zeroes the mutation counters.
func (f *Fake) ResetCounters() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateRowCalls = 0
	f.UpdateRowCalls = 0
	f.ArchiveRowCalls = 0
	f.CreateContainerCalls = 0
	f.CreatePageCalls = 0
	f.ArchivedRowIDs = nil
}

func (f *Fake) RetrieveContainer(_ context.Context, id string) (*store.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.FailRetrieveContainer[id]; ok {
		return nil, err
	}
	c, ok := f.containers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (f *Fake) RetrievePage(_ context.Context, id string) (*store.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if owner, ok := f.rowOwner[id]; ok {
		for _, row := range f.rows[owner] {
			if row.ID == id {
				cloned := *row
				return &cloned, nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (f *Fake) QueryContainer(_ context.Context, id string, q store.Query) ([]store.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.containers[id]; !ok {
		return nil, store.ErrNotFound
	}

	rows := f.activeRowsLocked(id)
	if q.TitleFilterField != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if row.Fields[q.TitleFilterField].PlainText() == q.TitleFilterEquals {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	for _, s := range q.Sorts {
		field, desc := s.Field, s.Descending
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := sortKey(rows[i], field), sortKey(rows[j], field)
			if desc {
				return a > b
			}
			return a < b
		})
	}
	if q.PageSize > 0 && len(rows) > q.PageSize {
		rows = rows[:q.PageSize]
	}
	return rows, nil
}

func sortKey(row store.Row, field string) string {
	v := row.Fields[field]
	if v.Date != nil {
		return v.Date.Start
	}
	return strings.ToLower(v.PlainText())
}

func (f *Fake) QueryAllContainerRows(_ context.Context, id string) ([]store.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.FailQueryAll[id]; ok {
		return nil, err
	}
	if _, ok := f.containers[id]; !ok {
		return nil, store.ErrNotFound
	}
	return f.activeRowsLocked(id), nil
}

func (f *Fake) ListChildren(_ context.Context, pageID string) ([]store.ChildBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	children, ok := f.children[pageID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]store.ChildBlock(nil), children...), nil
}

func (f *Fake) CreateContainer(_ context.Context, parentID, title string, schema map[string]store.FieldSchema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateContainerCalls++
	return f.addContainerLocked(parentID, title, schema), nil
}

func (f *Fake) CreatePage(_ context.Context, parentID, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatePageCalls++
	id := uuid.New().String()
	f.children[parentID] = append(f.children[parentID], store.ChildBlock{
		ID:    id,
		Type:  store.ChildTypePage,
		Title: title,
	})
	f.children[id] = nil
	return id, nil
}

func (f *Fake) CreateRow(_ context.Context, containerID string, fields map[string]store.FieldValue) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.containers[containerID]; !ok {
		return "", store.ErrNotFound
	}
	f.CreateRowCalls++
	return f.addRowLocked(containerID, fields), nil
}

func (f *Fake) UpdateRow(_ context.Context, id string, fields map[string]store.FieldValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.rowOwner[id]
	if !ok {
		return store.ErrNotFound
	}
	f.UpdateRowCalls++
	for _, row := range f.rows[owner] {
		if row.ID == id {
			for key, value := range cloneFields(fields) {
				row.Fields[key] = value
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *Fake) UpdateContainerSchema(_ context.Context, id string, patch map[string]store.FieldSchema) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, field := range patch {
		c.Schema[key] = field
	}
	return nil
}

func (f *Fake) ArchiveRow(_ context.Context, id string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.rowOwner[id]
	if !ok {
		return store.ErrNotFound
	}
	f.ArchiveRowCalls++
	for _, row := range f.rows[owner] {
		if row.ID == id {
			row.Archived = archived
			if archived {
				f.ArchivedRowIDs = append(f.ArchivedRowIDs, id)
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *Fake) RetrieveComments(_ context.Context, blockID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.comments[blockID], nil
}

func cloneFields(fields map[string]store.FieldValue) map[string]store.FieldValue {
	cloned := make(map[string]store.FieldValue, len(fields))
	for key, value := range fields {
		cloned[key] = value
	}
	return cloned
}
