package store

import "context"

// Client is the only boundary to the external record store. The engine
// never talks to the store's transport directly; transport, timeout and
// retry policy all live behind this interface.
type Client interface {
	// RetrieveContainer fetches a container's title and schema. Returns
	// ErrNotFound when id is not a queryable container.
	RetrieveContainer(ctx context.Context, id string) (*Container, error)

	// RetrievePage reads a single row/page by id.
	RetrievePage(ctx context.Context, id string) (*Row, error)

	// QueryContainer returns one page of rows matching the query.
	QueryContainer(ctx context.Context, id string, q Query) ([]Row, error)

	// QueryAllContainerRows returns every row, paginating transparently.
	QueryAllContainerRows(ctx context.Context, id string) ([]Row, error)

	// ListChildren returns the child blocks of a page, paginating
	// transparently.
	ListChildren(ctx context.Context, pageID string) ([]ChildBlock, error)

	// CreateContainer creates a container under a parent page and returns
	// its id.
	CreateContainer(ctx context.Context, parentID, title string, schema map[string]FieldSchema) (string, error)

	// CreatePage creates a child page under a parent page and returns its id.
	CreatePage(ctx context.Context, parentID, title string) (string, error)

	// CreateRow inserts a row into a container and returns its id.
	CreateRow(ctx context.Context, containerID string, fields map[string]FieldValue) (string, error)

	// UpdateRow patches field values on an existing row.
	UpdateRow(ctx context.Context, id string, fields map[string]FieldValue) error

	// UpdateContainerSchema patches container fields, e.g. extending a
	// choice field's option list.
	UpdateContainerSchema(ctx context.Context, id string, patch map[string]FieldSchema) error

	// ArchiveRow soft-deletes (or restores) a row.
	ArchiveRow(ctx context.Context, id string, archived bool) error

	// RetrieveComments counts the comments attached to a row or block.
	RetrieveComments(ctx context.Context, blockID string) (int, error)
}
