package schedule

import (
	"context"

	"farmhub/models"
	"farmhub/store"

	"go.uber.org/zap"
)

// ResolveOptions selects which schedule container to resolve. An empty
// DateLabel falls back to the globally selected schedule date.
type ResolveOptions struct {
	DateLabel string
	Staging   bool
}

// LoadOptions mirror ResolveOptions for matrix loads.
type LoadOptions struct {
	DateLabel string
	Staging   bool
}

// Resolution names the container holding one day's rows, together with the
// globally configured scheduling settings read along the way.
type Resolution struct {
	ContainerID   string
	Container     *store.Container
	ScheduleDate  string
	ReportTime    string
	TaskResetTime string
	// Direct is true when the configured root is itself the one and only
	// schedule container; no date-keyed lookup is possible then.
	Direct bool
}

// Registry modes.
const (
	ModeDirect = "direct"
	ModePaged  = "paged"
)

// Registry is the full set of discoverable schedule containers.
type Registry struct {
	Mode                string                     `json:"mode"`
	Entries             []models.ScheduleContainer `json:"schedules"`
	SettingsContainerID string                     `json:"settingsContainerId,omitempty"`
}

// UpdateRequest applies one assignment mutation to a person's slot.
// Exactly one of AddTask/RemoveTask/ReplaceValue/ReportValue drives the
// update; Add and Remove may be combined.
type UpdateRequest struct {
	Person       string  `json:"person"`
	SlotKey      string  `json:"slotId"`
	AddTask      string  `json:"addTask"`
	RemoveTask   string  `json:"removeTask"`
	ReplaceValue *string `json:"replaceValue"`
	ReportValue  *bool   `json:"reportValue"`
	DateLabel    string  `json:"dateLabel"`
	Staging      bool    `json:"staging"`
}

// UpdateResult reports the value written back to the store.
type UpdateResult struct {
	Checked *bool    `json:"checked,omitempty"`
	Value   string   `json:"value,omitempty"`
	Values  []string `json:"values,omitempty"`
}

// Service is the schedule resolution and synchronization engine.
type Service interface {
	// Resolve discovers which container holds the given date's rows.
	Resolve(ctx context.Context, opts ResolveOptions) (*Resolution, error)

	// List returns every schedule container under the root, sorted
	// chronologically.
	List(ctx context.Context) (*Registry, error)

	// Load builds the people x slot matrix for one container. It never
	// fails: any error degrades to an empty matrix carrying a message.
	Load(ctx context.Context, opts LoadOptions) *models.ScheduleMatrix

	// Publish converges the live container for a date to its staging copy.
	Publish(ctx context.Context, dateLabel string) error

	// CreatePair ensures both live and staging containers exist for a date,
	// cloning the schema of an existing schedule container.
	CreatePair(ctx context.Context, dateLabel string) (*models.SchedulePair, error)

	// UpdateAssignment mutates one person/slot cell in place.
	UpdateAssignment(ctx context.Context, req UpdateRequest) (*UpdateResult, error)

	// LoadWeek aggregates the weekly container for the week containing the
	// given (or globally selected) date.
	LoadWeek(ctx context.Context, dateLabel string) (*models.WeeklyScheduleView, error)
}

// DefaultScheduleService implements Service against a store client.
type DefaultScheduleService struct {
	Store  store.Client
	RootID string
	Logger *zap.Logger
}

var _ Service = (*DefaultScheduleService)(nil)
