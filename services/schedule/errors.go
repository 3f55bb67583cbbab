package schedule

import (
	"errors"
	"fmt"
)

// ConfigError reports a required external identifier that is not configured.
// Surfaced immediately; never retried.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configError: %s is not set", e.Key)
}

// NotFoundError reports an expected container, settings row or schedule row
// that is missing from the store.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrRootNotPaged reports that the schedule root is a single directly
// queryable container, so no date-keyed live/staging pairs exist under it.
var ErrRootNotPaged = errors.New("schedule root is not a page")
