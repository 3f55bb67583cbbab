package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an id does not name a queryable object of the
// requested kind. Resolution logic branches on it; anything else from the
// store is treated as transient.
var ErrNotFound = errors.New("store: object not found")

// RequestError wraps a non-2xx store response.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("store: request failed (%d %s): %s", e.StatusCode, e.Code, e.Message)
}
