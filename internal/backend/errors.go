package backend

import (
	"errors"
	"fmt"
)

// ErrNotFound maps a backend 404 so callers can route it to the
// dedicated "user not found" presentation instead of a generic error.
var ErrNotFound = errors.New("not found")

// StatusError carries a non-2xx backend response. The body is kept for
// the user-visible message; nothing is retried automatically.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}
