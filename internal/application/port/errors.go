package port

import (
	"errors"
	"fmt"
)

// ErrSurfaceDestroyed is returned by surface operations invoked after
// Destroy.
var ErrSurfaceDestroyed = errors.New("rendering surface destroyed")

// Engine error codes surfaced through NavigationError. Values mirror
// WebKit's network error domain.
const (
	// NavErrCancelled is reported when the engine aborts a navigation
	// because a newer one replaced it. Expected churn during rapid
	// re-navigation, not a real failure.
	NavErrCancelled = 302
)

// NavigationError wraps an engine-reported navigation failure with the
// failing URI and the engine's error code.
type NavigationError struct {
	URI  string
	Code int
	Err  error
}

// Error implements the error interface.
func (e *NavigationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navigation failed for %s: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("navigation failed for %s (code %d)", e.URI, e.Code)
}

// Unwrap returns the underlying engine error.
func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Cancelled reports whether the engine aborted this navigation rather than
// failing it.
func (e *NavigationError) Cancelled() bool {
	return e.Code == NavErrCancelled
}
