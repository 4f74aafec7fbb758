package port

import "time"

// Dispatcher schedules work onto the UI event loop. The defensive
// fixed-duration delays the orchestration core relies on all flow through
// PostDelayed, so a platform exposing true completion signals can substitute
// them without touching orchestration logic.
type Dispatcher interface {
	// Post runs fn on the UI event loop as soon as possible.
	Post(fn func())
	// PostDelayed runs fn on the UI event loop after at least d has elapsed.
	PostDelayed(d time.Duration, fn func())
}
