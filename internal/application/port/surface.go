// Package port defines application-layer interfaces for external
// capabilities. Ports abstract infrastructure concerns, allowing the
// orchestration core to remain independent of specific implementations
// (WebKit, GTK, etc.).
package port

import "context"

// SurfaceID uniquely identifies a rendering surface instance.
type SurfaceID uint64

// LoadEvent represents page load state transitions reported by the engine.
type LoadEvent int

const (
	// LoadStarted indicates navigation has begun.
	LoadStarted LoadEvent = iota
	// LoadRedirected indicates a redirect occurred.
	LoadRedirected
	// LoadCommitted indicates content is being received.
	LoadCommitted
	// LoadFinished indicates the page has fully loaded.
	LoadFinished
)

// String returns a human-readable representation of the load event.
func (e LoadEvent) String() string {
	switch e {
	case LoadStarted:
		return "started"
	case LoadRedirected:
		return "redirected"
	case LoadCommitted:
		return "committed"
	case LoadFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SurfaceCallbacks defines callback handlers for rendering-surface events.
// Implementations invoke these on the UI event loop, never concurrently.
type SurfaceCallbacks struct {
	// OnLoadChanged is called when load state changes.
	OnLoadChanged func(event LoadEvent)
	// OnLoadFailed is called when a navigation errors. The error is a
	// *NavigationError when the engine provided enough detail.
	OnLoadFailed func(failingURI string, err error)
	// OnProcessTerminated is called when the engine's web process for this
	// surface died.
	OnProcessTerminated func()
	// OnURIChanged is called when the URI changes, including SPA
	// navigations via the History API.
	OnURIChanged func(uri string)
}

// RenderingSurface is the opaque handle to one embedded web content view.
// A surface is owned by exactly one session and never shared.
type RenderingSurface interface {
	// ID returns the unique identifier for this surface.
	ID() SurfaceID

	// LoadURI navigates to the specified URI.
	LoadURI(ctx context.Context, uri string) error

	// StopLoading stops any in-flight navigation.
	StopLoading(ctx context.Context) error

	// RunScript executes JavaScript in the page, fire-and-forget.
	RunScript(ctx context.Context, script string) error

	// URI returns the current URI.
	URI() string

	// IsLoading returns true if a page is currently loading.
	IsLoading() bool

	// Show makes the surface visible.
	Show()

	// Hide makes the surface invisible, releasing GPU/compute pressure.
	Hide()

	// SetCallbacks registers callback handlers for surface events.
	// Pass nil to clear all callbacks.
	SetCallbacks(callbacks *SurfaceCallbacks)

	// DetachFromParent removes the surface from its parent view. Must be
	// called after callbacks are cleared and before Destroy; the reverse
	// order is undefined behavior in the underlying engine.
	DetachFromParent()

	// IsDestroyed returns true if the surface has been destroyed.
	IsDestroyed() bool

	// Destroy releases all engine resources. Synchronous: engine-internal
	// deferred releases complete before it returns.
	Destroy()
}

// SurfaceFactory creates rendering surfaces. All surfaces created by one
// factory share the engine's process-wide connection/process pool; sessions
// are never given distinct pools.
type SurfaceFactory interface {
	Create(ctx context.Context) (RenderingSurface, error)
}
