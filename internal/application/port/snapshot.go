package port

import "context"

// SnapshotProvider captures a bitmap of one window's composed content for
// visual continuity while the window is hibernated. A provider instance is
// bound to a single window by its registrar.
type SnapshotProvider interface {
	// Capture returns an encoded bitmap of the window's current content.
	// Returning an empty slice with a nil error is valid on platforms that
	// cannot capture; hibernation proceeds without the overlay.
	Capture(ctx context.Context) ([]byte, error)
}
