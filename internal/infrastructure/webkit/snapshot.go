package webkit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
)

// SnapshotProvider captures a PNG bitmap of a window's visible web
// content for hibernation placeholders. The source resolver picks which
// live surface represents the window at capture time.
type SnapshotProvider struct {
	source func() *Surface
	log    zerolog.Logger
}

var _ port.SnapshotProvider = (*SnapshotProvider)(nil)

// NewSnapshotProvider returns a provider that captures from the surface
// returned by source. Source may return nil when nothing is capturable.
func NewSnapshotProvider(source func() *Surface, log zerolog.Logger) *SnapshotProvider {
	return &SnapshotProvider{source: source, log: log}
}

// Capture grabs the visible region of the source surface as PNG bytes.
// Must run on the GTK main thread; it pumps the main context until the
// engine finishes rendering the snapshot.
func (p *SnapshotProvider) Capture(ctx context.Context) ([]byte, error) {
	if p.source == nil {
		return nil, fmt.Errorf("snapshot: no source configured")
	}
	s := p.source()
	if s == nil || s.IsDestroyed() {
		return nil, fmt.Errorf("snapshot: no live surface to capture")
	}
	return captureSnapshot(ctx, s.view)
}
