package webkit

import (
	"context"
	"fmt"
	"sync/atomic"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/logging"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

var surfaceIDCounter uint64

// FactoryOptions configures surface creation.
type FactoryOptions struct {
	// Container receives every created view as a child. The views share
	// it equally when it is homogeneous.
	Container *gtk.Box
	// UserAgent overrides the default UA string for all surfaces.
	UserAgent string
}

// Factory creates WebKit-backed rendering surfaces. Views all run in the
// engine's default network session, so cookies and the web process pool
// are shared across every surface the process creates.
type Factory struct {
	opts FactoryOptions
}

var _ port.SurfaceFactory = (*Factory)(nil)

// NewFactory returns a surface factory attached to the given container.
func NewFactory(opts FactoryOptions) *Factory {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Factory{opts: opts}
}

// Create builds one WebView, applies settings, wires its signals, and
// parents it into the container. Must run on the GTK main thread.
func (f *Factory) Create(ctx context.Context) (port.RenderingSurface, error) {
	view := webkit.NewWebView()
	if view == nil {
		return nil, fmt.Errorf("webkit: failed to create web view")
	}
	if err := applySettings(view, f.opts.UserAgent); err != nil {
		return nil, err
	}

	s := &Surface{
		id:   port.SurfaceID(atomic.AddUint64(&surfaceIDCounter, 1)),
		view: view,
		log:  logging.Component(ctx, "webkit"),
	}
	s.connectSignals()

	view.SetHexpand(true)
	view.SetVexpand(true)
	if f.opts.Container != nil {
		f.opts.Container.Append(view)
	}

	s.log.Debug().Uint64("surface", uint64(s.id)).Msg("surface created")
	return s, nil
}

func applySettings(view *webkit.WebView, userAgent string) error {
	settings := view.Settings()
	if settings == nil {
		return fmt.Errorf("webkit: failed to get settings")
	}
	settings.SetEnableJavascript(true)
	settings.SetEnableWebgl(true)
	settings.SetUserAgent(userAgent)
	settings.SetHardwareAccelerationPolicy(webkit.HardwareAccelerationPolicyAlways)
	return nil
}
