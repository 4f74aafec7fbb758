package webkit

import (
	"context"
	"strings"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
)

// Surface wraps one WebKitGTK WebView behind the rendering-surface port.
// All methods must be called from the GTK main thread.
type Surface struct {
	id   port.SurfaceID
	view *webkit.WebView
	log  zerolog.Logger

	mu        sync.RWMutex
	callbacks *port.SurfaceCallbacks
	destroyed bool
}

var _ port.RenderingSurface = (*Surface)(nil)

// ID returns the surface's unique identifier.
func (s *Surface) ID() port.SurfaceID {
	return s.id
}

// Widget returns the underlying view for embedding in window chrome.
func (s *Surface) Widget() gtk.Widgetter {
	return s.view
}

// LoadURI starts navigating to uri.
func (s *Surface) LoadURI(_ context.Context, uri string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return port.ErrSurfaceDestroyed
	}
	s.view.LoadURI(uri)
	return nil
}

// StopLoading aborts any in-flight navigation.
func (s *Surface) StopLoading(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return port.ErrSurfaceDestroyed
	}
	s.view.StopLoading()
	return nil
}

// RunScript evaluates JavaScript in the page, fire-and-forget. Script
// errors stay inside the page; only a dead surface is reported here.
func (s *Surface) RunScript(_ context.Context, script string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return port.ErrSurfaceDestroyed
	}
	return evaluateScript(s.view, script)
}

// URI returns the view's current URI.
func (s *Surface) URI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return ""
	}
	return s.view.URI()
}

// IsLoading reports whether a page load is in flight.
func (s *Surface) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return false
	}
	return s.view.IsLoading()
}

// Show makes the view visible.
func (s *Surface) Show() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return
	}
	s.view.SetVisible(true)
}

// Hide makes the view invisible. WebKit suspends rendering work for
// hidden views, which is what hibernation relies on.
func (s *Surface) Hide() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return
	}
	s.view.SetVisible(false)
}

// SetCallbacks registers event handlers. Pass nil to clear them; signal
// handlers stay connected but drop events once callbacks are nil.
func (s *Surface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	s.mu.Unlock()
}

// DetachFromParent removes the view from its container widget.
func (s *Surface) DetachFromParent() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return
	}
	if s.view.Parent() != nil {
		s.view.Unparent()
	}
}

// IsDestroyed reports whether Destroy has run.
func (s *Surface) IsDestroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}

// Destroy marks the surface dead and drops its callbacks. The GTK widget
// itself is released once unparented and unreferenced.
func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.callbacks = nil
	s.log.Debug().Uint64("surface", uint64(s.id)).Msg("surface destroyed")
}

func (s *Surface) currentCallbacks() *port.SurfaceCallbacks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return nil
	}
	return s.callbacks
}

// connectSignals wires the view's GObject signals to the port callbacks.
// Handlers look callbacks up per event, so SetCallbacks(nil) silences a
// surface without disconnecting anything.
func (s *Surface) connectSignals() {
	s.view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		cb := s.currentCallbacks()
		if cb == nil || cb.OnLoadChanged == nil {
			return
		}
		mapped, ok := mapLoadEvent(event)
		if !ok {
			return
		}
		cb.OnLoadChanged(mapped)
	})

	s.view.ConnectLoadFailed(func(event webkit.LoadEvent, failingURI string, err error) bool {
		cb := s.currentCallbacks()
		if cb == nil || cb.OnLoadFailed == nil {
			return false
		}
		cb.OnLoadFailed(failingURI, navError(failingURI, err))
		// Let WebKit render its own error page.
		return false
	})

	s.view.ConnectWebProcessTerminated(func(reason webkit.WebProcessTerminationReason) {
		s.log.Warn().
			Uint64("surface", uint64(s.id)).
			Int("reason", int(reason)).
			Msg("web process terminated")
		cb := s.currentCallbacks()
		if cb == nil || cb.OnProcessTerminated == nil {
			return
		}
		cb.OnProcessTerminated()
	})

	// Covers History API pushState navigations that never emit load events.
	s.view.Connect("notify::uri", func() {
		cb := s.currentCallbacks()
		if cb == nil || cb.OnURIChanged == nil {
			return
		}
		cb.OnURIChanged(s.view.URI())
	})
}

func mapLoadEvent(event webkit.LoadEvent) (port.LoadEvent, bool) {
	switch event {
	case webkit.LoadStarted:
		return port.LoadStarted, true
	case webkit.LoadRedirected:
		return port.LoadRedirected, true
	case webkit.LoadCommitted:
		return port.LoadCommitted, true
	case webkit.LoadFinished:
		return port.LoadFinished, true
	default:
		return 0, false
	}
}

// navError wraps an engine load failure. WebKit reports superseded
// navigations as errors too; those are tagged with the cancellation code
// so the tracker can tell churn from real failures.
func navError(uri string, err error) error {
	code := 0
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "cancel") {
		code = port.NavErrCancelled
	}
	return &port.NavigationError{URI: uri, Code: code, Err: err}
}
