package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// pauseScript quiesces a hibernated page: timer and animation-frame
// entry points are swapped for inert shims, playing media is paused, and
// the document is marked so site scripts can throttle themselves.
const pauseScript = `(function() {
  if (window.__hibernated) { return; }
  window.__hibernated = {
    setTimeout: window.setTimeout,
    setInterval: window.setInterval,
    requestAnimationFrame: window.requestAnimationFrame
  };
  window.setTimeout = function() { return 0; };
  window.setInterval = function() { return 0; };
  window.requestAnimationFrame = function() { return 0; };
  document.querySelectorAll('video, audio').forEach(function(m) {
    if (!m.paused) { m.dataset.hibernatePaused = '1'; m.pause(); }
  });
  document.documentElement.dataset.hibernated = '1';
})();`

// resumeScript restores the shimmed entry points and nudges scroll by one
// pixel each way to force the compositor to repaint a surface that was
// hidden.
const resumeScript = `(function() {
  if (window.__hibernated) {
    window.setTimeout = window.__hibernated.setTimeout;
    window.setInterval = window.__hibernated.setInterval;
    window.requestAnimationFrame = window.__hibernated.requestAnimationFrame;
    delete window.__hibernated;
  }
  delete document.documentElement.dataset.hibernated;
  document.querySelectorAll('video, audio').forEach(function(m) {
    if (m.dataset.hibernatePaused === '1') { delete m.dataset.hibernatePaused; m.play(); }
  });
  window.scrollBy(0, 1);
  window.scrollBy(0, -1);
})();`

type hibernatedWindow struct {
	id         entity.WindowID
	registry   *SessionRegistry
	snapshots  port.SnapshotProvider
	hibernated bool
	snapshot   *entity.HibernationSnapshot
}

// HibernationController enforces the at-most-one-active-window policy: when
// a window gains focus, every other window's sessions are paused and hidden
// so only one set of embedded engines burns CPU and GPU at a time.
type HibernationController struct {
	log    zerolog.Logger
	events *bus.Bus

	mu      sync.Mutex
	windows map[entity.WindowID]*hibernatedWindow
}

// NewHibernationController creates an empty controller. events may be nil
// when no window chrome listens for snapshot overlay updates.
func NewHibernationController(log zerolog.Logger, events *bus.Bus) *HibernationController {
	return &HibernationController{
		log:     log.With().Str("component", "hibernation").Logger(),
		events:  events,
		windows: make(map[entity.WindowID]*hibernatedWindow),
	}
}

// RegisterWindow makes a window's sessions eligible for hibernation.
// snapshots may be nil on platforms without capture support.
func (hc *HibernationController) RegisterWindow(id entity.WindowID, registry *SessionRegistry, snapshots port.SnapshotProvider) {
	hc.mu.Lock()
	hc.windows[id] = &hibernatedWindow{id: id, registry: registry, snapshots: snapshots}
	hc.mu.Unlock()
}

// UnregisterWindow removes a closed window from the controller.
func (hc *HibernationController) UnregisterWindow(id entity.WindowID) {
	hc.mu.Lock()
	delete(hc.windows, id)
	hc.mu.Unlock()
}

// OnWindowFocused hibernates every window except the focused one and
// restores the focused one if it was hibernated.
func (hc *HibernationController) OnWindowFocused(ctx context.Context, id entity.WindowID) {
	hc.mu.Lock()
	var toSleep []*hibernatedWindow
	var toWake *hibernatedWindow
	for wid, w := range hc.windows {
		switch {
		case wid == id:
			if w.hibernated {
				toWake = w
			}
		case !w.hibernated:
			toSleep = append(toSleep, w)
		}
	}
	hc.mu.Unlock()

	for _, w := range toSleep {
		hc.hibernate(ctx, w)
	}
	if toWake != nil {
		hc.restore(ctx, toWake)
	}
}

// Hibernate pauses and hides one window's sessions by ID.
func (hc *HibernationController) Hibernate(ctx context.Context, id entity.WindowID) {
	hc.mu.Lock()
	w, ok := hc.windows[id]
	hc.mu.Unlock()
	if !ok || w.hibernated {
		return
	}
	hc.hibernate(ctx, w)
}

// Restore wakes one window's sessions by ID.
func (hc *HibernationController) Restore(ctx context.Context, id entity.WindowID) {
	hc.mu.Lock()
	w, ok := hc.windows[id]
	hc.mu.Unlock()
	if !ok || !w.hibernated {
		return
	}
	hc.restore(ctx, w)
}

// Hibernated reports whether a window is currently hibernated.
func (hc *HibernationController) Hibernated(id entity.WindowID) bool {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	w, ok := hc.windows[id]
	return ok && w.hibernated
}

// Snapshot returns the bitmap captured when the window hibernated, if any.
func (hc *HibernationController) Snapshot(id entity.WindowID) (*entity.HibernationSnapshot, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	w, ok := hc.windows[id]
	if !ok || w.snapshot == nil {
		return nil, false
	}
	return w.snapshot, true
}

func (hc *HibernationController) hibernate(ctx context.Context, w *hibernatedWindow) {
	snap := &entity.HibernationSnapshot{
		WindowID:   w.id,
		CapturedAt: time.Now(),
		Paused:     make(map[entity.ServiceID]bool),
	}
	if w.snapshots != nil {
		// Best effort; the overlay is cosmetic.
		if bitmap, err := w.snapshots.Capture(ctx); err != nil {
			hc.log.Debug().Err(err).Str("window", string(w.id)).Msg("snapshot capture failed")
		} else {
			snap.Bitmap = bitmap
		}
	}

	for _, s := range w.registry.All() {
		if s.Surface.IsDestroyed() {
			continue
		}
		if s.Surface.IsLoading() {
			_ = s.Surface.StopLoading(ctx)
		}
		if err := s.Surface.RunScript(ctx, pauseScript); err != nil {
			hc.log.Warn().Err(err).Str("service", string(s.ID())).Msg("pause script failed")
		}
		s.Surface.Hide()
		s.setPaused(true)
		snap.Paused[s.ID()] = true
	}

	hc.mu.Lock()
	w.hibernated = true
	w.snapshot = snap
	hc.mu.Unlock()
	hc.log.Info().Str("window", string(w.id)).Msg("window hibernated")
	if hc.events != nil {
		hc.events.Publish(bus.TopicWindowHibernated, bus.WindowHibernationEvent{
			WindowID: w.id,
			Bitmap:   snap.Bitmap,
		})
	}
}

func (hc *HibernationController) restore(ctx context.Context, w *hibernatedWindow) {
	for _, s := range w.registry.All() {
		if s.Surface.IsDestroyed() {
			continue
		}
		s.Surface.Show()
		if err := s.Surface.RunScript(ctx, resumeScript); err != nil {
			hc.log.Warn().Err(err).Str("service", string(s.ID())).Msg("resume script failed")
		}
		s.setPaused(false)
	}

	hc.mu.Lock()
	w.hibernated = false
	w.snapshot = nil
	hc.mu.Unlock()
	hc.log.Info().Str("window", string(w.id)).Msg("window restored")
	if hc.events != nil {
		hc.events.Publish(bus.TopicWindowRestored, bus.WindowHibernationEvent{WindowID: w.id})
	}
}
