package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// NavigationTracker observes one session's surface and maintains its
// navigation state machine: Idle -> Starting -> Committed -> Finished, with
// Failed and Crashed as terminal settling states. An engine-cancelled load
// of a prompt-carrying URL is expected churn and not a failure; any other
// cancellation settles as failed so the load queue keeps moving. A crashed
// web process is reloaded to the service home after a fixed delay.
type NavigationTracker struct {
	session  *Session
	profile  *delivery.Profile
	dispatch port.Dispatcher
	log      zerolog.Logger

	recoveryDelay time.Duration

	// onSettled fires when a load reaches Finished, Failed, or Crashed.
	onSettled func(*Session)
	// onLoading fires on every loading transition.
	onLoading func(*Session, bool)

	closed atomic.Bool
}

// NewNavigationTracker wires a tracker to session. Attach must be called
// before the first navigation.
func NewNavigationTracker(
	session *Session,
	profile *delivery.Profile,
	dispatch port.Dispatcher,
	recoveryDelay time.Duration,
	log zerolog.Logger,
	onSettled func(*Session),
	onLoading func(*Session, bool),
) *NavigationTracker {
	return &NavigationTracker{
		session:       session,
		profile:       profile,
		dispatch:      dispatch,
		log:           log.With().Str("service", string(session.ID())).Logger(),
		recoveryDelay: recoveryDelay,
		onSettled:     onSettled,
		onLoading:     onLoading,
	}
}

// Attach registers the tracker's callbacks on the session's surface and
// links the tracker to the session for teardown.
func (t *NavigationTracker) Attach() {
	t.session.tracker = t
	t.session.Surface.SetCallbacks(&port.SurfaceCallbacks{
		OnLoadChanged:       t.handleLoadChanged,
		OnLoadFailed:        t.handleLoadFailed,
		OnProcessTerminated: t.handleProcessTerminated,
		OnURIChanged:        t.handleURIChanged,
	})
}

// Close makes the tracker ignore all further surface events. It does not
// clear the surface callbacks; the teardown sequence does that explicitly.
func (t *NavigationTracker) Close() {
	t.closed.Store(true)
}

func (t *NavigationTracker) handleLoadChanged(event port.LoadEvent) {
	if t.closed.Load() {
		return
	}
	switch event {
	case port.LoadStarted:
		t.session.setState(entity.NavStarting)
		t.session.setLoading(true)
		t.emitLoading(true)
	case port.LoadCommitted:
		t.session.setState(entity.NavCommitted)
	case port.LoadFinished:
		t.session.setState(entity.NavFinished)
		t.session.setLoading(false)
		t.log.Debug().Str("uri", t.session.Surface.URI()).Msg("load finished")
		t.emitLoading(false)
		t.settle()
	}
}

func (t *NavigationTracker) handleLoadFailed(failingURI string, err error) {
	if t.closed.Load() {
		return
	}
	t.session.setLoading(false)
	t.emitLoading(false)

	if isCancellation(err) && t.profile.HasOneShotParam(failingURI) {
		// Rapid re-navigation cancelled a prompt-carrying URL. Forget the
		// URL so the prompt is never replayed by a retry or reload, and do
		// not count the session as settled.
		t.session.setLastAttempted("")
		t.session.setState(entity.NavIdle)
		t.log.Debug().Str("uri", failingURI).Msg("prompt navigation cancelled")
		return
	}

	// Everything else settles as failed, cancellations of plain loads
	// included: hibernation stops in-flight startup loads, and the
	// scheduler slot must be released for the queue to keep moving.
	t.session.setState(entity.NavFailed)
	t.log.Warn().Str("uri", failingURI).Err(err).Msg("navigation failed")
	t.settle()
}

func (t *NavigationTracker) handleProcessTerminated() {
	if t.closed.Load() {
		return
	}
	t.session.setState(entity.NavCrashed)
	t.session.setLoading(false)
	t.emitLoading(false)
	t.log.Warn().Msg("web process terminated, scheduling recovery")
	t.settle()

	home := t.profile.HomeURL
	t.dispatch.PostDelayed(t.recoveryDelay, func() {
		if t.closed.Load() || t.session.Surface.IsDestroyed() {
			return
		}
		t.session.setLastAttempted(home)
		if err := t.session.Surface.LoadURI(context.Background(), home); err != nil {
			t.log.Error().Err(err).Msg("crash recovery reload failed")
		}
	})
}

func (t *NavigationTracker) handleURIChanged(uri string) {
	if t.closed.Load() {
		return
	}
	t.log.Trace().Str("uri", uri).Msg("uri changed")
}

func (t *NavigationTracker) emitLoading(loading bool) {
	if t.onLoading != nil {
		t.onLoading(t.session, loading)
	}
}

func (t *NavigationTracker) settle() {
	if fn := t.session.takeAfterSettled(); fn != nil {
		fn()
	}
	if t.onSettled != nil {
		t.onSettled(t.session)
	}
}

// isCancellation reports whether err is the engine aborting a navigation in
// favor of a newer one. Matches the typed error when available, with a
// string fallback for engines that only surface GError text.
func isCancellation(err error) bool {
	if err == nil {
		return false
	}
	var navErr *port.NavigationError
	if errors.As(err, &navErr) {
		return navErr.Cancelled()
	}
	return strings.Contains(strings.ToLower(err.Error()), "cancel")
}
