package orchestrator

import (
	"context"

	"github.com/rs/zerolog"
)

// TeardownSequencer destroys sessions in the one order the embedded engine
// tolerates:
//
//  1. stop any in-flight navigation
//  2. unregister surface callbacks
//  3. clear coordinator back-references and drop the registry entry
//  4. detach the surface from its parent view
//  5. destroy the surface
//
// Skipping or reordering steps leaves the engine delivering events into
// freed state. Tearing down an already-destroyed session is a no-op.
type TeardownSequencer struct {
	registry *SessionRegistry
	log      zerolog.Logger
}

// NewTeardownSequencer creates a sequencer over registry.
func NewTeardownSequencer(registry *SessionRegistry, log zerolog.Logger) *TeardownSequencer {
	return &TeardownSequencer{
		registry: registry,
		log:      log.With().Str("component", "teardown").Logger(),
	}
}

// TeardownSession runs the full sequence for one session. Idempotent.
func (ts *TeardownSequencer) TeardownSession(ctx context.Context, s *Session) {
	if s.Surface.IsDestroyed() {
		return
	}
	log := ts.log.With().Str("service", string(s.ID())).Logger()

	if err := s.Surface.StopLoading(ctx); err != nil {
		log.Warn().Err(err).Msg("stop loading during teardown failed")
	}

	if s.tracker != nil {
		s.tracker.Close()
	}
	s.Surface.SetCallbacks(nil)

	s.clearHooks()
	ts.registry.Remove(s.ID())

	s.Surface.DetachFromParent()
	s.Surface.Destroy()

	log.Debug().Msg("session torn down")
}

// TeardownAll tears down every live session in registration order.
func (ts *TeardownSequencer) TeardownAll(ctx context.Context) {
	for _, s := range ts.registry.All() {
		ts.TeardownSession(ctx, s)
	}
}
