// Package orchestrator implements the session lifecycle engine: one
// rendering surface per enabled AI service, navigation state tracking,
// serialized initial loads, shared prompt delivery, window hibernation, and
// ordered teardown.
package orchestrator

import (
	"fmt"
	"sync"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// Session binds one enabled service to its rendering surface and tracks its
// mutable navigation state. A surface belongs to exactly one session.
type Session struct {
	Descriptor entity.ServiceDescriptor
	Surface    port.RenderingSurface

	tracker *NavigationTracker

	mu            sync.Mutex
	state         entity.NavigationState
	lastAttempted string
	loading       bool
	paused        bool
	afterSettled  func()
}

// ID returns the session's service identifier.
func (s *Session) ID() entity.ServiceID {
	return s.Descriptor.ID
}

// State returns the current navigation state.
func (s *Session) State() entity.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(state entity.NavigationState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// IsLoading returns true while a navigation is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// LastAttemptedURL returns the most recent URL handed to the surface. It is
// cleared when the engine cancels a one-shot prompt URL, so the prompt is
// never replayed.
func (s *Session) LastAttemptedURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAttempted
}

func (s *Session) setLastAttempted(url string) {
	s.mu.Lock()
	s.lastAttempted = url
	s.mu.Unlock()
}

// Paused reports whether the session's window is hibernated.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) setPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
}

// setAfterSettled arms a one-shot hook run after the next settled load.
func (s *Session) setAfterSettled(fn func()) {
	s.mu.Lock()
	s.afterSettled = fn
	s.mu.Unlock()
}

// takeAfterSettled disarms and returns the hook, or nil.
func (s *Session) takeAfterSettled() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn := s.afterSettled
	s.afterSettled = nil
	return fn
}

// clearHooks drops all coordinator references held by the session. Part of
// the teardown sequence.
func (s *Session) clearHooks() {
	s.mu.Lock()
	s.afterSettled = nil
	s.mu.Unlock()
}

// SessionRegistry is the authoritative map of live sessions, keyed by
// service ID and iterated in registration order.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[entity.ServiceID]*Session
	order    []entity.ServiceID
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[entity.ServiceID]*Session)}
}

// Create registers a session for desc backed by surface. Creating a second
// session for the same service is a programming error and is rejected.
func (r *SessionRegistry) Create(desc entity.ServiceDescriptor, surface port.RenderingSurface) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[desc.ID]; exists {
		return nil, fmt.Errorf("session already registered for %s", desc.ID)
	}
	s := &Session{
		Descriptor: desc,
		Surface:    surface,
		state:      entity.NavIdle,
	}
	r.sessions[desc.ID] = s
	r.order = append(r.order, desc.ID)
	return s, nil
}

// Get returns the session for id.
func (r *SessionRegistry) Get(id entity.ServiceID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops the session for id from the registry. The caller is
// responsible for tearing the session down first.
func (r *SessionRegistry) Remove(id entity.ServiceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
}

// All returns live sessions in registration order.
func (r *SessionRegistry) All() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sessions[id])
	}
	return out
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
