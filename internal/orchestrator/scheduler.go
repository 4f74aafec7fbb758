package orchestrator

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

type queueItem struct {
	session *Session
	url     string
}

// LoadScheduler serializes page loads across a window's sessions: strict
// FIFO with a single in-flight slot, so N embedded engines never thrash the
// machine by loading at once. Sessions already resting at their home page
// are skipped unless the pass is forced. A one-shot ready latch fires the
// first time every session of the window has settled.
type LoadScheduler struct {
	dispatch port.Dispatcher
	catalog  *delivery.Catalog
	log      zerolog.Logger

	stepDelay time.Duration

	// onAllReady fires at most once, when the first pass drains.
	onAllReady func()

	mu         sync.Mutex
	queue      []queueItem
	inFlight   *Session
	force      bool
	pending    int
	readyFired bool
}

// NewLoadScheduler creates a scheduler. stepDelay is the settle-to-next-load
// gap that lets the engine release resources between loads.
func NewLoadScheduler(
	dispatch port.Dispatcher,
	catalog *delivery.Catalog,
	stepDelay time.Duration,
	log zerolog.Logger,
	onAllReady func(),
) *LoadScheduler {
	return &LoadScheduler{
		dispatch:   dispatch,
		catalog:    catalog,
		log:        log.With().Str("component", "scheduler").Logger(),
		stepDelay:  stepDelay,
		onAllReady: onAllReady,
	}
}

// EnqueueAll appends every session's home-page load to the queue, in the
// given order. Call Start (or let an earlier pass finish) to begin loading.
func (ls *LoadScheduler) EnqueueAll(sessions []*Session) {
	ls.mu.Lock()
	for _, s := range sessions {
		profile, ok := ls.catalog.Lookup(s.ID())
		if !ok {
			ls.log.Error().Str("service", string(s.ID())).Msg("no delivery profile, skipping enqueue")
			continue
		}
		ls.queue = append(ls.queue, queueItem{session: s, url: profile.HomeURL})
		ls.pending++
	}
	ls.mu.Unlock()
}

// Start begins working the queue.
func (ls *LoadScheduler) Start(ctx context.Context) {
	ls.advance(ctx)
}

// ForceReloadAll drops whatever the queue still holds and repopulates it
// with every session, reloading each regardless of where it currently
// rests. An in-flight load keeps its slot; the new pass takes over when it
// settles. The force flag covers exactly this one pass and clears itself
// when the pass drains.
func (ls *LoadScheduler) ForceReloadAll(ctx context.Context, sessions []*Session) {
	ls.mu.Lock()
	dropped := len(ls.queue)
	ls.queue = nil
	ls.pending = 0
	if ls.inFlight != nil {
		ls.pending = 1
	}
	ls.force = true
	ls.mu.Unlock()

	if dropped > 0 {
		ls.log.Debug().Int("dropped", dropped).Msg("queue cleared for forced reload")
	}
	ls.EnqueueAll(sessions)
	ls.advance(ctx)
}

// StartThreadPass queues a forced load of every session's fresh-conversation
// page. Callers cancel any earlier pass first; the old pages are about to be
// replaced regardless.
func (ls *LoadScheduler) StartThreadPass(ctx context.Context, sessions []*Session) {
	ls.mu.Lock()
	ls.force = true
	for _, s := range sessions {
		profile, ok := ls.catalog.Lookup(s.ID())
		if !ok {
			continue
		}
		ls.queue = append(ls.queue, queueItem{session: s, url: profile.ThreadURL()})
		ls.pending++
	}
	ls.mu.Unlock()
	ls.advance(ctx)
}

// OnSessionSettled advances the queue when the in-flight session's load
// reaches a terminal state. Settle reports for sessions the scheduler is not
// waiting on (a later crash of a loaded page) are ignored here.
func (ls *LoadScheduler) OnSessionSettled(ctx context.Context, s *Session) {
	ls.mu.Lock()
	if ls.inFlight != s {
		ls.mu.Unlock()
		return
	}
	ls.inFlight = nil
	ls.pending--
	drained := len(ls.queue) == 0 && ls.pending == 0
	if drained {
		ls.force = false
	}
	fireReady := drained && !ls.readyFired
	if fireReady {
		ls.readyFired = true
	}
	ls.mu.Unlock()

	if fireReady {
		ls.log.Info().Msg("all sessions settled")
		if ls.onAllReady != nil {
			ls.onAllReady()
		}
	}
	if !drained {
		ls.dispatch.PostDelayed(ls.stepDelay, func() { ls.advance(ctx) })
	}
}

// CancelAll aborts the in-flight load and empties the queue. Used when a
// new-thread action is about to replace every page anyway.
func (ls *LoadScheduler) CancelAll(ctx context.Context) {
	ls.mu.Lock()
	inFlight := ls.inFlight
	dropped := len(ls.queue)
	ls.queue = nil
	ls.inFlight = nil
	ls.pending = 0
	ls.force = false
	ls.mu.Unlock()

	if inFlight != nil {
		if err := inFlight.Surface.StopLoading(ctx); err != nil {
			ls.log.Warn().Err(err).Str("service", string(inFlight.ID())).Msg("stop loading failed")
		}
	}
	if dropped > 0 || inFlight != nil {
		ls.log.Debug().Int("dropped", dropped).Msg("load queue cancelled")
	}
}

// advance pops queue items until one actually needs loading, skipping
// at-home sessions, then issues that load.
func (ls *LoadScheduler) advance(ctx context.Context) {
	ls.mu.Lock()
	if ls.inFlight != nil {
		ls.mu.Unlock()
		return
	}
	var next *queueItem
	for len(ls.queue) > 0 {
		item := ls.queue[0]
		ls.queue = ls.queue[1:]
		if !ls.force && ls.atRest(item) {
			// Already resting at home; counts as settled for the latch.
			ls.pending--
			continue
		}
		next = &item
		break
	}
	if next == nil {
		fireReady := ls.pending == 0 && !ls.readyFired
		if fireReady {
			ls.readyFired = true
		}
		ls.mu.Unlock()
		if fireReady {
			ls.log.Info().Msg("all sessions settled")
			if ls.onAllReady != nil {
				ls.onAllReady()
			}
		}
		return
	}
	ls.inFlight = next.session
	ls.mu.Unlock()

	s, target := next.session, next.url
	ls.log.Debug().Str("service", string(s.ID())).Str("uri", target).Msg("loading")
	s.setLastAttempted(target)
	if err := s.Surface.LoadURI(ctx, target); err != nil {
		ls.log.Error().Err(err).Str("service", string(s.ID())).Msg("load failed to start")
		ls.OnSessionSettled(ctx, s)
	}
}

// atRest reports whether the session is already settled at its home page.
func (ls *LoadScheduler) atRest(item queueItem) bool {
	s := item.session
	if s.State() != entity.NavFinished {
		return false
	}
	return sameLocation(s.Surface.URI(), item.url)
}

// sameLocation compares two URLs ignoring scheme differences, trailing
// slashes, query, and fragment.
func sameLocation(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	trim := func(p string) string { return strings.TrimSuffix(p, "/") }
	return ua.Host == ub.Host && trim(ua.Path) == trim(ub.Path)
}
