package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/repository"
	"github.com/mattmireles/Hyperchat-sub000/internal/logging"
)

// Timing collects the fixed delays the engine gives the platform to settle
// between steps. All of them flow through the Dispatcher, so tests drive
// them with a manual clock.
type Timing struct {
	// SchedulerStep is the gap between one session settling and the next
	// queued load starting.
	SchedulerStep time.Duration
	// InjectionDelay is how long after a page settles before the prompt
	// script is injected, giving client-side rendering time to mount the
	// composer.
	InjectionDelay time.Duration
	// RefocusDelay is how long after a submission before keyboard focus is
	// handed back to the shared input.
	RefocusDelay time.Duration
	// CrashRecovery is how long after a web process dies before its session
	// reloads the service home page.
	CrashRecovery time.Duration
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		SchedulerStep:  300 * time.Millisecond,
		InjectionDelay: 1500 * time.Millisecond,
		RefocusDelay:   500 * time.Millisecond,
		CrashRecovery:  2 * time.Second,
	}
}

// Options configures one window's orchestrator. Factory, Dispatcher,
// Catalog, Events, and State are required; Clipboard, Snapshots, Prompts,
// and Hibernation are optional.
type Options struct {
	WindowID entity.WindowID
	Services []entity.ServiceDescriptor

	Catalog     *delivery.Catalog
	Factory     port.SurfaceFactory
	Dispatcher  port.Dispatcher
	Clipboard   port.Clipboard
	Snapshots   port.SnapshotProvider
	Prompts     repository.PromptRepository
	Events      *bus.Bus
	State       *ProcessState
	Hibernation *HibernationController
	Timing      Timing
}

// Orchestrator owns one window's session set end to end: creation, initial
// serialized loading, prompt fan-out, and teardown.
type Orchestrator struct {
	windowID    entity.WindowID
	catalog     *delivery.Catalog
	factory     port.SurfaceFactory
	dispatch    port.Dispatcher
	events      *bus.Bus
	state       *ProcessState
	hibernation *HibernationController
	timing      Timing

	registry  *SessionRegistry
	scheduler *LoadScheduler
	prompter  *PromptCoordinator
	teardown  *TeardownSequencer

	unsubscribe []func()
	closed      atomic.Bool
}

// New builds the orchestrator, creates a session per enabled service, and
// starts the serialized initial load pass.
func New(ctx context.Context, opts Options) (*Orchestrator, error) {
	if opts.Factory == nil || opts.Dispatcher == nil || opts.Catalog == nil ||
		opts.Events == nil || opts.State == nil {
		return nil, fmt.Errorf("orchestrator: missing required option")
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	log := logging.Component(ctx, "orchestrator").
		With().Str("window", string(opts.WindowID)).Logger()

	o := &Orchestrator{
		windowID:    opts.WindowID,
		catalog:     opts.Catalog,
		factory:     opts.Factory,
		dispatch:    opts.Dispatcher,
		events:      opts.Events,
		state:       opts.State,
		hibernation: opts.Hibernation,
		timing:      opts.Timing,
		registry:    NewSessionRegistry(),
	}

	windowID := opts.WindowID
	o.scheduler = NewLoadScheduler(opts.Dispatcher, opts.Catalog, opts.Timing.SchedulerStep, log, func() {
		opts.Events.Publish(bus.TopicSessionsReady, bus.WindowFocusEvent{WindowID: windowID})
	})
	o.teardown = NewTeardownSequencer(o.registry, log)
	o.prompter = NewPromptCoordinator(PromptCoordinatorOptions{
		Registry:       o.registry,
		Catalog:        opts.Catalog,
		State:          opts.State,
		Scheduler:      o.scheduler,
		Dispatch:       opts.Dispatcher,
		Clipboard:      opts.Clipboard,
		Prompts:        opts.Prompts,
		Events:         opts.Events,
		Log:            log,
		InjectionDelay: opts.Timing.InjectionDelay,
		RefocusDelay:   opts.Timing.RefocusDelay,
	})

	for _, desc := range entity.EnabledSorted(opts.Services) {
		if _, err := o.createSession(ctx, log, desc); err != nil {
			o.Close(ctx)
			return nil, fmt.Errorf("create session %s: %w", desc.ID, err)
		}
	}

	if o.hibernation != nil {
		o.hibernation.RegisterWindow(o.windowID, o.registry, opts.Snapshots)
	}

	o.unsubscribe = append(o.unsubscribe, opts.Events.Subscribe(bus.TopicServicesUpdated, func(payload any) {
		services, ok := payload.([]entity.ServiceDescriptor)
		if !ok {
			return
		}
		o.dispatch.Post(func() {
			if err := o.Rebuild(ctx, services); err != nil {
				log.Error().Err(err).Msg("session rebuild failed")
			}
		})
	}))

	o.scheduler.EnqueueAll(o.registry.All())
	o.scheduler.Start(ctx)
	log.Info().Int("sessions", o.registry.Len()).Msg("orchestrator started")
	return o, nil
}

func (o *Orchestrator) createSession(ctx context.Context, log zerolog.Logger, desc entity.ServiceDescriptor) (*Session, error) {
	profile, ok := o.catalog.Lookup(desc.ID)
	if !ok {
		return nil, fmt.Errorf("no delivery profile for %s", desc.ID)
	}
	surface, err := o.factory.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	session, err := o.registry.Create(desc, surface)
	if err != nil {
		surface.Destroy()
		return nil, err
	}
	tracker := NewNavigationTracker(
		session, profile, o.dispatch, o.timing.CrashRecovery, log,
		func(s *Session) { o.scheduler.OnSessionSettled(ctx, s) },
		func(s *Session, loading bool) {
			o.events.Publish(bus.TopicSessionLoading, bus.SessionLoadingEvent{
				ServiceID: s.ID(),
				Loading:   loading,
			})
		},
	)
	tracker.Attach()
	return session, nil
}

// Rebuild reconciles the live session set against a new service list:
// sessions for disabled services are torn down, sessions for newly enabled
// services are created and loaded. Surviving sessions are untouched.
func (o *Orchestrator) Rebuild(ctx context.Context, services []entity.ServiceDescriptor) error {
	log := logging.Component(ctx, "orchestrator")
	wanted := make(map[entity.ServiceID]entity.ServiceDescriptor)
	for _, desc := range entity.EnabledSorted(services) {
		wanted[desc.ID] = desc
	}

	for _, s := range o.registry.All() {
		if _, keep := wanted[s.ID()]; !keep {
			o.teardown.TeardownSession(ctx, s)
		}
	}

	var created []*Session
	for _, desc := range entity.EnabledSorted(services) {
		if _, exists := o.registry.Get(desc.ID); exists {
			continue
		}
		s, err := o.createSession(ctx, log, desc)
		if err != nil {
			return err
		}
		created = append(created, s)
	}

	if len(created) > 0 {
		o.scheduler.EnqueueAll(created)
		o.scheduler.Start(ctx)
	}
	return nil
}

// ReloadAll force-reloads every session through the serialized queue.
func (o *Orchestrator) ReloadAll(ctx context.Context) {
	o.scheduler.ForceReloadAll(ctx, o.registry.All())
}

// ExecuteSharedPrompt forwards to the window's prompt coordinator.
func (o *Orchestrator) ExecuteSharedPrompt(ctx context.Context, text string) error {
	return o.prompter.ExecuteSharedPrompt(ctx, text)
}

// StartNewThread forwards to the window's prompt coordinator.
func (o *Orchestrator) StartNewThread(ctx context.Context, text string) error {
	return o.prompter.StartNewThread(ctx, text)
}

// SetReplyToAll toggles whether submissions continue existing
// conversations instead of starting new threads.
func (o *Orchestrator) SetReplyToAll(on bool) {
	o.state.SetReplyToAll(on)
}

// ReplyToAll reports the current reply mode.
func (o *Orchestrator) ReplyToAll() bool {
	return o.state.ReplyToAll()
}

// Sessions returns the window's live sessions in display order.
func (o *Orchestrator) Sessions() []*Session {
	return o.registry.All()
}

// WindowID returns the window this orchestrator belongs to.
func (o *Orchestrator) WindowID() entity.WindowID {
	return o.windowID
}

// Close tears down every session and detaches from the bus and the
// hibernation controller. Idempotent.
func (o *Orchestrator) Close(ctx context.Context) {
	if o.closed.Swap(true) {
		return
	}
	for _, cancel := range o.unsubscribe {
		cancel()
	}
	o.scheduler.CancelAll(ctx)
	o.teardown.TeardownAll(ctx)
	if o.hibernation != nil {
		o.hibernation.UnregisterWindow(o.windowID)
	}
}
