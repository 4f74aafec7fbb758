package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/repository"
)

// PromptCoordinator fans one prompt out to every live session, choosing the
// delivery path per service: embed the text in the navigation URL, or load
// the page and inject a fill-and-submit script.
type PromptCoordinator struct {
	registry  *SessionRegistry
	catalog   *delivery.Catalog
	state     *ProcessState
	scheduler *LoadScheduler
	dispatch  port.Dispatcher
	clipboard port.Clipboard
	prompts   repository.PromptRepository
	events    *bus.Bus
	log       zerolog.Logger

	injectionDelay time.Duration
	refocusDelay   time.Duration
}

// PromptCoordinatorOptions carries the coordinator's collaborators. Prompts
// may be nil to disable history recording.
type PromptCoordinatorOptions struct {
	Registry  *SessionRegistry
	Catalog   *delivery.Catalog
	State     *ProcessState
	Scheduler *LoadScheduler
	Dispatch  port.Dispatcher
	Clipboard port.Clipboard
	Prompts   repository.PromptRepository
	Events    *bus.Bus
	Log       zerolog.Logger

	InjectionDelay time.Duration
	RefocusDelay   time.Duration
}

// NewPromptCoordinator wires a coordinator from opts.
func NewPromptCoordinator(opts PromptCoordinatorOptions) *PromptCoordinator {
	return &PromptCoordinator{
		registry:       opts.Registry,
		catalog:        opts.Catalog,
		state:          opts.State,
		scheduler:      opts.Scheduler,
		dispatch:       opts.Dispatch,
		clipboard:      opts.Clipboard,
		prompts:        opts.Prompts,
		events:         opts.Events,
		log:            opts.Log.With().Str("component", "prompt").Logger(),
		injectionDelay: opts.InjectionDelay,
		refocusDelay:   opts.RefocusDelay,
	}
}

// ExecuteSharedPrompt submits text to all live sessions. The first
// submission of the process always starts new threads and turns the
// reply-to-all toggle on; afterwards the toggle decides. Empty input is
// ignored.
func (pc *PromptCoordinator) ExecuteSharedPrompt(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	mode := entity.PromptNewThread
	if pc.state.ConsumeFirstSubmit() {
		// Every service now carries a live conversation, so flip the
		// persisted toggle: the natural follow-up is a reply, not another
		// round of fresh threads.
		pc.state.SetReplyToAll(true)
		if pc.events != nil {
			pc.events.Publish(bus.TopicReplyModeChanged, bus.ReplyModeEvent{ReplyToAll: true})
		}
	} else if pc.state.ReplyToAll() {
		mode = entity.PromptReplyToAll
	}
	return pc.executeAll(ctx, text, mode)
}

// StartNewThread puts every session on a fresh conversation. With text, the
// prompt rides along (embedded in the URL or injected after load). Without
// text, the services just navigate home and the first-submit flag re-arms:
// the next submission will again start new threads everywhere.
func (pc *PromptCoordinator) StartNewThread(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	pc.scheduler.CancelAll(ctx)

	if text == "" {
		pc.state.Rearm()
		pc.scheduler.StartThreadPass(ctx, pc.registry.All())
		return nil
	}

	// Submitting text consumes the first-submit flag even if it was armed.
	pc.state.ConsumeFirstSubmit()
	return pc.executeAll(ctx, text, entity.PromptNewThread)
}

func (pc *PromptCoordinator) executeAll(ctx context.Context, text string, mode entity.PromptMode) error {
	pc.copyToClipboard(ctx, text)

	var firstErr error
	delivered := 0
	for _, s := range pc.registry.All() {
		if err := pc.deliver(ctx, s, text, mode); err != nil {
			pc.log.Error().Err(err).Str("service", string(s.ID())).Msg("prompt delivery failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivered++
	}
	pc.log.Info().
		Int("delivered", delivered).
		Str("mode", mode.String()).
		Msg("shared prompt dispatched")

	pc.record(ctx, text, mode)
	pc.scheduleRefocus()
	return firstErr
}

// deliver routes one prompt to one session.
func (pc *PromptCoordinator) deliver(ctx context.Context, s *Session, text string, mode entity.PromptMode) error {
	profile, ok := pc.catalog.Lookup(s.ID())
	if !ok {
		return fmt.Errorf("no delivery profile for %s", s.ID())
	}

	if mode == entity.PromptReplyToAll {
		// The conversation page is already loaded; fill and submit in
		// place after the readiness delay, so a page still streaming its
		// previous answer has settled down.
		pc.dispatch.PostDelayed(pc.injectionDelay, func() {
			if s.Surface.IsDestroyed() {
				return
			}
			if err := pc.inject(context.Background(), s, profile, text); err != nil {
				pc.log.Error().Err(err).Str("service", string(s.ID())).Msg("reply injection failed")
			}
		})
		return nil
	}

	if profile.Mode() == entity.DeliveryNavigationParameter {
		target, err := profile.NavigationURL(text)
		if err != nil {
			return err
		}
		s.setLastAttempted(target)
		return s.Surface.LoadURI(ctx, target)
	}

	// Injection service: load the fresh-conversation page, then inject once
	// the load settles. The post-settle delay gives client-side rendering
	// time to mount the composer.
	s.setAfterSettled(func() {
		pc.dispatch.PostDelayed(pc.injectionDelay, func() {
			if s.Surface.IsDestroyed() {
				return
			}
			if err := pc.inject(context.Background(), s, profile, text); err != nil {
				pc.log.Error().Err(err).Str("service", string(s.ID())).Msg("deferred injection failed")
			}
		})
	})
	target := profile.ThreadURL()
	s.setLastAttempted(target)
	return s.Surface.LoadURI(ctx, target)
}

func (pc *PromptCoordinator) inject(ctx context.Context, s *Session, profile *delivery.Profile, text string) error {
	if len(profile.InputSelectors) == 0 {
		return fmt.Errorf("service %s has no composer selectors", s.ID())
	}
	script, err := delivery.InjectionScript(profile, text)
	if err != nil {
		return err
	}
	return s.Surface.RunScript(ctx, script)
}

func (pc *PromptCoordinator) copyToClipboard(ctx context.Context, text string) {
	if pc.clipboard == nil || !pc.clipboard.Available() {
		return
	}
	if err := pc.clipboard.Copy(ctx, text); err != nil {
		pc.log.Warn().Err(err).Msg("clipboard copy failed")
	}
}

func (pc *PromptCoordinator) record(ctx context.Context, text string, mode entity.PromptMode) {
	if pc.prompts == nil {
		return
	}
	rec := entity.PromptRecord{Text: text, Mode: mode, SubmittedAt: time.Now()}
	if _, err := pc.prompts.SavePrompt(ctx, rec); err != nil {
		pc.log.Warn().Err(err).Msg("prompt history save failed")
	}
}

// scheduleRefocus asks the window chrome to hand keyboard focus back to the
// shared input once the services have had a beat to steal it.
func (pc *PromptCoordinator) scheduleRefocus() {
	if pc.events == nil {
		return
	}
	pc.dispatch.PostDelayed(pc.refocusDelay, func() {
		pc.events.Publish(bus.TopicInputRefocus, nil)
	})
}
