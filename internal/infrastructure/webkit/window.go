package webkit

import (
	"context"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

const (
	defaultWindowTitle  = "Hyperchat"
	defaultWindowWidth  = 1600
	defaultWindowHeight = 900
	surfaceSpacing      = 4
	chromeMargin        = 8
)

// SessionRunner is the slice of the orchestrator the window chrome
// drives: prompt fan-out, the reply mode toggle, and bulk reload.
type SessionRunner interface {
	ExecuteSharedPrompt(ctx context.Context, text string) error
	StartNewThread(ctx context.Context, text string) error
	SetReplyToAll(on bool)
	ReplyToAll() bool
	ReloadAll(ctx context.Context)
}

// WindowOptions configures one top-level window.
type WindowOptions struct {
	App      *gtk.Application
	WindowID entity.WindowID
	Title    string
	Width    int
	Height   int
	Events   *bus.Bus
	Log      zerolog.Logger
}

// Window is the GTK chrome around one session set: a homogeneous row of
// rendering surfaces above a single shared prompt entry. Enter submits to
// every session; Ctrl+Enter forces new threads everywhere.
type Window struct {
	id       entity.WindowID
	title    string
	win      *gtk.ApplicationWindow
	root     *gtk.Box
	row      *gtk.Box
	snapshot *gtk.Picture
	entry    *gtk.Entry
	replyAll *gtk.CheckButton
	events   *bus.Bus
	log      zerolog.Logger

	loading     map[entity.ServiceID]bool
	unsubscribe []func()
}

// NewWindow builds the window chrome. Surfaces are parented into the
// window by the factory; call SurfaceContainer before creating them.
func NewWindow(opts WindowOptions) *Window {
	if opts.Title == "" {
		opts.Title = defaultWindowTitle
	}
	if opts.Width <= 0 {
		opts.Width = defaultWindowWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultWindowHeight
	}

	win := gtk.NewApplicationWindow(opts.App)
	win.SetTitle(opts.Title)
	win.SetDefaultSize(opts.Width, opts.Height)

	row := gtk.NewBox(gtk.OrientationHorizontal, surfaceSpacing)
	row.SetHomogeneous(true)
	row.SetHexpand(true)
	row.SetVexpand(true)

	// The snapshot picture sits over the surface row and covers it while
	// the window is hibernated, so the frozen content still looks alive.
	snapshot := gtk.NewPicture()
	snapshot.SetHexpand(true)
	snapshot.SetVexpand(true)
	snapshot.SetVisible(false)

	overlay := gtk.NewOverlay()
	overlay.SetChild(row)
	overlay.AddOverlay(snapshot)

	entry := gtk.NewEntry()
	entry.SetPlaceholderText("Ask every service at once")
	entry.SetHexpand(true)

	replyAll := gtk.NewCheckButtonWithLabel("Reply all")
	replyAll.SetTooltipText("Continue the current conversations instead of starting new threads")

	composer := gtk.NewBox(gtk.OrientationHorizontal, chromeMargin)
	composer.SetMarginStart(chromeMargin)
	composer.SetMarginEnd(chromeMargin)
	composer.SetMarginTop(chromeMargin)
	composer.SetMarginBottom(chromeMargin)
	composer.Append(entry)
	composer.Append(replyAll)

	root := gtk.NewBox(gtk.OrientationVertical, 0)
	root.Append(overlay)
	root.Append(composer)
	win.SetChild(root)

	w := &Window{
		id:       opts.WindowID,
		title:    opts.Title,
		win:      win,
		root:     root,
		row:      row,
		snapshot: snapshot,
		entry:    entry,
		replyAll: replyAll,
		events:   opts.Events,
		log:      opts.Log,
		loading:  make(map[entity.ServiceID]bool),
	}

	win.Connect("notify::is-active", func() {
		if win.IsActive() && w.events != nil {
			w.events.Publish(bus.TopicWindowFocused, bus.WindowFocusEvent{WindowID: w.id})
		}
	})

	return w
}

// SurfaceContainer returns the box that hosts the rendering surfaces.
// Hand it to the surface factory before building the orchestrator.
func (w *Window) SurfaceContainer() *gtk.Box {
	return w.row
}

// Attach wires the shared prompt entry and the bus subscriptions to the
// session runner. Call once after the orchestrator is up.
func (w *Window) Attach(ctx context.Context, runner SessionRunner) {
	w.entry.ConnectActivate(func() {
		w.submit(ctx, runner, false)
	})

	w.replyAll.SetActive(runner.ReplyToAll())
	w.replyAll.ConnectToggled(func() {
		runner.SetReplyToAll(w.replyAll.Active())
	})

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if state&gdk.ControlMask == 0 {
			return false
		}
		switch keyval {
		case gdk.KEY_Return, gdk.KEY_KP_Enter:
			w.submit(ctx, runner, true)
			return true
		case gdk.KEY_r:
			runner.ReloadAll(ctx)
			return true
		}
		return false
	})
	w.entry.AddController(keys)

	if w.events == nil {
		return
	}
	w.unsubscribe = append(w.unsubscribe,
		w.events.Subscribe(bus.TopicInputRefocus, func(any) {
			w.entry.GrabFocus()
		}),
		w.events.Subscribe(bus.TopicSessionsReady, func(payload any) {
			ev, ok := payload.(bus.WindowFocusEvent)
			if ok && ev.WindowID == w.id {
				w.entry.GrabFocus()
			}
		}),
		w.events.Subscribe(bus.TopicSessionLoading, func(payload any) {
			ev, ok := payload.(bus.SessionLoadingEvent)
			if !ok {
				return
			}
			if ev.Loading {
				w.loading[ev.ServiceID] = true
			} else {
				delete(w.loading, ev.ServiceID)
			}
			w.refreshTitle()
		}),
		w.events.Subscribe(bus.TopicReplyModeChanged, func(payload any) {
			ev, ok := payload.(bus.ReplyModeEvent)
			if ok && w.replyAll.Active() != ev.ReplyToAll {
				w.replyAll.SetActive(ev.ReplyToAll)
			}
		}),
		w.events.Subscribe(bus.TopicWindowHibernated, func(payload any) {
			ev, ok := payload.(bus.WindowHibernationEvent)
			if ok && ev.WindowID == w.id {
				w.showSnapshot(ev.Bitmap)
			}
		}),
		w.events.Subscribe(bus.TopicWindowRestored, func(payload any) {
			ev, ok := payload.(bus.WindowHibernationEvent)
			if ok && ev.WindowID == w.id {
				w.snapshot.SetVisible(false)
			}
		}),
	)
}

// showSnapshot covers the surface row with the hibernation bitmap. A
// failed capture just leaves the hidden surfaces uncovered.
func (w *Window) showSnapshot(bitmap []byte) {
	if len(bitmap) == 0 {
		return
	}
	texture, err := gdk.NewTextureFromBytes(glib.NewBytes(bitmap))
	if err != nil {
		w.log.Warn().Err(err).Msg("snapshot overlay decode failed")
		return
	}
	w.snapshot.SetPaintable(texture)
	w.snapshot.SetVisible(true)
}

func (w *Window) submit(ctx context.Context, runner SessionRunner, newThread bool) {
	text := w.entry.Text()
	var err error
	if newThread {
		err = runner.StartNewThread(ctx, text)
	} else {
		err = runner.ExecuteSharedPrompt(ctx, text)
	}
	if err != nil {
		w.log.Error().Err(err).Msg("prompt submission failed")
		return
	}
	w.entry.SetText("")
}

func (w *Window) refreshTitle() {
	if len(w.loading) == 0 {
		w.win.SetTitle(w.title)
		return
	}
	w.win.SetTitle(fmt.Sprintf("%s (loading %d)", w.title, len(w.loading)))
}

// ConnectCloseRequest runs fn when the user closes the window, then lets
// the close proceed.
func (w *Window) ConnectCloseRequest(fn func()) {
	w.win.ConnectCloseRequest(func() bool {
		fn()
		return false
	})
}

// Present shows the window and raises it.
func (w *Window) Present() {
	w.win.Present()
}

// Detach drops the window's bus subscriptions.
func (w *Window) Detach() {
	for _, cancel := range w.unsubscribe {
		cancel()
	}
	w.unsubscribe = nil
}
