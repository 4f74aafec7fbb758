package cli

import (
	"context"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/infrastructure/clipboard"
	webkitui "github.com/mattmireles/Hyperchat-sub000/internal/infrastructure/webkit"
	"github.com/mattmireles/Hyperchat-sub000/internal/logging"
	"github.com/mattmireles/Hyperchat-sub000/internal/orchestrator"
)

const (
	gtkAppID     = "com.github.mattmireles.hyperchat"
	mainWindowID = entity.WindowID("main")
)

// RunGUI boots the GTK application and blocks until the last window
// closes. Returns the process exit code.
func RunGUI(app *App) int {
	webkitui.InitMainThread()
	log := logging.FromContext(app.Ctx())

	gtkApp := gtk.NewApplication(gtkAppID, gio.ApplicationFlagsNone)
	gtkApp.ConnectActivate(func() {
		if err := buildMainWindow(app.Ctx(), app, gtkApp); err != nil {
			log.Error().Err(err).Msg("failed to build main window")
			gtkApp.Quit()
		}
	})

	return gtkApp.Run(nil)
}

func buildMainWindow(ctx context.Context, app *App, gtkApp *gtk.Application) error {
	cfg := app.Config
	log := logging.FromContext(ctx)

	catalog, err := delivery.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("delivery catalog: %w", err)
	}

	win := webkitui.NewWindow(webkitui.WindowOptions{
		App:      gtkApp,
		WindowID: mainWindowID,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		Events:   app.Events,
		Log:      logging.Component(ctx, "window"),
	})

	factory := webkitui.NewFactory(webkitui.FactoryOptions{
		Container: win.SurfaceContainer(),
	})

	hibernation := orchestrator.NewHibernationController(logging.Component(ctx, "hibernation"), app.Events)

	// The snapshot source resolves lazily so it sees sessions created
	// after the orchestrator is up, including rebuilds.
	var orch *orchestrator.Orchestrator
	snapshots := webkitui.NewSnapshotProvider(func() *webkitui.Surface {
		if orch == nil {
			return nil
		}
		for _, s := range orch.Sessions() {
			if surface, ok := s.Surface.(*webkitui.Surface); ok && !surface.IsDestroyed() {
				return surface
			}
		}
		return nil
	}, logging.Component(ctx, "snapshot"))

	orch, err = orchestrator.New(ctx, orchestrator.Options{
		WindowID:    mainWindowID,
		Services:    cfg.Descriptors(),
		Catalog:     catalog,
		Factory:     factory,
		Dispatcher:  webkitui.NewDispatcher(),
		Clipboard:   clipboard.New(),
		Snapshots:   snapshots,
		Prompts:     app.Prompts,
		Events:      app.Events,
		State:       orchestrator.NewProcessState(),
		Hibernation: hibernation,
		Timing: orchestrator.Timing{
			SchedulerStep:  cfg.Timing.SchedulerStep(),
			InjectionDelay: cfg.Timing.InjectionDelay(),
			RefocusDelay:   cfg.Timing.RefocusDelay(),
			CrashRecovery:  cfg.Timing.CrashRecovery(),
		},
	})
	if err != nil {
		return fmt.Errorf("start orchestrator: %w", err)
	}

	unsubFocus := app.Events.Subscribe(bus.TopicWindowFocused, func(payload any) {
		ev, ok := payload.(bus.WindowFocusEvent)
		if !ok {
			return
		}
		hibernation.OnWindowFocused(ctx, ev.WindowID)
	})

	win.Attach(ctx, orch)
	win.ConnectCloseRequest(func() {
		unsubFocus()
		win.Detach()
		orch.Close(ctx)
	})

	if err := app.WatchConfig(); err != nil {
		log.Warn().Err(err).Msg("config hot reload unavailable")
	}

	win.Present()
	return nil
}
