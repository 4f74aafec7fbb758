// Package cli wires configuration, logging, storage, and the event bus
// into an App shared by every command.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/config"
	"github.com/mattmireles/Hyperchat-sub000/internal/infrastructure/persistence/sqlite"
	"github.com/mattmireles/Hyperchat-sub000/internal/logging"
)

// App holds the dependencies shared across CLI commands.
type App struct {
	Manager *config.Manager
	Config  *config.Config
	Events  *bus.Bus
	Prompts *sqlite.PromptRepo

	db  *sql.DB
	ctx context.Context
}

// NewApp loads configuration, sets up logging, and opens the database.
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("configuration manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg := manager.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     logFormat(cfg.Logging.Format),
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	prompts := sqlite.NewPromptRepo(db)

	if cfg.History.RetentionDays > 0 {
		deleted, pruneErr := prompts.DeleteOlderThan(ctx, cfg.History.RetentionDays)
		if pruneErr != nil {
			logger.Warn().Err(pruneErr).Msg("prompt history prune failed")
		} else if deleted > 0 {
			logger.Debug().Int64("deleted", deleted).Msg("pruned prompt history")
		}
	}

	return &App{
		Manager: manager,
		Config:  cfg,
		Events:  bus.New(),
		Prompts: prompts,
		db:      db,
		ctx:     ctx,
	}, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// WatchConfig starts hot reload: edits to the config file republish the
// service set so live windows rebuild their sessions.
func (a *App) WatchConfig() error {
	a.Manager.OnConfigChange(func(cfg *config.Config) {
		a.Config = cfg
		a.Events.Publish(bus.TopicServicesUpdated, cfg.Descriptors())
	})
	return a.Manager.Watch()
}

// Close releases the database connection.
func (a *App) Close() error {
	if a.db != nil {
		return sqlite.Close(a.db)
	}
	return nil
}

// logFormat maps the config format names onto the logger's.
func logFormat(format string) string {
	if format == "json" {
		return "json"
	}
	return "console"
}
