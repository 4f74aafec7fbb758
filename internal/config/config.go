// Package config loads and watches the hyperchat configuration: which AI
// services are enabled, how the engine paces itself, and where logs and the
// prompt history database live. The file format is TOML, with HYPERCHAT_*
// environment variable overrides.
package config

import (
	"time"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// Config represents the complete configuration for hyperchat.
type Config struct {
	Logging  LoggingConfig   `mapstructure:"logging" toml:"logging"`
	Database DatabaseConfig  `mapstructure:"database" toml:"database"`
	Timing   TimingConfig    `mapstructure:"timing" toml:"timing"`
	Window   WindowConfig    `mapstructure:"window" toml:"window"`
	History  HistoryConfig   `mapstructure:"history" toml:"history"`
	Services []ServiceConfig `mapstructure:"services" toml:"services"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" toml:"level"`
	// Format is "text" or "json".
	Format string `mapstructure:"format" toml:"format"`
}

// DatabaseConfig locates the prompt history database.
type DatabaseConfig struct {
	// Path to the SQLite file. Resolved to XDG_DATA_HOME when empty.
	Path string `mapstructure:"path" toml:"path"`
}

// TimingConfig holds the engine's pacing delays in milliseconds.
type TimingConfig struct {
	// SchedulerStepMs is the gap between serialized startup loads.
	SchedulerStepMs int `mapstructure:"scheduler_step_ms" toml:"scheduler_step_ms"`
	// InjectionDelayMs is the settle-to-inject delay for script delivery.
	InjectionDelayMs int `mapstructure:"injection_delay_ms" toml:"injection_delay_ms"`
	// RefocusDelayMs is the submit-to-refocus delay for the shared input.
	RefocusDelayMs int `mapstructure:"refocus_delay_ms" toml:"refocus_delay_ms"`
	// CrashRecoveryMs is the crash-to-reload delay for dead web processes.
	CrashRecoveryMs int `mapstructure:"crash_recovery_ms" toml:"crash_recovery_ms"`
}

// SchedulerStep returns the scheduler step delay as a duration.
func (t TimingConfig) SchedulerStep() time.Duration {
	return time.Duration(t.SchedulerStepMs) * time.Millisecond
}

// InjectionDelay returns the injection delay as a duration.
func (t TimingConfig) InjectionDelay() time.Duration {
	return time.Duration(t.InjectionDelayMs) * time.Millisecond
}

// RefocusDelay returns the refocus delay as a duration.
func (t TimingConfig) RefocusDelay() time.Duration {
	return time.Duration(t.RefocusDelayMs) * time.Millisecond
}

// CrashRecovery returns the crash recovery delay as a duration.
func (t TimingConfig) CrashRecovery() time.Duration {
	return time.Duration(t.CrashRecoveryMs) * time.Millisecond
}

// WindowConfig controls the window chrome.
type WindowConfig struct {
	Width  int `mapstructure:"width" toml:"width"`
	Height int `mapstructure:"height" toml:"height"`
}

// HistoryConfig controls prompt history retention.
type HistoryConfig struct {
	// RetentionDays is how long submitted prompts are kept. 0 keeps forever.
	RetentionDays int `mapstructure:"retention_days" toml:"retention_days"`
	// RecentLimit is how many entries the history views fetch.
	RecentLimit int `mapstructure:"recent_limit" toml:"recent_limit"`
}

// ServiceConfig describes one AI service slot.
type ServiceConfig struct {
	ID      string `mapstructure:"id" toml:"id"`
	Name    string `mapstructure:"name" toml:"name"`
	// Mode is "navigation" or "injection".
	Mode    string `mapstructure:"mode" toml:"mode"`
	BaseURL string `mapstructure:"base_url" toml:"base_url"`
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Order   int    `mapstructure:"order" toml:"order"`
}

// Descriptors converts the configured services into domain descriptors.
func (c *Config) Descriptors() []entity.ServiceDescriptor {
	out := make([]entity.ServiceDescriptor, 0, len(c.Services))
	for _, s := range c.Services {
		mode := entity.DeliveryDOMInjection
		if s.Mode == "navigation" {
			mode = entity.DeliveryNavigationParameter
		}
		out = append(out, entity.ServiceDescriptor{
			ID:      entity.ServiceID(s.ID),
			Name:    s.Name,
			Mode:    mode,
			BaseURL: s.BaseURL,
			Enabled: s.Enabled,
			Order:   s.Order,
		})
	}
	return out
}
