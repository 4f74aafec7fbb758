package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// validateConfig checks all config values for consistency.
func validateConfig(config *Config) error {
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("logging.level: unknown level %q", config.Logging.Level)
	}
	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: must be \"text\" or \"json\", got %q", config.Logging.Format)
	}

	if err := validateTiming(config.Timing); err != nil {
		return err
	}
	if config.Window.Width <= 0 || config.Window.Height <= 0 {
		return fmt.Errorf("window: width and height must be positive")
	}
	if config.History.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days: must not be negative")
	}
	if config.History.RecentLimit <= 0 {
		return fmt.Errorf("history.recent_limit: must be positive")
	}
	return validateServices(config.Services)
}

func validateTiming(t TimingConfig) error {
	for name, v := range map[string]int{
		"timing.scheduler_step_ms":  t.SchedulerStepMs,
		"timing.injection_delay_ms": t.InjectionDelayMs,
		"timing.refocus_delay_ms":   t.RefocusDelayMs,
		"timing.crash_recovery_ms":  t.CrashRecoveryMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s: must not be negative", name)
		}
	}
	return nil
}

func validateServices(services []ServiceConfig) error {
	if len(services) == 0 {
		return fmt.Errorf("services: at least one service must be configured")
	}
	seen := make(map[string]bool, len(services))
	enabled := 0
	for _, s := range services {
		if s.ID == "" {
			return fmt.Errorf("services: entry with empty id")
		}
		if seen[s.ID] {
			return fmt.Errorf("services: duplicate id %q", s.ID)
		}
		seen[s.ID] = true

		switch s.Mode {
		case "navigation", "injection":
		default:
			return fmt.Errorf("services.%s.mode: must be \"navigation\" or \"injection\", got %q", s.ID, s.Mode)
		}

		u, err := url.Parse(s.BaseURL)
		if err != nil || !strings.HasPrefix(u.Scheme, "http") {
			return fmt.Errorf("services.%s.base_url: invalid URL %q", s.ID, s.BaseURL)
		}
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("services: at least one service must be enabled")
	}
	return nil
}
