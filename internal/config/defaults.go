package config

const (
	defaultSchedulerStepMs  = 300
	defaultInjectionDelayMs = 1500
	defaultRefocusDelayMs   = 500
	defaultCrashRecoveryMs  = 2000

	defaultWindowWidth  = 1600
	defaultWindowHeight = 900

	defaultRetentionDays = 90
	defaultRecentLimit   = 50
)

// DefaultConfig returns the stock configuration: all four bundled services
// enabled, side by side in their usual order.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Database: DatabaseConfig{
			// Path is resolved in Load when empty.
		},
		Timing: TimingConfig{
			SchedulerStepMs:  defaultSchedulerStepMs,
			InjectionDelayMs: defaultInjectionDelayMs,
			RefocusDelayMs:   defaultRefocusDelayMs,
			CrashRecoveryMs:  defaultCrashRecoveryMs,
		},
		Window: WindowConfig{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
		},
		History: HistoryConfig{
			RetentionDays: defaultRetentionDays,
			RecentLimit:   defaultRecentLimit,
		},
		Services: []ServiceConfig{
			{ID: "chatgpt", Name: "ChatGPT", Mode: "navigation", BaseURL: "https://chatgpt.com", Enabled: true, Order: 0},
			{ID: "claude", Name: "Claude", Mode: "injection", BaseURL: "https://claude.ai", Enabled: true, Order: 1},
			{ID: "gemini", Name: "Gemini", Mode: "injection", BaseURL: "https://gemini.google.com/app", Enabled: true, Order: 2},
			{ID: "perplexity", Name: "Perplexity", Mode: "navigation", BaseURL: "https://www.perplexity.ai", Enabled: true, Order: 3},
		},
	}
}
