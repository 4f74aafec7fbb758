package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// defaultConfigTOML is written on first run so users have a commented file
// to edit. It mirrors DefaultConfig.
const defaultConfigTOML = `# hyperchat configuration

[logging]
# trace, debug, info, warn, error
level = "info"
# text or json
format = "text"

[database]
# Path to the prompt history database. Defaults to XDG_DATA_HOME/hyperchat.
path = ""

[timing]
# Delays in milliseconds. Raise these on slow machines.
scheduler_step_ms = 300
injection_delay_ms = 1500
refocus_delay_ms = 500
crash_recovery_ms = 2000

[window]
width = 1600
height = 900

[history]
retention_days = 90
recent_limit = 50

[[services]]
id = "chatgpt"
name = "ChatGPT"
mode = "navigation"
base_url = "https://chatgpt.com"
enabled = true
order = 0

[[services]]
id = "claude"
name = "Claude"
mode = "injection"
base_url = "https://claude.ai"
enabled = true
order = 1

[[services]]
id = "gemini"
name = "Gemini"
mode = "injection"
base_url = "https://gemini.google.com/app"
enabled = true
order = 2

[[services]]
id = "perplexity"
name = "Perplexity"
mode = "navigation"
base_url = "https://www.perplexity.ai"
enabled = true
order = 3
`

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // current directory for development

	v.SetEnvPrefix("HYPERCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "HYPERCHAT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind HYPERCHAT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "HYPERCHAT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("bind HYPERCHAT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration from file and environment. A default config
// file is created on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// Get returns the loaded configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("timing.scheduler_step_ms", defaults.Timing.SchedulerStepMs)
	m.viper.SetDefault("timing.injection_delay_ms", defaults.Timing.InjectionDelayMs)
	m.viper.SetDefault("timing.refocus_delay_ms", defaults.Timing.RefocusDelayMs)
	m.viper.SetDefault("timing.crash_recovery_ms", defaults.Timing.CrashRecoveryMs)
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("history.retention_days", defaults.History.RetentionDays)
	m.viper.SetDefault("history.recent_limit", defaults.History.RecentLimit)
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if createErr := m.createDefaultConfig(); createErr != nil {
				configDir, _ := GetConfigDir()
				return fmt.Errorf("create default config in %s: %w", configDir, createErr)
			}
			if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
				return fmt.Errorf("read newly created config file: %w", rereadErr)
			}
			return nil
		}
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configDir, _ := GetConfigDir()
			configFile = filepath.Join(configDir, "config.toml")
		}
		return fmt.Errorf("read config file %s: %w\ncheck that it is valid TOML", configFile, err)
	}
	return nil
}

func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigTOML), filePerm); err != nil {
		return err
	}
	// Ship the JSON schema next to it so editors can validate edits.
	if err := GenerateSchemaFile(); err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", m.viper.ConfigFileUsed(), err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}
