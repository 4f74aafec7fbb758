package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// isolateXDG points all XDG directories at a temp dir so tests never touch
// the real user configuration.
func isolateXDG(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return base
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, validateConfig(withDatabasePath(DefaultConfig())))
}

func withDatabasePath(c *Config) *Config {
	c.Database.Path = "/tmp/test.db"
	return c
}

func TestLoadCreatesDefaultConfigAndSchema(t *testing.T) {
	isolateXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(filepath.Dir(configFile), "config.schema.json"))

	cfg := m.Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Len(t, cfg.Services, 4)
	assert.NotEmpty(t, cfg.Database.Path, "database path is resolved when unset")
}

func TestLoadReadsExistingConfig(t *testing.T) {
	isolateXDG(t)
	require.NoError(t, EnsureDirectories())

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	custom := `
[logging]
level = "debug"
format = "json"

[timing]
scheduler_step_ms = 50

[[services]]
id = "claude"
name = "Claude"
mode = "injection"
base_url = "https://claude.ai"
enabled = true
order = 0
`
	require.NoError(t, os.WriteFile(configFile, []byte(custom), 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 50, cfg.Timing.SchedulerStepMs)
	// Unset timing fields fall back to defaults.
	assert.Equal(t, defaultInjectionDelayMs, cfg.Timing.InjectionDelayMs)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "claude", cfg.Services[0].ID)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	isolateXDG(t)
	require.NoError(t, EnsureDirectories())

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	bad := `
[logging]
level = "loud"
`
	require.NoError(t, os.WriteFile(configFile, []byte(bad), 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "negative timing",
			mutate:  func(c *Config) { c.Timing.CrashRecoveryMs = -1 },
			wantErr: "crash_recovery_ms",
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.Window.Width = 0 },
			wantErr: "window",
		},
		{
			name:    "no services",
			mutate:  func(c *Config) { c.Services = nil },
			wantErr: "at least one service",
		},
		{
			name: "duplicate service id",
			mutate: func(c *Config) {
				c.Services = append(c.Services, c.Services[0])
			},
			wantErr: "duplicate id",
		},
		{
			name: "bad service mode",
			mutate: func(c *Config) {
				c.Services[0].Mode = "osmosis"
			},
			wantErr: "mode",
		},
		{
			name: "bad base url",
			mutate: func(c *Config) {
				c.Services[0].BaseURL = "not a url"
			},
			wantErr: "base_url",
		},
		{
			name: "all services disabled",
			mutate: func(c *Config) {
				for i := range c.Services {
					c.Services[i].Enabled = false
				}
			},
			wantErr: "at least one service must be enabled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withDatabasePath(DefaultConfig())
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDescriptors(t *testing.T) {
	cfg := DefaultConfig()
	descriptors := cfg.Descriptors()

	require.Len(t, descriptors, 4)
	assert.Equal(t, entity.ServiceID("chatgpt"), descriptors[0].ID)
	assert.Equal(t, entity.DeliveryNavigationParameter, descriptors[0].Mode)
	assert.Equal(t, entity.DeliveryDOMInjection, descriptors[1].Mode)

	enabled := entity.EnabledSorted(descriptors)
	assert.Len(t, enabled, 4)
	assert.Equal(t, entity.ServiceID("chatgpt"), enabled[0].ID)
	assert.Equal(t, entity.ServiceID("perplexity"), enabled[3].ID)
}

func TestTimingDurations(t *testing.T) {
	timing := TimingConfig{SchedulerStepMs: 250, InjectionDelayMs: 1000, RefocusDelayMs: 100, CrashRecoveryMs: 3000}

	assert.Equal(t, "250ms", timing.SchedulerStep().String())
	assert.Equal(t, "1s", timing.InjectionDelay().String())
	assert.Equal(t, "100ms", timing.RefocusDelay().String())
	assert.Equal(t, "3s", timing.CrashRecovery().String())
}
