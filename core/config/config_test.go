package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	// Pin the variables so values leaking in from the host environment
	// cannot change the outcome.
	t.Setenv("DAEMON_INTERVAL_SECONDS", "")
	t.Setenv("DAEMON_CONFIG_PATH", "")
	t.Setenv("DAEMON_INSTANCE", "")
	t.Setenv("DAEMON_DRY_RUN", "")
	t.Setenv("STATUS_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	settings, err := LoadSettings(".")
	require.NoError(t, err)

	assert.Equal(t, 0, settings.Daemon.IntervalSeconds)
	assert.Equal(t, "", settings.Daemon.ConfigPath)
	assert.Equal(t, "", settings.Daemon.Instance)
	assert.False(t, settings.Daemon.DryRun)
	assert.Equal(t, "", settings.Status.Addr)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "console", settings.Log.Format)
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	t.Setenv("DAEMON_INTERVAL_SECONDS", "60")
	t.Setenv("DAEMON_CONFIG_PATH", "/etc/pihole-manager/state.yaml")
	t.Setenv("DAEMON_INSTANCE", "primary")
	t.Setenv("DAEMON_DRY_RUN", "true")
	t.Setenv("STATUS_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	settings, err := LoadSettings(".")
	require.NoError(t, err)

	assert.Equal(t, 60, settings.Daemon.IntervalSeconds)
	assert.Equal(t, "/etc/pihole-manager/state.yaml", settings.Daemon.ConfigPath)
	assert.Equal(t, "primary", settings.Daemon.Instance)
	assert.True(t, settings.Daemon.DryRun)
	assert.Equal(t, ":9090", settings.Status.Addr)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
}
