package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthurlockman/FixMediaBot/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[debug]
log_level = "debug"

[discord]
token = "test-token"

[postgresql]
host = "db.internal"
port = 5433

[settings_panel]
cleanup_delay_secs = 30
session_ttl_mins = 5
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, "test-token", cfg.Discord.Token)
	assert.Equal(t, "db.internal", cfg.PostgreSQL.Host)
	assert.Equal(t, 5433, cfg.PostgreSQL.Port)
	assert.Equal(t, 30*time.Second, cfg.Panel.CleanupDelay())
	assert.Equal(t, 5*time.Minute, cfg.Panel.SessionTTL())
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[discord]
token = "test-token"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Debug.LogLevel)
	assert.Equal(t, 10, cfg.Debug.MaxLogsToKeep)
	assert.Equal(t, "localhost", cfg.PostgreSQL.Host)
	assert.Equal(t, 5432, cfg.PostgreSQL.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 180*time.Second, cfg.Panel.CleanupDelay())
	assert.Equal(t, 10*time.Minute, cfg.Panel.SessionTTL())
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `[discord`)

	_, err := config.LoadConfig(path)
	require.Error(t, err)
}
