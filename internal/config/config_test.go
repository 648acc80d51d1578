package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("TG_TEST_HOST", "db.example")

	assert.Equal(t, "https://db.example/x", expandEnvWithDefaults("https://${TG_TEST_HOST}/x"))
	assert.Equal(t, "fallback", expandEnvWithDefaults("${TG_TEST_UNSET:-fallback}"))
	assert.Equal(t, "", expandEnvWithDefaults("${TG_TEST_UNSET}"))
	assert.Equal(t, "plain", expandEnvWithDefaults("plain"))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.UsesRemote())
	assert.Equal(t, "file", cfg.Local.Driver)
	assert.Equal(t, "tg_items", cfg.Local.Namespace)
	assert.Equal(t, 10, cfg.Remote.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FileAndEnvExpansion(t *testing.T) {
	t.Setenv("TG_TEST_DB", "https://demo.firebaseio.com")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
remote:
  url: ${TG_TEST_DB}
  timeout_seconds: ${TG_TEST_TIMEOUT:-3}
local:
  driver: badger
ui:
  no_color: ${TG_TEST_NOCOLOR:-true}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.UsesRemote())
	assert.Equal(t, "https://demo.firebaseio.com", cfg.Remote.URL)
	assert.Equal(t, 3, cfg.Remote.TimeoutSeconds)
	assert.Equal(t, "badger", cfg.Local.Driver)
	assert.True(t, cfg.UI.NoColor)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRAVELGRID_REMOTE_URL", "  https://env.firebaseio.com  ")
	t.Setenv("TRAVELGRID_LOCAL_NAMESPACE", "other")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.firebaseio.com", cfg.Remote.URL)
	assert.Equal(t, "other", cfg.Local.Namespace)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TRAVELGRID_LOCAL_DRIVER", "sqlite")

	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
