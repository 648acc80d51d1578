package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info("hidden")
	log.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := ToFile(dir, "travelgrid.log", "info")
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(filepath.Join(dir, "travelgrid.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=hello")
}
