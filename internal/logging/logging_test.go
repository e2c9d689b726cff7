package logging

import (
	"bytes"
	log "log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetupWritesRotatingFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	dir := t.TempDir()
	var out bytes.Buffer

	closer, err := Setup(Config{Level: "info", Dir: dir}, &out)
	require.NoError(t, err)

	log.Info("Booting up", "intent", "exit")
	log.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "jarvis.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Booting up")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, out.String(), string(data))
}
