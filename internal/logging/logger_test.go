package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stickyjar.log")

	logger, cleanup, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug("task created")
	logger.Info("streak expired")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_LevelFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stickyjar.log")

	logger, cleanup, err := New(Config{Level: "loud", Encoding: "console", File: path})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
