package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sheetview.log")

	logger, err := New(path, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("fetch failed", zap.String("kind", "network"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"fetch failed"`)
	assert.Contains(t, out, `"kind":"network"`)
	assert.False(t, strings.Contains(out, "hidden"), "debug entries must be filtered at info level")
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(path, true)
	require.NoError(t, err)

	logger.Debug("decoded payload", zap.Int("rows", 3))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"decoded payload"`)
}
