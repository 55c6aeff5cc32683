package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := &Config{
		URL:         "https://docs.google.com/spreadsheets/d/abc/gviz/tq?tqx=out:json",
		Timeout:     Duration(45 * time.Second),
		JournalPath: "/tmp/journal.db",
		LogFile:     "/tmp/sheetview.log",
	}

	require.NoError(t, want.SaveToPath(path))
	assert.True(t, Exists(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 45s")

	got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFromPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0o600))

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "invalid config file")
}

func TestSetConfigPathFunc(t *testing.T) {
	dir := t.TempDir()
	orig := SetConfigPathFunc(func() (string, error) {
		return filepath.Join(dir, "config.yaml"), nil
	})
	t.Cleanup(func() { SetConfigPathFunc(orig) })

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
}
