package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDatabase(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "new file", input: filepath.Join(dir, "new.db")},
		{name: "file in missing directory", input: filepath.Join(dir, "data", "new.db")},
		{name: "memory", input: ":memory:"},
		{name: "empty", input: "", expectError: true},
		{name: "directory", input: dir, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDatabase(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSchema(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "schema.yml")
	require.NoError(t, os.WriteFile(file, []byte("tables: []\n"), 0o644))

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "not set", input: ""},
		{name: "existing file", input: file},
		{name: "missing file", input: filepath.Join(dir, "missing.yml"), expectError: true},
		{name: "directory", input: dir, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchema(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Setenv("SWSQLITE_DEBUG", "true")
	t.Setenv("SWSQLITE_HISTORY_FILE", "")

	path := filepath.Join(t.TempDir(), "app.db")
	cfg := MustParse([]string{"swsqlite", "--disable-optimizations", "-e", "SELECT 1", path})

	assert.Equal(t, path, cfg.Database)
	assert.Equal(t, "SELECT 1", cfg.Execute)
	assert.True(t, cfg.DisableOptimizations)
	assert.True(t, cfg.Debug)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, filepath.Join(os.TempDir(), ".swsqlite_history"), cfg.HistoryFile)
}
