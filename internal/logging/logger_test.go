package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationLogPath(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)

	path, err := OperationLogPath(base, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "logs", "file_manager_20250309.log"), path)

	info, err := os.Stat(filepath.Join(base, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewWritesSeparatedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("operation completed")
	logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := string(data)
	assert.Contains(t, line, " - INFO - operation completed")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stdout"}})
	assert.Error(t, err)
}

func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	logger, err := New(Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("invisible")
	logger.Warn("visible")
	logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "invisible")
	assert.Contains(t, string(data), "visible")
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Info("dropped")
		logger.Sugar().Errorf("dropped too: %d", 1)
	})
}
