package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "file_storage", cfg.Storage.BaseDir)
	assert.Equal(t, "md5", cfg.Storage.HashAlgo)
	assert.Equal(t, uint32(0755), cfg.Storage.DirMode)
	assert.Equal(t, uint32(0644), cfg.Storage.FileMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BASE_DIR", "/var/lib/filestore")
	t.Setenv("HASH_ALGO", "sha256")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/filestore", cfg.Storage.BaseDir)
	assert.Equal(t, "sha256", cfg.Storage.HashAlgo)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadOrDefaultNeverNil(t *testing.T) {
	assert.NotNil(t, LoadOrDefault())
}
