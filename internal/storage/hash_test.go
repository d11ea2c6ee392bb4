package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filestore/internal/config"
	"filestore/internal/logging"
)

func TestHashDeterministicAcrossPaths(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("a/one.txt", "identical content"))
	require.NoError(t, m.Create("b/two.txt", "identical content"))

	h1, err := m.Hash("a/one.txt")
	require.NoError(t, err)
	h2, err := m.Hash("b/two.txt")
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 32)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", m.hasher.Sum([]byte("hello")))
}

func TestHashChangesWithContent(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("f.txt", "content A"))
	h1, err := m.Hash("f.txt")
	require.NoError(t, err)

	require.NoError(t, m.Create("f.txt", "content B"))
	h2, err := m.Hash("f.txt")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashMissing(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Hash("absent.bin")
	require.Error(t, err)
	assert.Equal(t, KindMissing, KindOf(err))
}

func TestHashSHA256Configurable(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.BaseDir = filepath.Join(t.TempDir(), "file_storage")
	cfg.Storage.HashAlgo = "sha256"

	m, err := New(cfg, WithLogger(logging.NewNop()))
	require.NoError(t, err)

	require.NoError(t, m.Create("f.txt", "hello"))
	sum, err := m.Hash("f.txt")
	require.NoError(t, err)
	assert.Len(t, sum, 64)
}

func TestNewHasherFallsBackToMD5(t *testing.T) {
	h := NewHasher("whirlpool")
	assert.Len(t, h.Sum([]byte("x")), 32)
}
