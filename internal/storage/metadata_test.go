package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoKnownFile(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("documents/test.txt", "hello"))

	info, err := m.Info("documents/test.txt")
	require.NoError(t, err)

	assert.Equal(t, "test.txt", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, ".txt", info.Extension)
	assert.True(t, info.IsFile)
	assert.Equal(t, 0.0, info.SizeMB)
	assert.NotEmpty(t, info.Created)
	assert.NotEmpty(t, info.Modified)
}

func TestInfoMissing(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Info("absent.txt")
	require.Error(t, err)
	assert.Equal(t, KindMissing, KindOf(err))
}

func TestStatsCountsKnownFiles(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("a.txt", "12345"))
	require.NoError(t, m.Create("sub/b.txt", "1234567"))
	require.NoError(t, m.Create("sub/deep/c.txt", ""))

	stats, err := m.Stats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, int64(12), stats.TotalSizeBytes)
	assert.Equal(t, m.BaseDir(), stats.BaseDirectory)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.00 KB", formatBytes(1024))
	assert.Equal(t, "1.50 MB", formatBytes(3<<20/2))
}
