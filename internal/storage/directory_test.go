package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortedDirectChildFilesOnly(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("data/b.txt", "x"))
	require.NoError(t, m.Create("data/a.txt", "x"))
	require.NoError(t, m.Create("data/sub/hidden.txt", "x"))

	files, err := m.List("data", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, files)
}

func TestListPattern(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("data/report.txt", "x"))
	require.NoError(t, m.Create("data/report.csv", "x"))

	files, err := m.List("data", "*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"report.csv"}, files)
}

func TestListMissingDirectory(t *testing.T) {
	m := newTestManager(t)

	files, err := m.List("nowhere", "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSearchCaseInsensitiveRecursive(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Create("docs/Report.TXT", "x"))
	require.NoError(t, m.Create("docs/deep/annual_report.csv", "x"))
	require.NoError(t, m.Create("docs/notes.md", "x"))

	matches, err := m.Search("report", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/Report.TXT", "docs/deep/annual_report.csv"}, matches)
}

func TestSearchMissingDirectory(t *testing.T) {
	m := newTestManager(t)

	matches, err := m.Search("anything", "nowhere")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
