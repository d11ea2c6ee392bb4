package storage

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// List returns the sorted names of direct-child files of subdir that
// match pattern (empty pattern matches everything). Subdirectories and
// their contents are excluded. A missing directory yields an empty
// list, not an error.
func (m *Manager) List(subdir, pattern string) ([]string, error) {
	dir, err := m.resolve(subdir)
	if err != nil {
		return nil, m.failKind("list", subdir, KindInvalid, err)
	}
	if pattern == "" {
		pattern = "*"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, m.fail("list", subdir, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, m.failKind("list", subdir, KindInvalid, err)
		}
		if matched {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// Search returns base-relative paths of every file beneath subdir
// whose name contains keyword, case-insensitively. The walk is
// recursive; results are sorted for stable output.
func (m *Manager) Search(keyword, subdir string) ([]string, error) {
	root, err := m.resolve(subdir)
	if err != nil {
		return nil, m.failKind("search", subdir, KindInvalid, err)
	}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, m.fail("search", subdir, err)
	}

	needle := strings.ToLower(keyword)
	var mu sync.Mutex
	matches := []string{}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), needle) {
			rel := m.rel(p)
			mu.Lock()
			matches = append(matches, rel)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, m.fail("search", subdir, err)
	}

	sort.Strings(matches)
	return matches, nil
}
