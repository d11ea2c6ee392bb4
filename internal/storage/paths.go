package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolve joins a caller-supplied relative path beneath the base
// directory. Absolute paths and parent-directory traversal are
// rejected so no operation can escape the managed root. An empty
// path resolves to the base directory itself.
func (m *Manager) resolve(rel string) (string, error) {
	if rel == "" {
		return m.baseDir, nil
	}

	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %s must be relative to the base directory", rel)
	}

	clean := filepath.Clean(rel)
	for _, seg := range strings.Split(clean, string(filepath.Separator)) {
		if seg == ".." {
			return "", fmt.Errorf("path %s cannot contain .. components", rel)
		}
	}

	return filepath.Join(m.baseDir, clean), nil
}

// rel converts an absolute path under the base directory back to the
// caller-facing relative form. Paths outside the base are returned as-is.
func (m *Manager) rel(abs string) string {
	r, err := filepath.Rel(m.baseDir, abs)
	if err != nil {
		return abs
	}
	return r
}
