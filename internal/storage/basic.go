package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Create writes content to rel, creating parent directories as needed.
// An existing file is overwritten silently.
func (m *Manager) Create(rel, content string) error {
	path, err := m.resolve(rel)
	if err != nil {
		return m.failKind("create", rel, KindInvalid, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), m.dirMode); err != nil {
		return m.fail("create", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), m.fileMode); err != nil {
		return m.fail("create", rel, err)
	}

	m.log.Infof("file created: %s", path)
	return nil
}

// Read returns the full text content of rel.
func (m *Manager) Read(rel string) (string, error) {
	path, err := m.resolve(rel)
	if err != nil {
		return "", m.failKind("read", rel, KindInvalid, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", m.fail("read", rel, err)
	}

	m.log.Infof("file read: %s", path)
	return string(data), nil
}

// Update backs up the existing file, then overwrites it with content.
// A file that does not yet exist is not created; the miss is logged as
// a warning and reported with KindMissing, and no backup is produced.
func (m *Manager) Update(rel, content string) error {
	path, err := m.resolve(rel)
	if err != nil {
		return m.failKind("update", rel, KindInvalid, err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			m.log.Warnf("file not found: %s", path)
			return &OpError{Op: "update", Path: rel, Kind: KindMissing, Err: fs.ErrNotExist}
		}
		return m.fail("update", rel, err)
	}

	if err := m.createBackup(path); err != nil {
		return m.fail("update", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), m.fileMode); err != nil {
		return m.fail("update", rel, err)
	}

	m.log.Infof("file updated: %s", path)
	return nil
}

// Delete removes rel if present.
func (m *Manager) Delete(rel string) error {
	path, err := m.resolve(rel)
	if err != nil {
		return m.failKind("delete", rel, KindInvalid, err)
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			m.log.Warnf("file not found: %s", path)
			return &OpError{Op: "delete", Path: rel, Kind: KindMissing, Err: fs.ErrNotExist}
		}
		return m.fail("delete", rel, err)
	}

	m.log.Infof("file deleted: %s", path)
	return nil
}

// createBackup copies path into <base>/backups as
// <stem>_<YYYYMMDD_HHMMSS><ext>, preserving mode and timestamps.
// Backups are never pruned.
func (m *Manager) createBackup(path string) error {
	backupDir := filepath.Join(m.baseDir, "backups")
	if err := os.MkdirAll(backupDir, m.dirMode); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	ext := filepath.Ext(path)
	stem := filepath.Base(path)
	stem = stem[:len(stem)-len(ext)]
	name := fmt.Sprintf("%s_%s%s", stem, m.now().Format("20060102_150405"), ext)
	backupPath := filepath.Join(backupDir, name)

	if err := copyPreserving(path, backupPath); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	m.log.Infof("backup created: %s", backupPath)
	return nil
}
