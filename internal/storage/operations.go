package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Copy duplicates src to dst, creating destination parents. Mode and
// modification time are preserved.
func (m *Manager) Copy(src, dst string) error {
	srcPath, err := m.resolve(src)
	if err != nil {
		return m.failKind("copy", src, KindInvalid, err)
	}
	dstPath, err := m.resolve(dst)
	if err != nil {
		return m.failKind("copy", dst, KindInvalid, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), m.dirMode); err != nil {
		return m.fail("copy", dst, err)
	}
	if err := copyPreserving(srcPath, dstPath); err != nil {
		return m.fail("copy", src, err)
	}

	m.log.Infof("file copied: %s -> %s", srcPath, dstPath)
	return nil
}

// Move relocates src to dst, creating destination parents. A plain
// rename is attempted first; cross-device moves fall back to
// copy-and-delete.
func (m *Manager) Move(src, dst string) error {
	srcPath, err := m.resolve(src)
	if err != nil {
		return m.failKind("move", src, KindInvalid, err)
	}
	dstPath, err := m.resolve(dst)
	if err != nil {
		return m.failKind("move", dst, KindInvalid, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), m.dirMode); err != nil {
		return m.fail("move", dst, err)
	}

	if err := os.Rename(srcPath, dstPath); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return m.fail("move", src, err)
		}
		if err := copyPreserving(srcPath, dstPath); err != nil {
			return m.fail("move", src, err)
		}
		if err := os.Remove(srcPath); err != nil {
			return m.fail("move", src, err)
		}
	}

	m.log.Infof("file moved: %s -> %s", srcPath, dstPath)
	return nil
}

// copyPreserving copies a single file and carries over its mode and
// modification time.
func copyPreserving(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
