//go:build !linux && !darwin

package storage

import (
	"os"
	"time"
)

// createdTime falls back to the modification time on platforms where
// stat does not carry a creation or change time.
func createdTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
