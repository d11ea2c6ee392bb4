//go:build darwin

package storage

import (
	"os"
	"syscall"
	"time"
)

// createdTime returns the file birth time.
func createdTime(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat.Birthtimespec.Sec != 0 {
		return time.Unix(int64(stat.Birthtimespec.Sec), int64(stat.Birthtimespec.Nsec))
	}
	return info.ModTime()
}
