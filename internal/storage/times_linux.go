//go:build linux

package storage

import (
	"os"
	"syscall"
	"time"
)

// createdTime returns the closest thing Linux exposes to a creation
// time: the inode change time.
func createdTime(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	}
	return info.ModTime()
}
