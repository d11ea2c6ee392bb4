package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// timeLayout formats the created/modified timestamps in FileInfo.
const timeLayout = "2006-01-02 15:04:05"

// FileInfo describes a managed file. Attributes are derived from the
// filesystem on demand and never cached.
type FileInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Size      int64   `json:"size"`
	SizeMB    float64 `json:"size_mb"`
	SizeHuman string  `json:"size_human"`
	Created   string  `json:"created"`
	Modified  string  `json:"modified"`
	Extension string  `json:"extension,omitempty"`
	MIMEType  string  `json:"mime_type,omitempty"`
	IsFile    bool    `json:"is_file"`
	Mode      string  `json:"mode"`
}

// StorageStats aggregates everything under the base directory,
// logs and backups included.
type StorageStats struct {
	TotalFiles     int     `json:"total_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	TotalSizeGB    float64 `json:"total_size_gb"`
	BaseDirectory  string  `json:"base_directory"`
}

// Info returns metadata for rel.
func (m *Manager) Info(rel string) (*FileInfo, error) {
	path, err := m.resolve(rel)
	if err != nil {
		return nil, m.failKind("info", rel, KindInvalid, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, m.fail("info", rel, err)
	}

	fi := &FileInfo{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		SizeMB:    round2(float64(info.Size()) / (1 << 20)),
		SizeHuman: formatBytes(info.Size()),
		Created:   createdTime(info).Format(timeLayout),
		Modified:  info.ModTime().Format(timeLayout),
		Extension: filepath.Ext(path),
		IsFile:    info.Mode().IsRegular(),
		Mode:      info.Mode().String(),
	}

	// MIME detection is best-effort; directories and unreadable files
	// simply leave the field empty.
	if mtype, err := mimetype.DetectFile(path); err == nil {
		fi.MIMEType = mtype.String()
	}

	return fi, nil
}

// Stats walks the base directory recursively and returns the file
// count and aggregate size.
func (m *Manager) Stats() (*StorageStats, error) {
	var mu sync.Mutex
	var totalSize int64
	fileCount := 0

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, m.baseDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		totalSize += info.Size()
		fileCount++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, m.fail("stats", m.baseDir, err)
	}

	return &StorageStats{
		TotalFiles:     fileCount,
		TotalSizeBytes: totalSize,
		TotalSizeMB:    round2(float64(totalSize) / (1 << 20)),
		TotalSizeGB:    round2(float64(totalSize) / (1 << 30)),
		BaseDirectory:  m.baseDir,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatBytes formats bytes to human-readable size
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
