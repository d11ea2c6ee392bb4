package storage

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Tar compression modes.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// ArchiveReport summarizes an archive creation, including members that
// were skipped because they did not exist.
type ArchiveReport struct {
	Archive    string
	Added      []string
	Skipped    []string
	TotalBytes int64
}

// CreateZip bundles the named files into a deflate-compressed zip at
// zipName. Entry names equal the relative names passed in. Missing
// members do not fail the archive; they are reported in the returned
// ArchiveReport.
func (m *Manager) CreateZip(zipName string, files []string) (*ArchiveReport, error) {
	zipPath, err := m.resolve(zipName)
	if err != nil {
		return nil, m.failKind("create_zip", zipName, KindInvalid, err)
	}
	if err := os.MkdirAll(filepath.Dir(zipPath), m.dirMode); err != nil {
		return nil, m.fail("create_zip", zipName, err)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return nil, m.fail("create_zip", zipName, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	report := &ArchiveReport{Archive: zipName, Added: []string{}, Skipped: []string{}}

	for _, name := range files {
		path, err := m.resolve(name)
		if err != nil {
			m.log.Warnf("zip member skipped: %s", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		in, err := os.Open(path)
		if err != nil {
			m.log.Warnf("zip member skipped: %s", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		w, err := zw.Create(filepath.ToSlash(name))
		if err != nil {
			in.Close()
			zw.Close()
			return nil, m.fail("create_zip", zipName, err)
		}

		size, err := io.Copy(w, in)
		in.Close()
		if err != nil {
			zw.Close()
			return nil, m.fail("create_zip", zipName, err)
		}

		report.TotalBytes += size
		report.Added = append(report.Added, name)
	}

	if err := zw.Close(); err != nil {
		return nil, m.fail("create_zip", zipName, err)
	}

	m.log.Infof("zip archive created: %s", zipPath)
	return report, nil
}

// ExtractZip expands every entry of zipName into target, creating it
// if absent. Entries that would escape the target are skipped with a
// warning; any other entry failure aborts the extraction. Returns the
// number of files extracted.
func (m *Manager) ExtractZip(zipName, target string) (int, error) {
	zipPath, err := m.resolve(zipName)
	if err != nil {
		return 0, m.failKind("extract_zip", zipName, KindInvalid, err)
	}
	destDir, err := m.resolve(target)
	if err != nil {
		return 0, m.failKind("extract_zip", target, KindInvalid, err)
	}
	if err := os.MkdirAll(destDir, m.dirMode); err != nil {
		return 0, m.fail("extract_zip", target, err)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, m.fail("extract_zip", zipName, err)
	}
	defer reader.Close()

	count := 0
	skipped := 0
	for _, file := range reader.File {
		// Prevent zip-slip attacks
		destPath := filepath.Join(destDir, file.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			m.log.Warnf("zip entry skipped, escapes target: %s", file.Name)
			skipped++
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, m.dirMode); err != nil {
				return count, m.fail("extract_zip", zipName, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), m.dirMode); err != nil {
			return count, m.fail("extract_zip", zipName, err)
		}

		srcFile, err := file.Open()
		if err != nil {
			return count, m.failKind("extract_zip", zipName, KindCorrupt, err)
		}

		dstFile, err := os.Create(destPath)
		if err != nil {
			srcFile.Close()
			return count, m.fail("extract_zip", zipName, err)
		}

		_, err = io.Copy(dstFile, srcFile)
		srcFile.Close()
		if closeErr := dstFile.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return count, m.fail("extract_zip", zipName, err)
		}
		count++
	}

	if skipped > 0 {
		m.log.Warnf("zip archive extracted with %d entries skipped: %s -> %s", skipped, zipPath, destDir)
	} else {
		m.log.Infof("zip archive extracted: %s -> %s", zipPath, destDir)
	}
	return count, nil
}

// CreateTar archives every file beneath subdir into tarName with the
// requested compression (none, gzip, or zstd; gzip by default).
func (m *Manager) CreateTar(subdir, tarName, compression string) (*ArchiveReport, error) {
	srcDir, err := m.resolve(subdir)
	if err != nil {
		return nil, m.failKind("create_tar", subdir, KindInvalid, err)
	}
	tarPath, err := m.resolve(tarName)
	if err != nil {
		return nil, m.failKind("create_tar", tarName, KindInvalid, err)
	}
	if err := os.MkdirAll(filepath.Dir(tarPath), m.dirMode); err != nil {
		return nil, m.fail("create_tar", tarName, err)
	}

	out, err := os.Create(tarPath)
	if err != nil {
		return nil, m.fail("create_tar", tarName, err)
	}
	defer out.Close()

	var tw *tar.Writer
	closeCompressor := func() error { return nil }
	switch compression {
	case CompressionNone:
		tw = tar.NewWriter(out)
	case CompressionZstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return nil, m.fail("create_tar", tarName, err)
		}
		closeCompressor = zw.Close
		tw = tar.NewWriter(zw)
	default:
		gw := gzip.NewWriter(out)
		closeCompressor = gw.Close
		tw = tar.NewWriter(gw)
	}

	report := &ArchiveReport{Archive: tarName, Added: []string{}, Skipped: []string{}}

	// fastwalk runs its callback from multiple goroutines; the tar
	// stream accepts one entry at a time.
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, srcDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == srcDir || p == tarPath {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(srcDir, p)
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return nil
		}
		header.Name = filepath.ToSlash(relPath)

		mu.Lock()
		defer mu.Unlock()

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		file, err := os.Open(p)
		if err != nil {
			report.Skipped = append(report.Skipped, relPath)
			return nil
		}
		defer file.Close()

		size, err := io.Copy(tw, file)
		if err != nil {
			return err
		}
		report.TotalBytes += size
		report.Added = append(report.Added, relPath)
		return nil
	})
	if err != nil {
		tw.Close()
		closeCompressor()
		return nil, m.fail("create_tar", tarName, err)
	}

	// Close order matters: the tar footer must flush through the
	// compressor before its own trailer is written.
	if err := tw.Close(); err != nil {
		closeCompressor()
		return nil, m.fail("create_tar", tarName, err)
	}
	if err := closeCompressor(); err != nil {
		return nil, m.fail("create_tar", tarName, err)
	}

	m.log.Infof("tar archive created: %s", tarPath)
	return report, nil
}

// ExtractTar expands tarName into target, auto-detecting gzip and
// zstd compression from the file suffix. Entries that would escape the
// target are skipped with a warning; any other entry failure aborts
// the extraction. Returns the number of files extracted.
func (m *Manager) ExtractTar(tarName, target string) (int, error) {
	tarPath, err := m.resolve(tarName)
	if err != nil {
		return 0, m.failKind("extract_tar", tarName, KindInvalid, err)
	}
	destDir, err := m.resolve(target)
	if err != nil {
		return 0, m.failKind("extract_tar", target, KindInvalid, err)
	}
	if err := os.MkdirAll(destDir, m.dirMode); err != nil {
		return 0, m.fail("extract_tar", target, err)
	}

	file, err := os.Open(tarPath)
	if err != nil {
		return 0, m.fail("extract_tar", tarName, err)
	}
	defer file.Close()

	var tr *tar.Reader
	switch {
	case strings.HasSuffix(tarName, ".gz") || strings.HasSuffix(tarName, ".tgz"):
		gr, err := gzip.NewReader(file)
		if err != nil {
			return 0, m.failKind("extract_tar", tarName, KindCorrupt, err)
		}
		defer gr.Close()
		tr = tar.NewReader(gr)
	case strings.HasSuffix(tarName, ".zst"):
		zr, err := zstd.NewReader(file)
		if err != nil {
			return 0, m.failKind("extract_tar", tarName, KindCorrupt, err)
		}
		defer zr.Close()
		tr = tar.NewReader(zr)
	default:
		tr = tar.NewReader(file)
	}

	count := 0
	skipped := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, m.failKind("extract_tar", tarName, KindCorrupt, err)
		}

		destPath := filepath.Join(destDir, header.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			m.log.Warnf("tar entry skipped, escapes target: %s", header.Name)
			skipped++
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, m.dirMode); err != nil {
				return count, m.fail("extract_tar", tarName, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), m.dirMode); err != nil {
				return count, m.fail("extract_tar", tarName, err)
			}

			outFile, err := os.Create(destPath)
			if err != nil {
				return count, m.fail("extract_tar", tarName, err)
			}

			_, err = io.Copy(outFile, tr)
			if closeErr := outFile.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return count, m.fail("extract_tar", tarName, err)
			}
			count++
		}
	}

	if skipped > 0 {
		m.log.Warnf("tar archive extracted with %d entries skipped: %s -> %s", skipped, tarPath, destDir)
	} else {
		m.log.Infof("tar archive extracted: %s -> %s", tarPath, destDir)
	}
	return count, nil
}

// ExtractAuto detects the archive format from the suffix and extracts
// into target.
func (m *Manager) ExtractAuto(name, target string) (int, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".zip":
		return m.ExtractZip(name, target)
	case ".tar", ".tgz", ".gz", ".zst":
		return m.ExtractTar(name, target)
	default:
		return 0, m.failKind("extract", name, KindInvalid, fmt.Errorf("unsupported archive format: %s", ext))
	}
}
