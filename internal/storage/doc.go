// Package storage implements the managed-directory file manager.
//
// All operations are scoped beneath a configurable base directory and
// organized into specialized modules:
//   - basic: file lifecycle (create, read, update with backup, delete)
//   - operations: file manipulation (copy, move)
//   - directory: listing and recursive filename search
//   - metadata: file info and storage statistics
//   - hash: streaming content digests
//   - archives: zip and tar (gzip/zstd) bundles
//   - formats: structured formats (JSON, CSV, YAML, TOML)
//
// Every operation:
//   - Resolves its path relative to the base directory and rejects
//     absolute paths and parent-directory traversal
//   - Logs its outcome to the dated operation log
//   - Returns a typed *OpError whose Kind distinguishes missing,
//     permission, corrupt, invalid, and plain I/O failures
//
// Example Usage:
//
//	mgr, err := storage.New(config.LoadOrDefault())
//	defer mgr.Close()
//	err = mgr.Create("documents/test.txt", "hello")
package storage
