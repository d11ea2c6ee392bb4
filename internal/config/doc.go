// Package config provides 12-factor configuration for the filestore utility.
//
// Configuration is loaded from environment variables with sensible defaults,
// so the library works out of the box against the ./file_storage directory.
//
// Environment Variables:
//   - BASE_DIR: root of all managed storage (default "file_storage")
//   - LOG_LEVEL, LOG_DEV: operation log verbosity and encoding
//   - HASH_ALGO: file digest algorithm ("md5" or "sha256")
package config
