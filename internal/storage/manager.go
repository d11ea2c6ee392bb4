package storage

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"filestore/internal/config"
	"filestore/internal/logging"
)

// Manager exposes file lifecycle operations scoped beneath a
// configurable base directory. It owns the operation logger and the
// base path for its whole lifetime; construct with New and release
// with Close.
type Manager struct {
	baseDir  string
	dirMode  os.FileMode
	fileMode os.FileMode
	hasher   *Hasher
	logger   *logging.Logger
	log      *zap.SugaredLogger
	ownsLog  bool
	now      func() time.Time
}

// Option customizes Manager construction.
type Option func(*Manager)

// WithLogger supplies an external logger instead of the dated
// operation log under <base>/logs. The caller keeps ownership.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.logger = l
		m.ownsLog = false
	}
}

// WithClock overrides the time source used for backup names and the
// dated log file.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New creates a Manager rooted at cfg.Storage.BaseDir, creating the
// base directory if absent. When the Manager owns its log, logs/ is
// created here so the dated sink can open; backups/ is created lazily
// by the first Update.
func New(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		baseDir:  cfg.Storage.BaseDir,
		dirMode:  os.FileMode(cfg.Storage.DirMode),
		fileMode: os.FileMode(cfg.Storage.FileMode),
		hasher:   NewHasher(HashAlgorithm(cfg.Storage.HashAlgo)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := os.MkdirAll(m.baseDir, m.dirMode); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	if m.logger == nil {
		logPath, err := logging.OperationLogPath(m.baseDir, m.now())
		if err != nil {
			return nil, err
		}
		logger, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{logPath},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open operation log: %w", err)
		}
		m.logger = logger
		m.ownsLog = true
	}
	m.log = m.logger.Sugar()

	return m, nil
}

// BaseDir returns the root of all managed storage.
func (m *Manager) BaseDir() string { return m.baseDir }

// Close flushes the operation log if the Manager owns it.
func (m *Manager) Close() error {
	if m.ownsLog {
		return m.logger.Sync()
	}
	return nil
}

// fail logs an error-level record and wraps err in an OpError whose
// kind is classified from the underlying cause.
func (m *Manager) fail(op, path string, err error) *OpError {
	return m.failKind(op, path, classify(err), err)
}

// failKind is fail with an explicit kind for causes the caller already
// understands (corrupt payloads, invalid paths).
func (m *Manager) failKind(op, path string, kind Kind, err error) *OpError {
	m.log.Errorf("%s failed: %s: %v", op, path, err)
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}
