package db

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/skyfly/aircraftdb/errors"
)

// DefaultWriteLockTimeout bounds how long a writer waits for the write gate
// before giving up with a concurrency error.
const DefaultWriteLockTimeout = 30 * time.Second

// Manager owns the process-wide database handle. The handle is opened and
// migrated lazily on first use, exactly once; all components share it.
//
// SQLite under WAL allows one writer alongside concurrent readers. Reads go
// straight through Handle; writes go through WithWrite, which serializes
// them behind a single-permit gate so two ingestion runs never interleave
// transactions.
type Manager struct {
	path             string
	busyTimeoutMS    int
	writeLockTimeout time.Duration
	log              *zap.SugaredLogger

	once    sync.Once
	handle  *sql.DB
	openErr error

	writeGate *semaphore.Weighted
}

// NewManager prepares a manager for the database at path. Nothing is opened
// until the first Handle or WithWrite call.
// writeLockTimeout <= 0 selects DefaultWriteLockTimeout.
func NewManager(path string, busyTimeoutMS int, writeLockTimeout time.Duration, logger *zap.SugaredLogger) *Manager {
	if writeLockTimeout <= 0 {
		writeLockTimeout = DefaultWriteLockTimeout
	}
	return &Manager{
		path:             path,
		busyTimeoutMS:    busyTimeoutMS,
		writeLockTimeout: writeLockTimeout,
		log:              logger,
		writeGate:        semaphore.NewWeighted(1),
	}
}

// NewManagerWithDB wraps an already-open handle, bypassing the lazy open.
// The caller is responsible for the handle's schema. Close still closes it.
func NewManagerWithDB(handle *sql.DB, logger *zap.SugaredLogger) *Manager {
	m := &Manager{
		handle:           handle,
		writeLockTimeout: DefaultWriteLockTimeout,
		log:              logger,
		writeGate:        semaphore.NewWeighted(1),
	}
	// Latch the once so Handle never tries to reopen.
	m.once.Do(func() {})
	return m
}

// Path returns the database file path ("" for injected handles).
func (m *Manager) Path() string { return m.path }

// Handle returns the shared database handle, opening and migrating the
// database on first use. The first open error latches: every later caller
// sees the same error rather than retrying a broken configuration.
func (m *Manager) Handle(ctx context.Context) (*sql.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.once.Do(func() {
		m.handle, m.openErr = OpenWithMigrations(m.path, m.busyTimeoutMS, m.log)
	})
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.handle, nil
}

// WithWrite runs fn inside a write transaction and commits it if fn returns
// nil. Any error from fn rolls the transaction back and is returned as-is.
//
// Writers queue on the gate; a writer that cannot acquire it within the
// write lock timeout fails with a concurrency error instead of waiting
// forever behind a stuck ingestion run.
func (m *Manager) WithWrite(ctx context.Context, fn func(tx *sql.Tx) error) error {
	handle, err := m.Handle(ctx)
	if err != nil {
		return err
	}

	acquireCtx := ctx
	if m.writeLockTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, m.writeLockTimeout)
		defer cancel()
	}
	if err := m.writeGate.Acquire(acquireCtx, 1); err != nil {
		// Distinguish caller cancellation from gate contention.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Concurrencyf("write lock not acquired within %s", m.writeLockTimeout)
	}
	defer m.writeGate.Release(1)

	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin write transaction")
	}

	committed := false
	defer func() {
		// Covers both the error return and a panic inside fn.
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone && !IsDatabaseClosed(rbErr) {
			if m.log != nil {
				m.log.Warnw("Transaction rollback failed", "error", rbErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit write transaction")
	}
	committed = true
	return nil
}

// Close closes the handle if it was ever opened. Safe to call before first
// use: it latches the once so a later Handle cannot reopen the database.
func (m *Manager) Close() error {
	m.once.Do(func() { m.openErr = ErrDatabaseClosed })
	if m.handle == nil {
		return nil
	}
	if err := m.handle.Close(); err != nil {
		return errors.Wrap(err, "close database")
	}
	if m.log != nil {
		m.log.Debugw("Database closed", "path", m.path)
	}
	return nil
}
