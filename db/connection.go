package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/skyfly/aircraftdb/errors"
)

// SQLiteBusyTimeoutMS is the default wait before a locked database read or
// write gives up. Callers can override it per database via Open.
const SQLiteBusyTimeoutMS = 5000

// Open opens a SQLite database at the specified path with WAL journaling,
// foreign keys, and a busy timeout.
//
// Foreign keys and the busy timeout are per-connection session settings, so
// they ride on the DSN and apply to every pooled connection. The journal
// mode is a property of the database file: it is switched to WAL exactly
// once here and never reconfigured per connection.
// busyTimeoutMS <= 0 selects SQLiteBusyTimeoutMS.
// If logger is provided, logs database operations; otherwise operates silently.
func Open(path string, busyTimeoutMS int, logger *zap.SugaredLogger) (*sql.DB, error) {
	if busyTimeoutMS <= 0 {
		busyTimeoutMS = SQLiteBusyTimeoutMS
	}

	if logger != nil {
		logger.Debugw("Opening database", "path", path)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d", path, busyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// Enable WAL mode for concurrent reads during writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to enable WAL mode at %s", path)
	}

	if logger != nil {
		logger.Infow("Database opened",
			"path", path,
			"wal_mode", true,
			"foreign_keys", true,
			"busy_timeout_ms", busyTimeoutMS,
		)
	}

	return db, nil
}

// OpenWithMigrations opens the database and brings its schema up to date.
func OpenWithMigrations(path string, busyTimeoutMS int, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := Open(path, busyTimeoutMS, logger)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to migrate database at %s", path)
	}

	return db, nil
}
