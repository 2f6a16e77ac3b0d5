// Package testutil provides shared test fixtures for the reference store.
package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/skyfly/aircraftdb/db"
)

// NewTestManager opens a migrated temp-file database and returns its
// manager. A file (not :memory:) so WAL journaling behaves as in
// production and concurrent readers see committed rows. Cleanup is
// registered via t.Cleanup().
func NewTestManager(t *testing.T) *db.Manager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aircraftdb_test.db")
	mgr := db.NewManager(path, 0, 0, zaptest.NewLogger(t).Sugar())

	t.Cleanup(func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return mgr
}
