// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"task-server/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm/logger"
)

// New returns a migrated database backed by a file in t.TempDir. It is closed
// when the test ends.
func New(t testing.TB) *db.GormDatabase {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.db")
	database, err := db.Open(sqlite.Open(path), logger.Discard)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}
