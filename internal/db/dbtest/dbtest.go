// Package dbtest provides a migrated, throw-away database for tests
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/derWhity/fyyur/internal/db"
	"github.com/derWhity/fyyur/internal/migrate"
)

// Logger returns a logger that discards everything
func Logger() *logrus.Entry {
	l, _ := test.NewNullLogger()
	return logrus.NewEntry(l)
}

// New opens a fresh database inside the test's temp dir and runs all migrations on it.
// The database is closed when the test ends.
func New(t *testing.T) *sqlx.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"), 1)
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := migrate.ExecuteMigrationsOnDb(d, Logger()); err != nil {
		t.Fatalf("cannot migrate test database: %v", err)
	}
	return d
}
