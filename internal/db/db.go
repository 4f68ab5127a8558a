// Package db opens the SQLite database used by Fyyur.
// It registers its own flavour of the sqlite3 driver that enforces foreign keys and provides a casefold() SQL
// function for case-insensitive searching beyond ASCII.
package db

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// DriverName is the name under which the customized sqlite3 driver is registered
const DriverName = "sqlite3_fyyur"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("casefold", Fold, true); err != nil {
				return err
			}
			_, err := conn.Exec("PRAGMA foreign_keys = ON", nil)
			return err
		},
	})
}

// Fold returns the Unicode case folded form of the given string. It is exposed to SQL as casefold()
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Open opens the database file with the given name and bounds the connection pool.
// Transactions take the write lock when they begin, so concurrent writers queue on the busy timeout.
func Open(fileName string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, fileName+"?_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, errors.Wrap(err, "Open: Failed to open database")
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Open: Database not reachable")
	}
	return db, nil
}
