// Package migrate handles SQL database migration for the internal Fyyur database
package migrate

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// applied checks the bookkeeping table for a successful run of this migration
func (mig *dbMigration) applied(db *sqlx.DB) (bool, error) {
	var success bool
	err := db.Get(&success, `SELECT success FROM Migrations WHERE version = $1`, mig.Version)
	if err != nil && err != sql.ErrNoRows {
		return false, errors.Wrapf(err, "applied: Failed to fetch state of migration #%d", mig.Version)
	}
	return success, nil
}

// Execute runs the current DB migration on the given database.
// All queries of one migration share a transaction, so a failing migration leaves no half-built schema behind.
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	done, err := mig.applied(db)
	if err != nil || done {
		return err
	}
	logger = logger.WithField("migration", mig.Version)
	logger.Info("Executing DB migration")
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Execute: Failed to start transaction")
	}
	for i, query := range mig.Queries {
		logger.Debugf("Query %d of %d...", i+1, len(mig.Queries))
		if _, err := tx.Exec(query); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "Execute: Query #%d of migration #%d failed", i+1, mig.Version)
		}
	}
	if _, err := tx.Exec(`REPLACE INTO Migrations(version, success) VALUES($1, 1)`, mig.Version); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "Execute: Failed to record migration")
	}
	return errors.Wrap(tx.Commit(), "Execute: Failed to commit migration")
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return err
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "Venues" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(120) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(120) NOT NULL,
                    address VARCHAR(120) NOT NULL DEFAULT '',
                    phone VARCHAR(120) NOT NULL DEFAULT '',
                    website VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(500) NOT NULL DEFAULT '',
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    seekingTalent INTEGER NOT NULL DEFAULT 0,
                    seekingDescription TEXT NOT NULL DEFAULT '',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Artists" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(120) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(120) NOT NULL,
                    phone VARCHAR(120) NOT NULL DEFAULT '',
                    website VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(500) NOT NULL DEFAULT '',
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    seekingVenue INTEGER NOT NULL DEFAULT 0,
                    seekingDescription TEXT NOT NULL DEFAULT '',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Shows" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    venueId INTEGER NOT NULL REFERENCES Venues(id) ON DELETE CASCADE,
                    artistId INTEGER NOT NULL REFERENCES Artists(id) ON DELETE CASCADE,
                    startTime DATETIME NOT NULL,
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE INDEX idx_venue_area ON Venues (city ASC, state ASC);`,
				`CREATE INDEX idx_artist_name ON Artists (name ASC);`,
				`CREATE INDEX idx_show_venue ON Shows (venueId ASC, startTime ASC);`,
				`CREATE INDEX idx_show_artist ON Shows (artistId ASC, startTime ASC);`,
			},
		},
		{
			Version: 2,
			Queries: []string{
				`CREATE INDEX idx_artist_area ON Artists (city ASC, state ASC);`,
				`CREATE INDEX idx_show_start ON Shows (startTime ASC);`,
			},
		},
	}
}
