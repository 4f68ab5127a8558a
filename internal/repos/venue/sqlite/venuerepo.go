// Package sqlite provides a venue repository that stores its data inside a SQLite database
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	venueFields = `name, city, state, address, phone, website, facebookLink, imageLink, genres, seekingTalent,
                    seekingDescription, createdAt, updatedAt`
	summarySelect = `SELECT
						v.id AS id,
						v.name AS name,
						v.city AS city,
						v.state AS state,
						(SELECT COUNT(*) FROM Shows s WHERE s.venueId = v.id AND s.startTime > $1) AS numUpcomingShows
					FROM
						Venues v`
)

// VenueRepo is a venue repository that stores its data inside a SQLite database
type VenueRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new VenueRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) repos.VenueRepo {
	return &VenueRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new venue and assigns its ID
func (r *VenueRepo) Create(ctx context.Context, v *models.Venue) error {
	r.logger.WithField("name", v.Name).Debug("Adding new venue")
	query := fmt.Sprintf(`INSERT INTO Venues(%s) VALUES(
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'), datetime('now')
	)`, venueFields)
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			v.Name, v.City, v.State, v.Address, v.Phone, v.Website, v.FacebookLink, v.ImageLink, v.Genres,
			v.SeekingTalent, v.SeekingDescription,
		)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert venue")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "Create: Failed to get ID of new venue")
		}
		v.ID = uint(id)
		v.CreatedAt = time.Now()
		v.UpdatedAt = v.CreatedAt
		return nil
	})
}

// Update overwrites all editable fields of an existing venue
func (r *VenueRepo) Update(ctx context.Context, v *models.Venue) error {
	r.logger.WithField(log.FldID, v.ID).Debug("Updating venue")
	query := `UPDATE Venues SET
        name = ?, city = ?, state = ?, address = ?, phone = ?, website = ?, facebookLink = ?, imageLink = ?,
        genres = ?, seekingTalent = ?, seekingDescription = ?, updatedAt = datetime('now')
    WHERE id = ?`
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			v.Name, v.City, v.State, v.Address, v.Phone, v.Website, v.FacebookLink, v.ImageLink, v.Genres,
			v.SeekingTalent, v.SeekingDescription, v.ID,
		)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update venue")
		}
		if num, err := res.RowsAffected(); err != nil || num == 0 {
			if err != nil {
				return errors.Wrap(err, "Update: Failed to get number of updated rows")
			}
			return repos.ErrEntityNotExisting
		}
		v.UpdatedAt = time.Now()
		return nil
	})
}

// Delete removes a venue together with all of its shows
func (r *VenueRepo) Delete(ctx context.Context, id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting venue")
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM Shows WHERE venueId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to remove shows of venue")
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM Venues WHERE id = ?", id)
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to remove venue")
		}
		if num, err := res.RowsAffected(); err != nil || num == 0 {
			if err != nil {
				return errors.Wrap(err, "Delete: Failed to get number of deleted rows")
			}
			return repos.ErrEntityNotExisting
		}
		return nil
	})
}

// GetByID returns the venue having the given ID
func (r *VenueRepo) GetByID(ctx context.Context, id uint) (*models.Venue, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading venue")
	query := fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields)
	var v models.Venue
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrap(err, "GetByID: Failed to query database")
	}
	return &v, nil
}

// List returns all venues ordered by city, state and name with their number of shows starting after now
func (r *VenueRepo) List(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	query := summarySelect + ` ORDER BY v.city, v.state, v.name, v.id`
	ret := []models.VenueSummary{}
	if err := r.db.SelectContext(ctx, &ret, query, repos.DBTime(now)); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query database")
	}
	return ret, nil
}

// Find returns the venues whose name contains the search string regardless of case
func (r *VenueRepo) Find(ctx context.Context, search string, now time.Time) ([]models.VenueSummary, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for venues")
	ret := []models.VenueSummary{}
	var err error
	if search == "" {
		err = r.db.SelectContext(ctx, &ret, summarySelect+` ORDER BY v.name, v.id`, repos.DBTime(now))
	} else {
		query := summarySelect + ` WHERE instr(casefold(v.name), casefold($2)) > 0 ORDER BY v.name, v.id`
		err = r.db.SelectContext(ctx, &ret, query, repos.DBTime(now), search)
	}
	if err != nil {
		return nil, errors.Wrap(err, "Find: Failed to query database")
	}
	return ret, nil
}
