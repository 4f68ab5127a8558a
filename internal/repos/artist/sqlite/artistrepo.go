// Package sqlite provides an artist repository that stores its data inside a SQLite database
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
	artistFields = `name, city, state, phone, website, facebookLink, imageLink, genres, seekingVenue,
                    seekingDescription, createdAt, updatedAt`
	summarySelect = `SELECT
						a.id AS id,
						a.name AS name,
						(SELECT COUNT(*) FROM Shows s WHERE s.artistId = a.id AND s.startTime > $1) AS numUpcomingShows
					FROM
						Artists a`
)

// ArtistRepo is an artist repository that stores its data inside a SQLite database
type ArtistRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ArtistRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) repos.ArtistRepo {
	return &ArtistRepo{db, logger}
}

// Create creates a new artist and assigns its ID
func (r *ArtistRepo) Create(ctx context.Context, a *models.Artist) error {
	r.logger.WithField("name", a.Name).Debug("Adding new artist")
	query := fmt.Sprintf(`INSERT INTO Artists(%s) VALUES(
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'), datetime('now')
	)`, artistFields)
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.ImageLink, a.Genres, a.SeekingVenue,
			a.SeekingDescription,
		)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert artist")
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "Create: Failed to get ID of new artist")
		}
		a.ID = uint(id)
		a.CreatedAt = time.Now()
		a.UpdatedAt = a.CreatedAt
		return nil
	})
}

// Update overwrites all editable fields of an existing artist
func (r *ArtistRepo) Update(ctx context.Context, a *models.Artist) error {
	r.logger.WithField(log.FldID, a.ID).Debug("Updating artist")
	query := `UPDATE Artists SET
        name = ?, city = ?, state = ?, phone = ?, website = ?, facebookLink = ?, imageLink = ?, genres = ?,
        seekingVenue = ?, seekingDescription = ?, updatedAt = datetime('now')
    WHERE id = ?`
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.ImageLink, a.Genres, a.SeekingVenue,
			a.SeekingDescription, a.ID,
		)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update artist")
		}
		var num int64
		if num, err = res.RowsAffected(); err == nil && num == 0 {
			return repos.ErrEntityNotExisting
		}
		a.UpdatedAt = time.Now()
		return errors.Wrap(err, "Update: Failed to get number of updated rows")
	})
}

// Delete removes an artist together with all of its shows
func (r *ArtistRepo) Delete(ctx context.Context, id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting artist")
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM Shows WHERE artistId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to remove shows of artist")
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM Artists WHERE id = ?", id)
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to remove artist")
		}
		var num int64
		if num, err = res.RowsAffected(); err == nil && num == 0 {
			return repos.ErrEntityNotExisting
		}
		return errors.Wrap(err, "Delete: Failed to get number of deleted rows")
	})
}

// GetByID returns the artist having the given ID
func (r *ArtistRepo) GetByID(ctx context.Context, id uint) (*models.Artist, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading artist")
	query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
	var a models.Artist
	err := r.db.GetContext(ctx, &a, query, id)
	if err == sql.ErrNoRows {
		return nil, repos.ErrEntityNotExisting
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetByID: Failed to query database")
	}
	return &a, nil
}

// List returns all artists ordered by name with their number of shows starting after now
func (r *ArtistRepo) List(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	ret := []models.ArtistSummary{}
	err := r.db.SelectContext(ctx, &ret, summarySelect+` ORDER BY a.name, a.id`, repos.DBTime(now))
	return ret, errors.Wrap(err, "List: Failed to query database")
}

// Find returns the artists whose name contains the search string regardless of case
func (r *ArtistRepo) Find(ctx context.Context, search string, now time.Time) ([]models.ArtistSummary, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for artists")
	if search == "" {
		return r.List(ctx, now)
	}
	query := summarySelect + ` WHERE instr(casefold(a.name), casefold($2)) > 0 ORDER BY a.name, a.id`
	ret := []models.ArtistSummary{}
	if err := r.db.SelectContext(ctx, &ret, query, repos.DBTime(now), search); err != nil {
		return nil, errors.Wrap(err, "Find: Failed to query database")
	}
	return ret, nil
}
