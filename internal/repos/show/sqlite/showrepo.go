// Package sqlite provides a show repository that stores its data inside a SQLite database
package sqlite

import (
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
	showFields = `s.id AS id, s.venueId AS venueId, s.artistId AS artistId, s.startTime AS startTime,
					s.createdAt AS createdAt`
)

// ShowRepo is a show repository that stores its data inside a SQLite database
type ShowRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ShowRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) repos.ShowRepo {
	return &ShowRepo{
		db:     db,
		logger: logger,
	}
}

// exists checks for the row with the given ID inside the given table
func exists(ctx context.Context, tx *sqlx.Tx, table string, id uint) (bool, error) {
	var num uint
	if err := tx.GetContext(ctx, &num, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id); err != nil {
		return false, err
	}
	return num > 0, nil
}

// Create creates a new show after checking that both the venue and the artist exist
func (r *ShowRepo) Create(ctx context.Context, s *models.Show) error {
	r.logger.WithFields(logrus.Fields{
		log.FldVenue:  s.VenueID,
		log.FldArtist: s.ArtistID,
	}).Debug("Adding new show")
	return repos.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "Venues", s.VenueID)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to look up venue")
		}
		if !ok {
			return repos.ErrVenueNotExisting
		}
		if ok, err = exists(ctx, tx, "Artists", s.ArtistID); err != nil {
			return errors.Wrap(err, "Create: Failed to look up artist")
		}
		if !ok {
			return repos.ErrArtistNotExisting
		}
		start := repos.DBTime(s.StartTime)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO Shows(venueId, artistId, startTime, createdAt) VALUES(?, ?, ?, datetime('now'))`,
			s.VenueID, s.ArtistID, start,
		)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert show")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "Create: Failed to get ID of new show")
		}
		s.ID = uint(id)
		s.StartTime = start
		s.CreatedAt = time.Now()
		return nil
	})
}

// List returns all shows ordered by start time
func (r *ShowRepo) List(ctx context.Context) ([]models.ShowListing, error) {
	query := `SELECT ` + showFields + `,
				v.name AS venueName,
				a.name AS artistName,
				a.imageLink AS artistImageLink
			FROM Shows s
			JOIN Venues v ON v.id = s.venueId
			JOIN Artists a ON a.id = s.artistId
			ORDER BY s.startTime, s.id`
	ret := []models.ShowListing{}
	if err := r.db.SelectContext(ctx, &ret, query); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query database")
	}
	return ret, nil
}

// ByVenue returns the shows taking place at the given venue
func (r *ShowRepo) ByVenue(ctx context.Context, venueID uint) ([]models.VenueShow, error) {
	r.logger.WithField(log.FldVenue, venueID).Debug("Loading shows of venue")
	query := `SELECT ` + showFields + `,
				a.name AS artistName,
				a.imageLink AS artistImageLink
			FROM Shows s
			JOIN Artists a ON a.id = s.artistId
			WHERE s.venueId = ?
			ORDER BY s.startTime, s.id`
	ret := []models.VenueShow{}
	if err := r.db.SelectContext(ctx, &ret, query, venueID); err != nil {
		return nil, errors.Wrap(err, "ByVenue: Failed to query database")
	}
	return ret, nil
}

// ByArtist returns the shows the given artist performs in
func (r *ShowRepo) ByArtist(ctx context.Context, artistID uint) ([]models.ArtistShow, error) {
	r.logger.WithField(log.FldArtist, artistID).Debug("Loading shows of artist")
	query := `SELECT ` + showFields + `,
				v.name AS venueName,
				v.imageLink AS venueImageLink
			FROM Shows s
			JOIN Venues v ON v.id = s.venueId
			WHERE s.artistId = ?
			ORDER BY s.startTime, s.id`
	ret := []models.ArtistShow{}
	if err := r.db.SelectContext(ctx, &ret, query, artistID); err != nil {
		return nil, errors.Wrap(err, "ByArtist: Failed to query database")
	}
	return ret, nil
}
