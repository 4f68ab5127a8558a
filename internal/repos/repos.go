// Package repos contains the repository interfaces needed in Fyyur
// It exists to prevent circular dependencies between fyyur and the repo implementations
package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/models"
)

var (
	// ErrEntityNotExisting is fired by a repository when an entity that is loaded, updated or deleted does not exist
	ErrEntityNotExisting = fmt.Errorf("entity does not exist")
	// ErrVenueNotExisting is returned when a show references a venue that does not exist
	ErrVenueNotExisting = fmt.Errorf("referenced venue does not exist")
	// ErrArtistNotExisting is returned when a show references an artist that does not exist
	ErrArtistNotExisting = fmt.Errorf("referenced artist does not exist")
)

// VenueRepo defines a repository that handles storing and querying venues
type VenueRepo interface {
	// Create creates a new venue and assigns its ID
	Create(ctx context.Context, v *models.Venue) error
	// Update overwrites all editable fields of an existing venue
	Update(ctx context.Context, v *models.Venue) error
	// Delete removes a venue together with all of its shows
	Delete(ctx context.Context, id uint) error
	// GetByID returns the venue having the given ID
	GetByID(ctx context.Context, id uint) (*models.Venue, error)
	// List returns all venues ordered by city, state and name with their number of shows starting after now
	List(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	// Find returns the venues whose name contains the search string regardless of case
	Find(ctx context.Context, search string, now time.Time) ([]models.VenueSummary, error)
}

// ArtistRepo defines a repository that handles storing and querying artists
type ArtistRepo interface {
	// Create creates a new artist and assigns its ID
	Create(ctx context.Context, a *models.Artist) error
	// Update overwrites all editable fields of an existing artist
	Update(ctx context.Context, a *models.Artist) error
	// Delete removes an artist together with all of its shows
	Delete(ctx context.Context, id uint) error
	// GetByID returns the artist having the given ID
	GetByID(ctx context.Context, id uint) (*models.Artist, error)
	// List returns all artists ordered by name with their number of shows starting after now
	List(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	// Find returns the artists whose name contains the search string regardless of case
	Find(ctx context.Context, search string, now time.Time) ([]models.ArtistSummary, error)
}

// ShowRepo defines a repository that handles storing and querying shows
type ShowRepo interface {
	// Create creates a new show after checking that both the venue and the artist exist
	Create(ctx context.Context, s *models.Show) error
	// List returns all shows ordered by start time
	List(ctx context.Context) ([]models.ShowListing, error)
	// ByVenue returns the shows taking place at the given venue
	ByVenue(ctx context.Context, venueID uint) ([]models.VenueShow, error)
	// ByArtist returns the shows the given artist performs in
	ByArtist(ctx context.Context, artistID uint) ([]models.ArtistShow, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}

// DBTime converts a point in time into the form stored in the database: UTC at second precision.
// Stored timestamps then share one textual layout and compare chronologically inside SQL.
func DBTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// InTx runs fn inside a transaction that is committed when fn succeeds and rolled back otherwise
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("InTx: Failed to start transaction: %v", err)
	}
	if err = fn(tx); err != nil {
		return DoRollback(tx, err)
	}
	return tx.Commit()
}
