package internal

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const showFailure = "An error occurred. Show could not be listed."

// ShowService provides service functions for working with shows
type ShowService interface {
	// List returns all shows with venue and artist resolved
	List(ctx context.Context) ([]models.ShowListing, error)
	// Create schedules a new show. Overlapping shows are allowed
	Create(ctx context.Context, form *ShowForm) (*models.Show, error)
	// Now returns the current time of the service's clock
	Now() time.Time
}

// -- ShowService implementation ---------------------------------------------------------------------------------------

type showService struct {
	repo   repos.ShowRepo
	clock  Clock
	logger *logrus.Entry
}

// NewShowService creates a new show service instance
func NewShowService(repo repos.ShowRepo, clock Clock, logger *logrus.Entry) ShowService {
	return &showService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// List returns all shows with venue and artist resolved
func (s *showService) List(ctx context.Context) ([]models.ShowListing, error) {
	lst, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Show list query failed")
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, "Error while listing shows", err)
	}
	return lst, nil
}

// Create schedules a new show. Overlapping shows are allowed
func (s *showService) Create(ctx context.Context, form *ShowForm) (*models.Show, error) {
	if form.StartTime.IsZero() {
		return nil, MakeErrorWithData(http.StatusBadRequest, ErrCodeRequiredFieldMissing, showFailure,
			map[string]string{"field": "start_time"},
		)
	}
	show := models.Show{
		VenueID:   form.VenueID,
		ArtistID:  form.ArtistID,
		StartTime: form.StartTime,
	}
	err := s.repo.Create(ctx, &show)
	switch errors.Cause(err) {
	case nil:
		return &show, nil
	case repos.ErrVenueNotExisting:
		return nil, MakeErrorWithData(http.StatusNotFound, ErrCodeVenueNotFound, showFailure,
			map[string]uint{"venue_id": form.VenueID},
		)
	case repos.ErrArtistNotExisting:
		return nil, MakeErrorWithData(http.StatusNotFound, ErrCodeArtistNotFound, showFailure,
			map[string]uint{"artist_id": form.ArtistID},
		)
	}
	s.logger.WithError(err).WithFields(logrus.Fields{
		log.FldVenue:  form.VenueID,
		log.FldArtist: form.ArtistID,
	}).Error("Failed to create show")
	return nil, asListingFailure(err, showFailure)
}

// Now returns the current time of the service's clock
func (s *showService) Now() time.Time {
	return s.clock()
}
