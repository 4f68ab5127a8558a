package internal

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// VenueService provides service functions for working with venues
type VenueService interface {
	// Areas returns all venues grouped by their (city, state) pair
	Areas(ctx context.Context) ([]models.Area, error)
	// Search returns the venues whose name contains the search term regardless of case
	Search(ctx context.Context, search *Search) ([]models.VenueSummary, error)
	// Get returns the venue with the given ID
	Get(ctx context.Context, id uint) (*models.Venue, error)
	// Detail returns the venue with the given ID together with its past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.VenueDetail, error)
	// Create lists a new venue
	Create(ctx context.Context, form *VenueForm) (*models.Venue, error)
	// Update overwrites the venue with the given ID with the contents of the form
	Update(ctx context.Context, id uint, form *VenueForm) (*models.Venue, error)
	// Delete removes the venue with the given ID and all of its shows
	Delete(ctx context.Context, id uint) error
}

// -- VenueService implementation --------------------------------------------------------------------------------------

type venueService struct {
	repo   repos.VenueRepo
	shows  repos.ShowRepo
	clock  Clock
	logger *logrus.Entry
}

// NewVenueService creates a new venue service instance
func NewVenueService(repo repos.VenueRepo, shows repos.ShowRepo, clock Clock, logger *logrus.Entry) VenueService {
	return &venueService{
		repo:   repo,
		shows:  shows,
		clock:  clock,
		logger: logger,
	}
}

func venueNotFound(id uint) error {
	return MakeError(http.StatusNotFound, ErrCodeVenueNotFound, fmt.Sprintf("Venue #%d does not exist", id))
}

// Areas returns all venues grouped by their (city, state) pair
func (s *venueService) Areas(ctx context.Context) ([]models.Area, error) {
	lst, err := s.repo.List(ctx, s.clock())
	if err != nil {
		s.logger.WithError(err).Error("Venue list query failed")
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, "Error while listing venues", err)
	}
	// The list is ordered by city and state, so every area is one consecutive run
	areas := []models.Area{}
	for _, v := range lst {
		if n := len(areas); n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, models.Area{City: v.City, State: v.State})
		}
		last := &areas[len(areas)-1]
		last.Venues = append(last.Venues, v)
	}
	return areas, nil
}

// Search returns the venues whose name contains the search term regardless of case
func (s *venueService) Search(ctx context.Context, search *Search) ([]models.VenueSummary, error) {
	term := ""
	if search != nil {
		term = search.Search
	}
	lst, err := s.repo.Find(ctx, term, s.clock())
	if err != nil {
		s.logger.WithError(err).WithField(log.FldSearch, term).Error("Venue search failed")
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, "Error while searching venues", err)
	}
	return lst, nil
}

// Get returns the venue with the given ID
func (s *venueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == repos.ErrEntityNotExisting {
			return nil, venueNotFound(id)
		}
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError,
			fmt.Sprintf("Error while retrieving venue #%d", id), err,
		)
	}
	return v, nil
}

// Detail returns the venue with the given ID together with its past and upcoming shows
func (s *venueService) Detail(ctx context.Context, id uint) (*models.VenueDetail, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ByVenue(ctx, id)
	if err != nil {
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError,
			fmt.Sprintf("Error while retrieving shows of venue #%d", id), err,
		)
	}
	now := s.clock()
	ret := models.VenueDetail{
		Venue:         *v,
		PastShows:     []models.VenueShow{},
		UpcomingShows: []models.VenueShow{},
	}
	for _, sh := range shows {
		if sh.IsUpcoming(now) {
			ret.UpcomingShows = append(ret.UpcomingShows, sh)
		} else {
			ret.PastShows = append(ret.PastShows, sh)
		}
	}
	return &ret, nil
}

// Create lists a new venue
func (s *venueService) Create(ctx context.Context, form *VenueForm) (*models.Venue, error) {
	var v models.Venue
	form.apply(&v)
	failure := fmt.Sprintf("An error occurred. Venue %s could not be listed.", v.Name)
	if err := requireFields(v.Name, v.City, v.State); err != nil {
		return nil, asListingFailure(err, failure)
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		s.logger.WithError(err).Error("Failed to create venue")
		return nil, asListingFailure(err, failure)
	}
	return &v, nil
}

// Update overwrites the venue with the given ID with the contents of the form
func (s *venueService) Update(ctx context.Context, id uint, form *VenueForm) (*models.Venue, error) {
	failure := fmt.Sprintf("An error occurred. Venue %s could not be updated.", strings.TrimSpace(form.Name))
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, asListingFailure(err, failure)
	}
	form.apply(v)
	if err = requireFields(v.Name, v.City, v.State); err != nil {
		return nil, asListingFailure(err, failure)
	}
	err = s.repo.Update(ctx, v)
	if errors.Cause(err) == repos.ErrEntityNotExisting {
		return nil, asListingFailure(venueNotFound(id), failure)
	}
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to update venue")
		return nil, asListingFailure(err, failure)
	}
	return v, nil
}

// Delete removes the venue with the given ID and all of its shows
func (s *venueService) Delete(ctx context.Context, id uint) error {
	failure := fmt.Sprintf("An error occurred. Venue #%d could not be deleted.", id)
	err := s.repo.Delete(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Cause(err) == repos.ErrEntityNotExisting {
		return asListingFailure(venueNotFound(id), failure)
	}
	s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to delete venue")
	return asListingFailure(err, failure)
}
