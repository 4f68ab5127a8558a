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

// ArtistService provides service functions for working with artists
type ArtistService interface {
	// List returns all artists ordered by name
	List(ctx context.Context) ([]models.ArtistSummary, error)
	// Search returns the artists whose name contains the search term regardless of case
	Search(ctx context.Context, search *Search) ([]models.ArtistSummary, error)
	// Get returns the artist with the given ID
	Get(ctx context.Context, id uint) (*models.Artist, error)
	// Detail returns the artist with the given ID together with the past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.ArtistDetail, error)
	// Create lists a new artist
	Create(ctx context.Context, form *ArtistForm) (*models.Artist, error)
	// Update overwrites the artist with the given ID with the contents of the form
	Update(ctx context.Context, id uint, form *ArtistForm) (*models.Artist, error)
	// Delete removes the artist with the given ID and all of the artist's shows
	Delete(ctx context.Context, id uint) error
}

// -- ArtistService implementation -------------------------------------------------------------------------------------

type artistService struct {
	repo   repos.ArtistRepo
	shows  repos.ShowRepo
	clock  Clock
	logger *logrus.Entry
}

// NewArtistService creates a new artist service instance
func NewArtistService(repo repos.ArtistRepo, shows repos.ShowRepo, clock Clock, logger *logrus.Entry) ArtistService {
	return &artistService{repo, shows, clock, logger}
}

func artistNotFound(id uint) error {
	return MakeError(http.StatusNotFound, ErrCodeArtistNotFound, fmt.Sprintf("Artist #%d does not exist", id))
}

// List returns all artists ordered by name
func (s *artistService) List(ctx context.Context) ([]models.ArtistSummary, error) {
	lst, err := s.repo.List(ctx, s.clock())
	if err != nil {
		s.logger.WithError(err).Error("Artist list query failed")
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, "Error while listing artists", err)
	}
	return lst, nil
}

// Search returns the artists whose name contains the search term regardless of case
func (s *artistService) Search(ctx context.Context, search *Search) ([]models.ArtistSummary, error) {
	term := ""
	if search != nil {
		term = search.Search
	}
	lst, err := s.repo.Find(ctx, term, s.clock())
	if err != nil {
		s.logger.WithError(err).WithField(log.FldSearch, term).Error("Artist search failed")
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, "Error while searching artists", err)
	}
	return lst, nil
}

// Get returns the artist with the given ID
func (s *artistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	a, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		return a, nil
	case errors.Cause(err) == repos.ErrEntityNotExisting:
		return nil, artistNotFound(id)
	default:
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError,
			fmt.Sprintf("Error while retrieving artist #%d", id), err,
		)
	}
}

// Detail returns the artist with the given ID together with the past and upcoming shows
func (s *artistService) Detail(ctx context.Context, id uint) (*models.ArtistDetail, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ByArtist(ctx, id)
	if err != nil {
		return nil, MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError,
			fmt.Sprintf("Error while retrieving shows of artist #%d", id), err,
		)
	}
	now := s.clock()
	ret := &models.ArtistDetail{
		Artist:        *a,
		PastShows:     []models.ArtistShow{},
		UpcomingShows: []models.ArtistShow{},
	}
	for _, sh := range shows {
		if sh.IsUpcoming(now) {
			ret.UpcomingShows = append(ret.UpcomingShows, sh)
			continue
		}
		ret.PastShows = append(ret.PastShows, sh)
	}
	return ret, nil
}

// Create lists a new artist
func (s *artistService) Create(ctx context.Context, form *ArtistForm) (*models.Artist, error) {
	var a models.Artist
	form.apply(&a)
	failure := fmt.Sprintf("An error occurred. Artist %s could not be listed.", a.Name)
	if err := requireFields(a.Name, a.City, a.State); err != nil {
		return nil, asListingFailure(err, failure)
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		s.logger.WithError(err).Error("Failed to create artist")
		return nil, asListingFailure(err, failure)
	}
	return &a, nil
}

// Update overwrites the artist with the given ID with the contents of the form
func (s *artistService) Update(ctx context.Context, id uint, form *ArtistForm) (*models.Artist, error) {
	failure := fmt.Sprintf("An error occurred. Artist %s could not be updated.", strings.TrimSpace(form.Name))
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, asListingFailure(err, failure)
	}
	form.apply(a)
	if err = requireFields(a.Name, a.City, a.State); err != nil {
		return nil, asListingFailure(err, failure)
	}
	err = s.repo.Update(ctx, a)
	if errors.Cause(err) == repos.ErrEntityNotExisting {
		return nil, asListingFailure(artistNotFound(id), failure)
	}
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to update artist")
		return nil, asListingFailure(err, failure)
	}
	return a, nil
}

// Delete removes the artist with the given ID and all of the artist's shows
func (s *artistService) Delete(ctx context.Context, id uint) error {
	failure := fmt.Sprintf("An error occurred. Artist #%d could not be deleted.", id)
	err := s.repo.Delete(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Cause(err) == repos.ErrEntityNotExisting {
		return asListingFailure(artistNotFound(id), failure)
	}
	s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to delete artist")
	return asListingFailure(err, failure)
}
