package internal

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// -- Request data -----------------------------------------------------------------------------------------------------

// Search describes a search request with a search term
type Search struct {
	// The string to search for - an empty string matches everything
	Search string
}

// VenueForm is the data submitted when creating or editing a venue.
// Every field is written on submission, so absent optional fields end up empty.
type VenueForm struct {
	Name          string
	City          string
	State         string
	Address       string
	Phone         string
	ImageLink     string
	FacebookLink  string
	Website       string
	Genres        []string
	SeekingTalent bool
	Description   string
}

// ArtistForm is the data submitted when creating or editing an artist
type ArtistForm struct {
	Name         string
	City         string
	State        string
	Phone        string
	ImageLink    string
	FacebookLink string
	Website      string
	Genres       []string
	SeekingVenue bool
	Description  string
}

// ShowForm is the data submitted when scheduling a show
type ShowForm struct {
	VenueID   uint
	ArtistID  uint
	StartTime time.Time
}

// updateRequest carries the ID of the entity being edited together with the submitted form
type updateRequest struct {
	ID   uint
	Form interface{}
}

// apply writes all fields of the form onto the given venue - the ID stays untouched
func (f *VenueForm) apply(v *models.Venue) {
	v.Name = strings.TrimSpace(f.Name)
	v.City = strings.TrimSpace(f.City)
	v.State = strings.TrimSpace(f.State)
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.Genres = models.NewGenres(f.Genres)
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.Description
}

// apply writes all fields of the form onto the given artist - the ID stays untouched
func (f *ArtistForm) apply(a *models.Artist) {
	a.Name = strings.TrimSpace(f.Name)
	a.City = strings.TrimSpace(f.City)
	a.State = strings.TrimSpace(f.State)
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.Genres = models.NewGenres(f.Genres)
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.Description
}

// requireFields checks name, city and state which are mandatory for venues and artists alike
func requireFields(name, city, state string) error {
	for _, fld := range []struct{ name, value string }{
		{"name", name},
		{"city", city},
		{"state", state},
	} {
		if fld.value == "" {
			return MakeErrorWithData(
				http.StatusBadRequest,
				ErrCodeRequiredFieldMissing,
				fmt.Sprintf("Field '%s' is required", fld.name),
				map[string]string{"field": fld.name},
			)
		}
	}
	return nil
}

// Layouts accepted for show start times. Layouts without zone are read in the configured location
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStartTime parses a start time as submitted by the show form
func ParseStartTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("'%s' is no valid date and time", value)
}

// FormatStartTime formats a start time the way it is shown to the user
func FormatStartTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04:05")
}
