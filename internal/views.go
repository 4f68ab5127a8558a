package internal

import (
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// -- View models handed to the presentation layer ---------------------------------------------------------------------

type venueSummaryView struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows uint   `json:"num_upcoming_shows"`
}

type areaView struct {
	City   string             `json:"city"`
	State  string             `json:"state"`
	Venues []venueSummaryView `json:"venues"`
}

type artistSummaryView struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows uint   `json:"num_upcoming_shows"`
}

type artistListView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// searchView is the result of a venue or artist search
type searchView struct {
	Count      int         `json:"count"`
	Data       interface{} `json:"data"`
	SearchTerm string      `json:"search_term"`
}

type venueShowView struct {
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type artistShowView struct {
	VenueID        uint   `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

type venueView struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

type venueDetailView struct {
	venueView
	PastShows          []venueShowView `json:"past_shows"`
	UpcomingShows      []venueShowView `json:"upcoming_shows"`
	PastShowsCount     int             `json:"past_shows_count"`
	UpcomingShowsCount int             `json:"upcoming_shows_count"`
}

type artistView struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

type artistDetailView struct {
	artistView
	PastShows          []artistShowView `json:"past_shows"`
	UpcomingShows      []artistShowView `json:"upcoming_shows"`
	PastShowsCount     int              `json:"past_shows_count"`
	UpcomingShowsCount int              `json:"upcoming_shows_count"`
}

// venueFormView prefills the venue form - the seeking description is called "description" there
type venueFormView struct {
	ID            uint     `json:"id,omitempty"`
	Name          string   `json:"name"`
	Genres        []string `json:"genres"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Phone         string   `json:"phone"`
	Website       string   `json:"website"`
	FacebookLink  string   `json:"facebook_link"`
	SeekingTalent bool     `json:"seeking_talent"`
	Description   string   `json:"description"`
	ImageLink     string   `json:"image_link"`
}

type artistFormView struct {
	ID           uint     `json:"id,omitempty"`
	Name         string   `json:"name"`
	Genres       []string `json:"genres"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	FacebookLink string   `json:"facebook_link"`
	SeekingVenue bool     `json:"seeking_venue"`
	Description  string   `json:"description"`
	ImageLink    string   `json:"image_link"`
}

type showListView struct {
	VenueID         uint   `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type showFormView struct {
	ArtistID  string `json:"artist_id"`
	VenueID   string `json:"venue_id"`
	StartTime string `json:"start_time"`
}

func genreList(g models.Genres) []string {
	if g == nil {
		return []string{}
	}
	return []string(g)
}

func makeVenueView(v *models.Venue) venueView {
	return venueView{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             genreList(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
	}
}

func makeVenueFormView(v *models.Venue) venueFormView {
	return venueFormView{
		ID:            v.ID,
		Name:          v.Name,
		Genres:        genreList(v.Genres),
		Address:       v.Address,
		City:          v.City,
		State:         v.State,
		Phone:         v.Phone,
		Website:       v.Website,
		FacebookLink:  v.FacebookLink,
		SeekingTalent: v.SeekingTalent,
		Description:   v.SeekingDescription,
		ImageLink:     v.ImageLink,
	}
}

func makeVenueDetailView(d *models.VenueDetail, loc *time.Location) venueDetailView {
	conv := func(shows []models.VenueShow) []venueShowView {
		ret := make([]venueShowView, 0, len(shows))
		for _, s := range shows {
			ret = append(ret, venueShowView{
				ArtistID:        s.ArtistID,
				ArtistName:      s.ArtistName,
				ArtistImageLink: s.ArtistImageLink,
				StartTime:       FormatStartTime(s.StartTime, loc),
			})
		}
		return ret
	}
	return venueDetailView{
		venueView:          makeVenueView(&d.Venue),
		PastShows:          conv(d.PastShows),
		UpcomingShows:      conv(d.UpcomingShows),
		PastShowsCount:     len(d.PastShows),
		UpcomingShowsCount: len(d.UpcomingShows),
	}
}

func makeAreaViews(areas []models.Area) []areaView {
	ret := make([]areaView, 0, len(areas))
	for _, a := range areas {
		ret = append(ret, areaView{City: a.City, State: a.State, Venues: makeVenueSummaryViews(a.Venues)})
	}
	return ret
}

func makeVenueSummaryViews(lst []models.VenueSummary) []venueSummaryView {
	ret := make([]venueSummaryView, 0, len(lst))
	for _, v := range lst {
		ret = append(ret, venueSummaryView{v.ID, v.Name, v.NumUpcomingShows})
	}
	return ret
}

func makeArtistView(a *models.Artist) artistView {
	return artistView{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             genreList(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
	}
}

func makeArtistFormView(a *models.Artist) artistFormView {
	return artistFormView{
		ID:           a.ID,
		Name:         a.Name,
		Genres:       genreList(a.Genres),
		City:         a.City,
		State:        a.State,
		Phone:        a.Phone,
		Website:      a.Website,
		FacebookLink: a.FacebookLink,
		SeekingVenue: a.SeekingVenue,
		Description:  a.SeekingDescription,
		ImageLink:    a.ImageLink,
	}
}

func makeArtistDetailView(d *models.ArtistDetail, loc *time.Location) artistDetailView {
	conv := func(shows []models.ArtistShow) []artistShowView {
		ret := make([]artistShowView, 0, len(shows))
		for _, s := range shows {
			ret = append(ret, artistShowView{
				VenueID:        s.VenueID,
				VenueName:      s.VenueName,
				VenueImageLink: s.VenueImageLink,
				StartTime:      FormatStartTime(s.StartTime, loc),
			})
		}
		return ret
	}
	return artistDetailView{
		artistView:         makeArtistView(&d.Artist),
		PastShows:          conv(d.PastShows),
		UpcomingShows:      conv(d.UpcomingShows),
		PastShowsCount:     len(d.PastShows),
		UpcomingShowsCount: len(d.UpcomingShows),
	}
}

func makeArtistSummaryViews(lst []models.ArtistSummary) []artistSummaryView {
	ret := make([]artistSummaryView, 0, len(lst))
	for _, a := range lst {
		ret = append(ret, artistSummaryView{a.ID, a.Name, a.NumUpcomingShows})
	}
	return ret
}

func makeArtistListViews(lst []models.ArtistSummary) []artistListView {
	ret := make([]artistListView, 0, len(lst))
	for _, a := range lst {
		ret = append(ret, artistListView{a.ID, a.Name})
	}
	return ret
}

func makeShowListViews(lst []models.ShowListing, loc *time.Location) []showListView {
	ret := make([]showListView, 0, len(lst))
	for _, s := range lst {
		ret = append(ret, showListView{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       FormatStartTime(s.StartTime, loc),
		})
	}
	return ret
}
