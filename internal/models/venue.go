package models

import "time"

// Venue is a place where shows take place
type Venue struct {
	// Internal ID
	ID uint `db:"id" json:"id"`
	// Name of the venue
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
	// State (or region) the city belongs to
	State   string `db:"state" json:"state"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Website string `db:"website" json:"website"`
	// Link to the venue's facebook page
	FacebookLink string `db:"facebookLink" json:"facebookLink"`
	// Link to a picture of the venue
	ImageLink string `db:"imageLink" json:"imageLink"`
	Genres    Genres `db:"genres" json:"genres"`
	// Set to `true` when the venue is looking for artists to play there
	SeekingTalent bool `db:"seekingTalent" json:"seekingTalent"`
	// Free text describing what kind of talent the venue is looking for
	SeekingDescription string `db:"seekingDescription" json:"seekingDescription"`
	// Creation date of this entry
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	// Date of the last update of this entry
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}

// VenueSummary is the short form of a venue used in listings and search results
type VenueSummary struct {
	ID    uint   `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	City  string `db:"city" json:"city"`
	State string `db:"state" json:"state"`
	// The number of shows at this venue starting after the time of the query
	NumUpcomingShows uint `db:"numUpcomingShows" json:"numUpcomingShows"`
}

// Area is a (city, state) pair together with the venues located there
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueDetail is a venue together with its shows split at the time of the query
type VenueDetail struct {
	Venue
	PastShows     []VenueShow `json:"pastShows"`
	UpcomingShows []VenueShow `json:"upcomingShows"`
}
