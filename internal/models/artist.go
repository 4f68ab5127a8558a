package models

import "time"

// Artist is a performer that plays shows at venues
type Artist struct {
	// Internal ID
	ID uint `db:"id" json:"id"`
	// Name of the artist
	Name  string `db:"name" json:"name"`
	City  string `db:"city" json:"city"`
	State string `db:"state" json:"state"`
	Phone string `db:"phone" json:"phone"`
	// The artist's homepage
	Website      string `db:"website" json:"website"`
	FacebookLink string `db:"facebookLink" json:"facebookLink"`
	ImageLink    string `db:"imageLink" json:"imageLink"`
	Genres       Genres `db:"genres" json:"genres"`
	// Set to `true` when the artist is looking for places to perform
	SeekingVenue       bool      `db:"seekingVenue" json:"seekingVenue"`
	SeekingDescription string    `db:"seekingDescription" json:"seekingDescription"`
	CreatedAt          time.Time `db:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `db:"updatedAt" json:"updatedAt"`
}

// ArtistSummary is the short form of an artist used in listings and search results
type ArtistSummary struct {
	ID               uint   `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	NumUpcomingShows uint   `db:"numUpcomingShows" json:"numUpcomingShows"`
}

// ArtistDetail is an artist together with the shows split at the time of the query
type ArtistDetail struct {
	Artist
	PastShows     []ArtistShow `json:"pastShows"`
	UpcomingShows []ArtistShow `json:"upcomingShows"`
}
