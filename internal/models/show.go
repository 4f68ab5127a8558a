package models

import "time"

// Show is a single performance of an artist at a venue
type Show struct {
	ID       uint `db:"id" json:"id"`
	VenueID  uint `db:"venueId" json:"venueId"`
	ArtistID uint `db:"artistId" json:"artistId"`
	// The point in time the show starts at
	StartTime time.Time `db:"startTime" json:"startTime"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
}

// IsUpcoming tells if the show starts strictly after the given point in time
func (s *Show) IsUpcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

// VenueShow is a show as seen from a venue - it carries the performing artist's data
type VenueShow struct {
	Show
	ArtistName      string `db:"artistName" json:"artistName"`
	ArtistImageLink string `db:"artistImageLink" json:"artistImageLink"`
}

// ArtistShow is a show as seen from an artist - it carries the hosting venue's data
type ArtistShow struct {
	Show
	VenueName      string `db:"venueName" json:"venueName"`
	VenueImageLink string `db:"venueImageLink" json:"venueImageLink"`
}

// ShowListing is a show with both sides resolved for the global show list
type ShowListing struct {
	Show
	VenueName       string `db:"venueName" json:"venueName"`
	ArtistName      string `db:"artistName" json:"artistName"`
	ArtistImageLink string `db:"artistImageLink" json:"artistImageLink"`
}
