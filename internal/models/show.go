package models

import "time"

// Show links an artist to a venue at a specific point in time
type Show struct {
	ID       uint `json:"id"`
	ArtistID uint `json:"artist_id"`
	VenueID  uint `json:"venue_id"`
	// StartTime is a naive local time - there is no notion of time zones in Fyyur
	StartTime time.Time `json:"start_time"`
}

// ShowListing is a show joined with the names and images of the artist and venue involved
type ShowListing struct {
	Show
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link,omitempty"`
	ArtistName     string `json:"artist_name"`
	// Link to the artist's picture - shown in the list of all shows
	ArtistImageLink string `json:"artist_image_link,omitempty"`
}

// Upcoming checks if the show starts strictly after the given point in time. A show starting exactly at now is
// already in the past.
func (s *Show) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}
