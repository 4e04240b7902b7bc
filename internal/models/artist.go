package models

import "time"

// Artist is a performer that can be booked for shows at venues
type Artist struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Phone string `json:"phone"`
	// The genres the artist plays, in the order they have been entered
	Genres       []string `json:"genres"`
	ImageLink    string   `json:"image_link,omitempty"`
	FacebookLink string   `json:"facebook_link,omitempty"`
	WebsiteLink  string   `json:"website,omitempty"`
	// Is the artist currently looking for a venue to play at?
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
