package models

import "time"

// Venue is a place where artists can perform their shows
type Venue struct {
	// Internal ID
	ID uint `json:"id"`
	// Name of the venue
	Name string `json:"name"`
	City string `json:"city"`
	// The state is optional - not every venue is located in a country having states
	State   string `json:"state,omitempty"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	// Link to a picture of the venue
	ImageLink    string `json:"image_link,omitempty"`
	FacebookLink string `json:"facebook_link,omitempty"`
	WebsiteLink  string `json:"website,omitempty"`
	// Is the venue currently looking for artists to book?
	SeekingTalent bool `json:"seeking_talent"`
	// What kind of talent the venue is looking for - only meaningful while SeekingTalent is set
	SeekingDescription string `json:"seeking_description,omitempty"`
	// The music genres played at this venue, in the order they have been entered
	Genres []string `json:"genres"`
	// Creation date of this entry
	CreatedAt time.Time `json:"created_at"`
}

// Location returns the (city, state) pair the venue is grouped by
func (v *Venue) Location() Location {
	return Location{City: v.City, State: v.State}
}

// Location is the key used for grouping venues by the place they are located at
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}
