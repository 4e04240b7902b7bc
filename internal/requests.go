package internal

import "github.com/derWhity/fyyur/internal/forms"

// -- Request data -----------------------------------------------------------------------------------------------------

// A search for venues or artists by name
type searchRequest struct {
	Term string
}

// Submitted edit form of an existing venue
type venueUpdateRequest struct {
	ID   uint
	Form forms.VenueForm
}

// Submitted edit form of an existing artist
type artistUpdateRequest struct {
	ID   uint
	Form forms.ArtistForm
}

// Deletion of a venue. RawID keeps the ID as given inside the path, ID is 0 if it cannot be used
type venueDeleteRequest struct {
	ID    uint
	RawID string
}
