package models

// -- Read-only structures handed to the presentation layer ------------------------------------------------------------

// EntitySummary is the short form of a venue or artist used in listings and search results
type EntitySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	// Number of shows counted for this entry. In the location listing, this is the total number of shows, in
	// search results only the upcoming ones are counted
	NumUpcomingShows int `json:"num_upcoming_shows"`
}

// LocationGroup holds all venues sharing the same city and state
type LocationGroup struct {
	Location
	Venues []EntitySummary `json:"venues"`
}

// SearchResult is the result of a name search over venues or artists
type SearchResult struct {
	Count int             `json:"count"`
	Data  []EntitySummary `json:"data"`
}

// ShowSplit contains the shows of a venue or an artist partitioned into past and upcoming ones
type ShowSplit struct {
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

// VenueDetail is a venue together with its shows
type VenueDetail struct {
	Venue
	ShowSplit
}

// ArtistDetail is an artist together with its shows
type ArtistDetail struct {
	Artist
	ShowSplit
}

// RecentListings contains the most recently created artists and venues shown on the home page
type RecentListings struct {
	Artists []EntitySummary `json:"artists"`
	Venues  []EntitySummary `json:"venues"`
}
