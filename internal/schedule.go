package internal

import (
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// Clock returns the current point in time. Tests replace it to get a fixed "now"
type Clock func() time.Time

// splitShows partitions the given shows into past and upcoming ones relative to now. The order of the shows is
// kept inside both lists.
func splitShows(shows []models.ShowListing, now time.Time) models.ShowSplit {
	split := models.ShowSplit{
		PastShows:     []models.ShowListing{},
		UpcomingShows: []models.ShowListing{},
	}
	for _, show := range shows {
		if show.Upcoming(now) {
			split.UpcomingShows = append(split.UpcomingShows, show)
		} else {
			split.PastShows = append(split.PastShows, show)
		}
	}
	split.PastShowsCount = len(split.PastShows)
	split.UpcomingShowsCount = len(split.UpcomingShows)
	return split
}

// countUpcoming returns the number of shows starting after now
func countUpcoming(shows []models.ShowListing, now time.Time) int {
	num := 0
	for _, show := range shows {
		if show.Upcoming(now) {
			num++
		}
	}
	return num
}
