package internal

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/models"
)

func TestListByLocation(t *testing.T) {
	env := newTestEnv(t)
	hop := env.venue(t, "The Musical Hop", "San Francisco", "CA")
	env.venue(t, "Park Square", "San Francisco", "CA")
	dueling := env.venue(t, "The Dueling Pianos Bar", "New York", "NY")
	artist := env.artist(t, "Guns N Petals")
	env.show(t, artist.ID, hop.ID, testNow.AddDate(-1, 0, 0))
	env.show(t, artist.ID, hop.ID, testNow.AddDate(1, 0, 0))

	groups, err := env.venues.ListByLocation(env.ctx())
	require.NoError(t, err)
	require.Len(t, groups, 2, "One group per distinct city and state")

	assert.Equal(t, models.Location{City: "New York", State: "NY"}, groups[0].Location)
	assert.Equal(t, []models.EntitySummary{{ID: dueling.ID, Name: "The Dueling Pianos Bar"}}, groups[0].Venues)

	assert.Equal(t, models.Location{City: "San Francisco", State: "CA"}, groups[1].Location)
	require.Len(t, groups[1].Venues, 2)
	assert.Equal(t, "The Musical Hop", groups[1].Venues[0].Name)
	assert.Equal(t, 2, groups[1].Venues[0].NumUpcomingShows, "The listing counts all shows of a venue")
	assert.Equal(t, 0, groups[1].Venues[1].NumUpcomingShows)
}

func TestListByLocationSeparatesStates(t *testing.T) {
	env := newTestEnv(t)
	env.venue(t, "Portland Hall", "Portland", "OR")
	env.venue(t, "Portland Club", "Portland", "ME")

	groups, err := env.venues.ListByLocation(env.ctx())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ME", groups[0].State)
	assert.Equal(t, "OR", groups[1].State)
}

func TestBlueNoteScenario(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.venues.Create(env.ctx(), &models.Venue{
		Name: "Blue Note", City: "NY", State: "NY", Address: "1 St", Phone: "555-0100", Genres: []string{"Jazz"},
	})
	require.NoError(t, err)

	groups, err := env.venues.ListByLocation(env.ctx())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, models.Location{City: "NY", State: "NY"}, groups[0].Location)
	require.Len(t, groups[0].Venues, 1)
	assert.Equal(t, "Blue Note", groups[0].Venues[0].Name)
	assert.Equal(t, 0, groups[0].Venues[0].NumUpcomingShows)
}

func TestSearchVenues(t *testing.T) {
	env := newTestEnv(t)
	cavern := env.venue(t, "The Cavern", "Liverpool", "")
	env.venue(t, "AVENUE Hall", "New York", "NY")
	env.venue(t, "Park Square", "San Francisco", "CA")
	artist := env.artist(t, "The Beatles")
	env.show(t, artist.ID, cavern.ID, testNow.AddDate(0, 0, 7))
	env.show(t, artist.ID, cavern.ID, testNow.AddDate(-60, 0, 0))

	res, err := env.venues.Search(env.ctx(), "ave")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "The Cavern", res.Data[0].Name)
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows, "Search results only count upcoming shows")
	assert.Equal(t, "AVENUE Hall", res.Data[1].Name)

	res, err = env.venues.Search(env.ctx(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count, "An empty term matches all venues")

	res, err = env.venues.Search(env.ctx(), "Hall ")
	require.NoError(t, err)
	assert.Zero(t, res.Count, "Spaces around the term are part of it")

	res, err = env.venues.Search(env.ctx(), " hall")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	res, err = env.venues.Search(env.ctx(), "nothing like this")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.NotNil(t, res.Data)
}

func TestVenueDetail(t *testing.T) {
	env := newTestEnv(t)
	v := env.venue(t, "The Musical Hop", "San Francisco", "CA")
	a := env.artist(t, "Guns N Petals")
	env.show(t, a.ID, v.ID, testNow.AddDate(0, -1, 0))
	env.show(t, a.ID, v.ID, testNow.AddDate(0, 1, 0))
	env.show(t, a.ID, v.ID, testNow.AddDate(0, 2, 0))

	detail, err := env.venues.Detail(env.ctx(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", detail.Name)
	assert.Equal(t, []string{"Jazz"}, detail.Genres)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, "Guns N Petals", detail.UpcomingShows[0].ArtistName)

	_, err = env.venues.Detail(env.ctx(), 4711)
	require.Error(t, err)
	assert.Equal(t, ErrCodeVenueNotFound, ErrorCodeOf(err))
	assert.Equal(t, http.StatusNotFound, err.(*HTTPError).Status())
}

func TestUpdateVenueSeekingTalent(t *testing.T) {
	env := newTestEnv(t)
	v := env.venue(t, "The Musical Hop", "San Francisco", "CA")
	before, err := env.venues.Get(env.ctx(), v.ID)
	require.NoError(t, err)

	changed := *before
	changed.SeekingTalent = true
	changed.SeekingDescription = "We are on the lookout for a local artist to play every two weeks."
	require.NoError(t, env.venues.Update(env.ctx(), &changed))

	after, err := env.venues.Get(env.ctx(), v.ID)
	require.NoError(t, err)
	assert.True(t, after.SeekingTalent)
	assert.Equal(t, changed.SeekingDescription, after.SeekingDescription)

	after.SeekingTalent = before.SeekingTalent
	after.SeekingDescription = before.SeekingDescription
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Genres, after.Genres)
	assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Second)
	after.CreatedAt = before.CreatedAt
	assert.Equal(t, before, after, "Nothing else may change")
}

func TestUpdateUnknownVenue(t *testing.T) {
	env := newTestEnv(t)
	err := env.venues.Update(env.ctx(), &models.Venue{ID: 3, Name: "Ghost", City: "X", Address: "Y", Phone: "Z"})
	assert.Equal(t, ErrCodeVenueNotFound, ErrorCodeOf(err))
}

func TestDeleteVenue(t *testing.T) {
	env := newTestEnv(t)
	v := env.venue(t, "The Musical Hop", "San Francisco", "CA")
	a := env.artist(t, "Guns N Petals")
	env.show(t, a.ID, v.ID, testNow.AddDate(0, 1, 0))

	deleted, err := env.venues.Delete(env.ctx(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", deleted.Name)

	shows, err := env.shows.List(env.ctx())
	require.NoError(t, err)
	assert.Empty(t, shows, "Shows of a deleted venue are removed")

	detail, err := env.artists.Detail(env.ctx(), a.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.UpcomingShowsCount)

	_, err = env.venues.Delete(env.ctx(), v.ID)
	assert.Equal(t, ErrCodeVenueNotFound, ErrorCodeOf(err))
}

func TestRecentVenues(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		env.venue(t, name, "Town", "")
	}
	recent, err := env.venues.Recent(env.ctx(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, "L", recent[0].Name)
	assert.Equal(t, "C", recent[9].Name)
}

func TestVenueServiceWithClosedDatabase(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	_, err := env.venues.ListByLocation(env.ctx())
	assert.Equal(t, ErrCodeRepoError, ErrorCodeOf(err))
	_, err = env.venues.Search(env.ctx(), "hop")
	assert.Equal(t, ErrCodeRepoError, ErrorCodeOf(err))
	_, err = env.venues.Create(env.ctx(), &models.Venue{Name: "Hop", City: "X", Address: "Y", Phone: "Z"})
	assert.Equal(t, ErrCodeRepoError, ErrorCodeOf(err))
}
