package sqlite

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/database"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

func newTestRepo(t *testing.T) (*ShowRepo, *sqlx.DB) {
	nullLogger, _ := test.NewNullLogger()
	logger := logrus.NewEntry(nullLogger)
	db, err := database.Open(database.InMemory, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	now := time.Now()
	_, err = db.Exec(`INSERT INTO Venues(name, city, state, address, phone, imageLink, createdAt) VALUES
        ('The Musical Hop', 'San Francisco', 'CA', '1015 Folsom Street', '123-123-1234', 'https://img.example.com/hop.jpg', ?),
        ('Park Square', 'San Francisco', 'CA', '34 Whiskey Moore Ave', '415-000-1234', NULL, ?)`, now, now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Artists(name, phone, imageLink, createdAt) VALUES
        ('Guns N Petals', '326-123-5000', 'https://img.example.com/gnp.jpg', ?),
        ('Matt Quevedo', '300-400-5000', NULL, ?)`, now, now)
	require.NoError(t, err)
	return New(db, logger), db
}

func at(value string) time.Time {
	t, err := repos.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateAndList(t *testing.T) {
	repo, _ := newTestRepo(t)
	late := &models.Show{ArtistID: 1, VenueID: 1, StartTime: at("2035-04-08 20:00:00")}
	early := &models.Show{ArtistID: 2, VenueID: 2, StartTime: at("2019-06-15 23:00:00")}
	require.NoError(t, repo.Create(late))
	require.NoError(t, repo.Create(early))
	assert.NotZero(t, late.ID)

	shows, err := repo.List()
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, early.ID, shows[0].ID, "Shows are ordered by start time")
	assert.Equal(t, "Matt Quevedo", shows[0].ArtistName)
	assert.Equal(t, "Park Square", shows[0].VenueName)
	assert.Equal(t, "", shows[0].ArtistImageLink)
	assert.Equal(t, "https://img.example.com/gnp.jpg", shows[1].ArtistImageLink)
	assert.Equal(t, "https://img.example.com/hop.jpg", shows[1].VenueImageLink)
	assert.Equal(t, at("2035-04-08 20:00:00"), shows[1].StartTime)
}

func TestCreateWithUnknownReferences(t *testing.T) {
	repo, db := newTestRepo(t)
	for _, s := range []*models.Show{
		{ArtistID: 99, VenueID: 1, StartTime: at("2035-04-08 20:00:00")},
		{ArtistID: 1, VenueID: 99, StartTime: at("2035-04-08 20:00:00")},
		{ArtistID: 1, VenueID: 1},
	} {
		err := repo.Create(s)
		assert.True(t, errors.Is(err, repos.ErrConstraintViolation), "%+v", err)
	}
	var num int
	require.NoError(t, db.Get(&num, "SELECT COUNT(*) FROM Shows"))
	assert.Zero(t, num, "Nothing is written on failure")
}

func TestFilters(t *testing.T) {
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.Create(&models.Show{ArtistID: 1, VenueID: 1, StartTime: at("2019-05-21 21:30:00")}))
	require.NoError(t, repo.Create(&models.Show{ArtistID: 1, VenueID: 2, StartTime: at("2035-04-01 20:00:00")}))
	require.NoError(t, repo.Create(&models.Show{ArtistID: 2, VenueID: 1, StartTime: at("2035-04-15 20:00:00")}))

	byVenue, err := repo.ByVenue(1)
	require.NoError(t, err)
	require.Len(t, byVenue, 2)
	for _, s := range byVenue {
		assert.EqualValues(t, 1, s.VenueID)
	}

	byArtist, err := repo.ByArtist(2)
	require.NoError(t, err)
	require.Len(t, byArtist, 1)
	assert.Equal(t, "The Musical Hop", byArtist[0].VenueName)

	none, err := repo.ByArtist(42)
	require.NoError(t, err)
	assert.Empty(t, none)

	counts, err := repo.CountByVenue()
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{1: 2, 2: 1}, counts)
}

func TestUnreadableStartTime(t *testing.T) {
	repo, db := newTestRepo(t)
	_, err := db.Exec(`INSERT INTO Shows(artistId, venueId, startTime) VALUES(1, 1, 'soon')`)
	require.NoError(t, err)
	_, err = repo.List()
	assert.True(t, errors.Is(err, repos.ErrStoreUnavailable))
}
