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

func newTestRepo(t *testing.T) (*ArtistRepo, *sqlx.DB) {
	nullLogger, _ := test.NewNullLogger()
	logger := logrus.NewEntry(nullLogger)
	db, err := database.Open(database.InMemory, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, logger), db
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := &models.Artist{
		Name:      "Guns N Petals",
		Phone:     "326-123-5000",
		Genres:    []string{"Rock n Roll"},
		ImageLink: "https://images.example.com/gnp.jpg",
	}
	require.NoError(t, repo.Create(a))
	assert.NotZero(t, a.ID)

	loaded, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", loaded.Name)
	assert.Equal(t, "", loaded.City, "City is optional for artists")
	assert.Equal(t, []string{"Rock n Roll"}, loaded.Genres)
	assert.Equal(t, "https://images.example.com/gnp.jpg", loaded.ImageLink)
}

func TestUpdateAndUnknown(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := &models.Artist{Name: "Matt Quevedo", Phone: "300-400-5000", City: "New York", State: "NY"}
	require.NoError(t, repo.Create(a))

	a.SeekingVenue = true
	a.City = ""
	require.NoError(t, repo.Update(a))
	loaded, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.True(t, loaded.SeekingVenue)
	assert.Equal(t, "", loaded.City)

	_, err = repo.GetByID(99)
	assert.True(t, errors.Is(err, repos.ErrEntityNotExisting))
	a.ID = 99
	assert.True(t, errors.Is(repo.Update(a), repos.ErrEntityNotExisting))
}

func TestDeleteRemovesShows(t *testing.T) {
	repo, db := newTestRepo(t)
	a := &models.Artist{Name: "The Wild Sax Band", Phone: "432-325-5432"}
	require.NoError(t, repo.Create(a))
	_, err := db.Exec(`INSERT INTO Venues(name, city, address, phone, createdAt)
        VALUES('Park Square', 'San Francisco', '34 Whiskey Moore Ave', '415-000-1234', ?)`, time.Now())
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Shows(artistId, venueId, startTime) VALUES(?, 1, '2035-04-01 20:00:00')`, a.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(a.ID))
	var num int
	require.NoError(t, db.Get(&num, "SELECT COUNT(*) FROM Shows"))
	assert.Zero(t, num)
	assert.True(t, errors.Is(repo.Delete(a.ID), repos.ErrEntityNotExisting))
}

func TestRecent(t *testing.T) {
	repo, _ := newTestRepo(t)
	for _, name := range []string{"First", "Second"} {
		require.NoError(t, repo.Create(&models.Artist{Name: name, Phone: "555"}))
	}
	recent, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Second", recent[0].Name)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, "First", all[0].Name)
}
