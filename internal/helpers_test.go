package internal

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/database"
	"github.com/derWhity/fyyur/internal/models"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

// Fixed point in time all tests are running at
var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time {
	return testNow
}

// testEnv bundles the services of a Fyyur instance running on an in-memory database
type testEnv struct {
	db      *sqlx.DB
	logger  *logrus.Entry
	hook    *test.Hook
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

func newTestEnv(t *testing.T) *testEnv {
	nullLogger, hook := test.NewNullLogger()
	logger := logrus.NewEntry(nullLogger)
	db, err := database.Open(database.InMemory, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	shows := showrepo.New(db, logger)
	return &testEnv{
		db:      db,
		logger:  logger,
		hook:    hook,
		venues:  NewVenueService(venuerepo.New(db, logger), shows, fixedClock, logger),
		artists: NewArtistService(artistrepo.New(db, logger), shows, fixedClock, logger),
		shows:   NewShowService(shows, logger),
	}
}

func (env *testEnv) ctx() context.Context {
	return ctxhelper.WithLogger(context.Background(), env.logger)
}

func (env *testEnv) venue(t *testing.T, name, city, state string) *models.Venue {
	v, err := env.venues.Create(env.ctx(), &models.Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1 St",
		Phone:   "555-0100",
		Genres:  []string{"Jazz"},
	})
	require.NoError(t, err)
	return v
}

func (env *testEnv) artist(t *testing.T, name string) *models.Artist {
	a, err := env.artists.Create(env.ctx(), &models.Artist{Name: name, Phone: "555-0200"})
	require.NoError(t, err)
	return a
}

func (env *testEnv) show(t *testing.T, artist, venue uint, start time.Time) *models.Show {
	s, err := env.shows.Create(env.ctx(), &models.Show{ArtistID: artist, VenueID: venue, StartTime: start})
	require.NoError(t, err)
	return s
}
