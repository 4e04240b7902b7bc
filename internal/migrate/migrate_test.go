package migrate

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreIdempotent(t *testing.T) {
	nullLogger, _ := test.NewNullLogger()
	logger := logrus.NewEntry(nullLogger)
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, ExecuteMigrationsOnDb(db, logger))
	require.NoError(t, ExecuteMigrationsOnDb(db, logger), "Running the migrations again must not fail")

	var versions []uint
	require.NoError(t, db.Select(&versions, "SELECT version FROM Migrations WHERE success = 1 ORDER BY version"))
	assert.Equal(t, []uint{1, 2}, versions)

	for _, table := range []string{"Venues", "Artists", "Shows"} {
		var num int
		require.NoError(t, db.Get(&num, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table))
		assert.Equal(t, 1, num, table)
	}
}
