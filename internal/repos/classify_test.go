package repos

import (
	"database/sql"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))

	err := Classify(sql.ErrNoRows)
	assert.True(t, errors.Is(err, ErrEntityNotExisting))
	assert.True(t, errors.Is(err, sql.ErrNoRows), "The cause must stay reachable")

	err = Classify(errors.Wrap(sqlite3.Error{Code: sqlite3.ErrConstraint}, "insert"))
	assert.True(t, errors.Is(err, ErrConstraintViolation))

	err = Classify(sqlite3.Error{Code: sqlite3.ErrIoErr})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	err = Classify(sql.ErrConnDone)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, errors.Is(err, ErrEntityNotExisting))

	wrapped := errors.Wrap(ErrEntityNotExisting, "Update")
	assert.Equal(t, wrapped, Classify(wrapped), "Classified errors are passed through")
	assert.Equal(t, Classify(err), err)
}
