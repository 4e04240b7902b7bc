package repos

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// classifiedError attaches one of the repository sentinel errors to the error returned by the driver
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

// Is makes errors.Is match the sentinel the error has been classified as
func (e *classifiedError) Is(target error) bool {
	return target == e.kind
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

// Classify maps an error returned by the database layer to one of ErrEntityNotExisting, ErrConstraintViolation or
// ErrStoreUnavailable. Errors that have already been classified are returned as they are.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEntityNotExisting), errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return &classifiedError{ErrEntityNotExisting, err}
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &classifiedError{ErrConstraintViolation, err}
	}
	return &classifiedError{ErrStoreUnavailable, err}
}
