package internal

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/repos"
)

const (
	// ErrCodeUnknown is the error code for unknown errors
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeRepoError is returned when the request to a repo fails with an error - mostly because the storage is
	// not available
	ErrCodeRepoError = "STORAGE_QUERY_FAILED"
	// ErrCodeConstraintViolation is returned when a write is rejected by the storage because it would break a
	// relation or a required field rule
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"
	// ErrCodeValidationFailed is returned when submitted form data does not validate
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeVenueNotFound is returned when an operation works on a venue that does not exist
	ErrCodeVenueNotFound = "VENUE_NOT_FOUND"
	// ErrCodeArtistNotFound is returned when an operation works on an artist that does not exist
	ErrCodeArtistNotFound = "ARTIST_NOT_FOUND"
)

// HTTPError is an error that contains information about the error message to return to the client
type HTTPError struct {
	message string
	code    string
	status  int
	data    interface{}
}

// MakeError creates a new HTTPError with the given contents
func MakeError(status int, code, message string) *HTTPError {
	return MakeErrorWithData(status, code, message, nil)
}

// MakeErrorWithData creates a new HTTPError with the given contents and an additional data element
func MakeErrorWithData(status int, code, message string, data interface{}) *HTTPError {
	return &HTTPError{message, code, status, data}
}

// Error implements the errorer interface
func (e *HTTPError) Error() string {
	return e.message
}

// Status returns the HTTP status that should be returned
func (e *HTTPError) Status() int {
	return e.status
}

// ErrorCode returns the machine-readable error code
func (e *HTTPError) ErrorCode() string {
	return e.code
}

// Data returns additional data about the error
func (e *HTTPError) Data() interface{} {
	return e.data
}

// ErrorCodeOf returns the machine-readable code of the given error or ErrCodeUnknown if it has none
func ErrorCodeOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.code
	}
	return ErrCodeUnknown
}

// translateRepoError converts an error returned by a repository into an HTTPError. notFoundCode is used when the
// entity described by what does not exist.
func translateRepoError(err error, notFoundCode, what string) error {
	switch {
	case errors.Is(err, repos.ErrEntityNotExisting):
		return MakeError(http.StatusNotFound, notFoundCode, fmt.Sprintf("%s does not exist", what))
	case errors.Is(err, repos.ErrConstraintViolation):
		return MakeErrorWithData(http.StatusConflict, ErrCodeConstraintViolation,
			fmt.Sprintf("%s violates the storage constraints", what), err,
		)
	default:
		return MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError,
			fmt.Sprintf("Error while accessing %s in storage", what), err,
		)
	}
}
