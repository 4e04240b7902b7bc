// Package repos contains the repository interfaces needed in Fyyur
// It exists to prevent circular dependencies between fyyur and the repo implementations
package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/models"
)

var (
	// ErrEntityNotExisting is fired by a repository when an entity that is read, updated or deleted does not exist
	ErrEntityNotExisting = errors.New("entity does not exist")
	// ErrConstraintViolation is fired when a write breaks a foreign key or required field rule of the storage
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStoreUnavailable is fired when the underlying storage cannot be reached or fails for any other reason
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// VenueRepo defines a repository that handles storing and querying venues
type VenueRepo interface {
	// Create creates a new venue and assigns the ID and creation date to it
	Create(v *models.Venue) error
	// Update overwrites all editable fields of an existing venue
	Update(v *models.Venue) error
	// Delete removes a venue together with all of its shows
	Delete(id uint) error
	// GetByID returns the venue with the given ID
	GetByID(id uint) (*models.Venue, error)
	// List returns all venues ordered by ID
	List() ([]models.Venue, error)
	// Recent returns the most recently created venues - newest first
	Recent(limit uint) ([]models.Venue, error)
}

// ArtistRepo defines a repository that handles storing and querying artists
type ArtistRepo interface {
	// Create creates a new artist and assigns the ID and creation date to it
	Create(a *models.Artist) error
	// Update overwrites all editable fields of an existing artist
	Update(a *models.Artist) error
	// Delete removes an artist together with all of its shows
	Delete(id uint) error
	// GetByID returns the artist with the given ID
	GetByID(id uint) (*models.Artist, error)
	// List returns all artists ordered by ID
	List() ([]models.Artist, error)
	// Recent returns the most recently created artists - newest first
	Recent(limit uint) ([]models.Artist, error)
}

// ShowRepo defines a repository that handles storing and querying shows
type ShowRepo interface {
	// Create creates a new show. Artist and venue must exist
	Create(s *models.Show) error
	// List returns all shows ordered by their start time
	List() ([]models.ShowListing, error)
	// ByVenue returns the shows taking place at the given venue
	ByVenue(venueID uint) ([]models.ShowListing, error)
	// ByArtist returns the shows the given artist plays in
	ByArtist(artistID uint) ([]models.ShowListing, error)
	// CountByVenue returns the total number of shows per venue ID. Venues without shows are not contained
	CountByVenue() (map[uint]int, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}

// InTx runs fn inside a new transaction. The transaction is committed when fn returns nil and rolled back when it
// returns an error or panics. Errors are classified before being returned.
func InTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return Classify(errors.Wrap(err, "failed to start transaction"))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err = fn(tx); err != nil {
		return Classify(DoRollback(tx, err))
	}
	if err = tx.Commit(); err != nil {
		return Classify(errors.Wrap(err, "failed to commit transaction"))
	}
	return nil
}
