// Package sqlite provides an artist repository that stores its data inside a SQLite database
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	artistFields = `name, city, state, phone, imageLink, facebookLink, websiteLink, seekingVenue, seekingDescription,
                    genres, createdAt`
)

type artistRow struct {
	ID                 uint        `db:"id"`
	Name               string      `db:"name"`
	City               null.String `db:"city"`
	State              null.String `db:"state"`
	Phone              string      `db:"phone"`
	ImageLink          null.String `db:"imageLink"`
	FacebookLink       null.String `db:"facebookLink"`
	WebsiteLink        null.String `db:"websiteLink"`
	SeekingVenue       bool        `db:"seekingVenue"`
	SeekingDescription null.String `db:"seekingDescription"`
	Genres             string      `db:"genres"`
	CreatedAt          time.Time   `db:"createdAt"`
}

func (row *artistRow) toModel() (*models.Artist, error) {
	genres, err := repos.DecodeGenres(row.Genres)
	if err != nil {
		return nil, err
	}
	return &models.Artist{
		ID:                 row.ID,
		Name:               row.Name,
		City:               row.City.String,
		State:              row.State.String,
		Phone:              row.Phone,
		Genres:             genres,
		ImageLink:          row.ImageLink.String,
		FacebookLink:       row.FacebookLink.String,
		WebsiteLink:        row.WebsiteLink.String,
		SeekingVenue:       row.SeekingVenue,
		SeekingDescription: row.SeekingDescription.String,
		CreatedAt:          row.CreatedAt,
	}, nil
}

func optional(s string) null.String {
	return null.NewString(s, s != "")
}

// ArtistRepo is a repository that stores artists inside a SQLite database
type ArtistRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new artist repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *ArtistRepo {
	return &ArtistRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new artist
func (r *ArtistRepo) Create(a *models.Artist) error {
	r.logger.WithField(log.FldName, a.Name).Debug("Adding new artist")
	genres, err := repos.EncodeGenres(a.Genres)
	if err != nil {
		return err
	}
	now := time.Now()
	query := fmt.Sprintf("INSERT INTO Artists(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", artistFields)
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query,
			a.Name, optional(a.City), optional(a.State), a.Phone, optional(a.ImageLink), optional(a.FacebookLink),
			optional(a.WebsiteLink), a.SeekingVenue, optional(a.SeekingDescription), genres, now,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint(id)
		a.CreatedAt = now
		return nil
	})
}

// Update overwrites all editable fields of the given artist
func (r *ArtistRepo) Update(a *models.Artist) error {
	r.logger.WithField(log.FldID, a.ID).Debug("Updating artist")
	genres, err := repos.EncodeGenres(a.Genres)
	if err != nil {
		return err
	}
	query := `UPDATE Artists SET name = ?, city = ?, state = ?, phone = ?, imageLink = ?, facebookLink = ?,
        websiteLink = ?, seekingVenue = ?, seekingDescription = ?, genres = ? WHERE id = ?`
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query,
			a.Name, optional(a.City), optional(a.State), a.Phone, optional(a.ImageLink), optional(a.FacebookLink),
			optional(a.WebsiteLink), a.SeekingVenue, optional(a.SeekingDescription), genres, a.ID,
		)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

// Delete removes the given artist together with the shows the artist is booked for
func (r *ArtistRepo) Delete(id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting artist")
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM Shows WHERE artistId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to remove shows of artist")
		}
		res, err := tx.Exec("DELETE FROM Artists WHERE id = ?", id)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

// GetByID returns the artist with the given ID
func (r *ArtistRepo) GetByID(id uint) (*models.Artist, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading artist")
	query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
	var row artistRow
	if err := r.db.Get(&row, query, id); err != nil {
		return nil, repos.Classify(err)
	}
	a, err := row.toModel()
	if err != nil {
		return nil, repos.Classify(err)
	}
	return a, nil
}

// List returns all artists
func (r *ArtistRepo) List() ([]models.Artist, error) {
	r.logger.Debug("Listing artists")
	return r.selectArtists(fmt.Sprintf("SELECT id, %s FROM Artists ORDER BY id", artistFields))
}

// Recent returns the most recently created artists
func (r *ArtistRepo) Recent(limit uint) ([]models.Artist, error) {
	r.logger.WithField(log.FldLimit, limit).Debug("Listing recently created artists")
	query := fmt.Sprintf("SELECT id, %s FROM Artists ORDER BY createdAt DESC, id DESC LIMIT ?", artistFields)
	return r.selectArtists(query, limit)
}

func (r *ArtistRepo) selectArtists(query string, args ...interface{}) ([]models.Artist, error) {
	var rows []artistRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, repos.Classify(err)
	}
	ret := make([]models.Artist, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toModel()
		if err != nil {
			return nil, repos.Classify(err)
		}
		ret = append(ret, *a)
	}
	return ret, nil
}

func expectAffected(res sql.Result) error {
	num, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if num == 0 {
		return repos.ErrEntityNotExisting
	}
	return nil
}
