// Package sqlite provides a venue repository that stores its data inside a SQLite database
package sqlite

import (
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
	venueFields = `name, city, state, address, phone, imageLink, facebookLink, websiteLink, seekingTalent,
                    seekingDescription, genres, createdAt`
)

// venueRow is the representation of a venue inside the database
type venueRow struct {
	ID                 uint        `db:"id"`
	Name               string      `db:"name"`
	City               string      `db:"city"`
	State              null.String `db:"state"`
	Address            string      `db:"address"`
	Phone              string      `db:"phone"`
	ImageLink          null.String `db:"imageLink"`
	FacebookLink       null.String `db:"facebookLink"`
	WebsiteLink        null.String `db:"websiteLink"`
	SeekingTalent      bool        `db:"seekingTalent"`
	SeekingDescription null.String `db:"seekingDescription"`
	Genres             string      `db:"genres"`
	CreatedAt          time.Time   `db:"createdAt"`
}

func (row *venueRow) toModel() (*models.Venue, error) {
	genres, err := repos.DecodeGenres(row.Genres)
	if err != nil {
		return nil, err
	}
	return &models.Venue{
		ID:                 row.ID,
		Name:               row.Name,
		City:               row.City,
		State:              row.State.String,
		Address:            row.Address,
		Phone:              row.Phone,
		ImageLink:          row.ImageLink.String,
		FacebookLink:       row.FacebookLink.String,
		WebsiteLink:        row.WebsiteLink.String,
		SeekingTalent:      row.SeekingTalent,
		SeekingDescription: row.SeekingDescription.String,
		Genres:             genres,
		CreatedAt:          row.CreatedAt,
	}, nil
}

// optional stores empty strings as NULL
func optional(s string) null.String {
	return null.NewString(s, s != "")
}

// VenueRepo is a repository that stores its data inside a SQLite database
type VenueRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new venue repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *VenueRepo {
	return &VenueRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new venue
func (r *VenueRepo) Create(v *models.Venue) error {
	r.logger.WithField(log.FldName, v.Name).Debug("Adding new venue")
	genres, err := repos.EncodeGenres(v.Genres)
	if err != nil {
		return err
	}
	now := time.Now()
	query := fmt.Sprintf("INSERT INTO Venues(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", venueFields)
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query,
			v.Name, v.City, optional(v.State), v.Address, v.Phone, optional(v.ImageLink), optional(v.FacebookLink),
			optional(v.WebsiteLink), v.SeekingTalent, optional(v.SeekingDescription), genres, now,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint(id)
		v.CreatedAt = now
		return nil
	})
}

// Update overwrites all editable fields of the given venue
func (r *VenueRepo) Update(v *models.Venue) error {
	r.logger.WithField(log.FldID, v.ID).Debug("Updating venue")
	genres, err := repos.EncodeGenres(v.Genres)
	if err != nil {
		return err
	}
	query := `UPDATE Venues SET name = ?, city = ?, state = ?, address = ?, phone = ?, imageLink = ?,
        facebookLink = ?, websiteLink = ?, seekingTalent = ?, seekingDescription = ?, genres = ? WHERE id = ?`
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query,
			v.Name, v.City, optional(v.State), v.Address, v.Phone, optional(v.ImageLink), optional(v.FacebookLink),
			optional(v.WebsiteLink), v.SeekingTalent, optional(v.SeekingDescription), genres, v.ID,
		)
		if err != nil {
			return err
		}
		return expectAffected(res.RowsAffected())
	})
}

// Delete removes the given venue and all shows taking place there
func (r *VenueRepo) Delete(id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting venue")
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM Shows WHERE venueId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to remove shows of venue")
		}
		res, err := tx.Exec("DELETE FROM Venues WHERE id = ?", id)
		if err != nil {
			return err
		}
		return expectAffected(res.RowsAffected())
	})
}

// GetByID returns the venue with the given ID
func (r *VenueRepo) GetByID(id uint) (*models.Venue, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading venue")
	query := fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields)
	var row venueRow
	if err := r.db.Get(&row, query, id); err != nil {
		return nil, repos.Classify(err)
	}
	v, err := row.toModel()
	if err != nil {
		return nil, repos.Classify(err)
	}
	return v, nil
}

// List returns all venues
func (r *VenueRepo) List() ([]models.Venue, error) {
	r.logger.Debug("Listing venues")
	return r.selectVenues(fmt.Sprintf("SELECT id, %s FROM Venues ORDER BY id", venueFields))
}

// Recent returns the most recently created venues
func (r *VenueRepo) Recent(limit uint) ([]models.Venue, error) {
	r.logger.WithField(log.FldLimit, limit).Debug("Listing recently created venues")
	query := fmt.Sprintf("SELECT id, %s FROM Venues ORDER BY createdAt DESC, id DESC LIMIT ?", venueFields)
	return r.selectVenues(query, limit)
}

func (r *VenueRepo) selectVenues(query string, args ...interface{}) ([]models.Venue, error) {
	var rows []venueRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, repos.Classify(err)
	}
	ret := make([]models.Venue, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toModel()
		if err != nil {
			return nil, repos.Classify(err)
		}
		ret = append(ret, *v)
	}
	return ret, nil
}

// expectAffected turns an update or delete that did not touch any row into ErrEntityNotExisting
func expectAffected(num int64, err error) error {
	if err != nil {
		return err
	}
	if num == 0 {
		return repos.ErrEntityNotExisting
	}
	return nil
}
