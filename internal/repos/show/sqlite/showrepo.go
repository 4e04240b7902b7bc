// Package sqlite provides a show repository that stores its data inside a SQLite database
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	showSelect = `SELECT
					s.id AS id,
					s.artistId AS artistId,
					s.venueId AS venueId,
					s.startTime AS startTime,
					v.name AS venueName,
					ifnull(v.imageLink, '') AS venueImageLink,
					a.name AS artistName,
					ifnull(a.imageLink, '') AS artistImageLink
				FROM
					Shows s
				INNER JOIN
					Venues v ON v.id = s.venueId
				INNER JOIN
					Artists a ON a.id = s.artistId`
	showOrder = `ORDER BY s.startTime, s.id`
)

// listingRow is a show joined with its artist and venue as it comes out of the database
type listingRow struct {
	ID              uint   `db:"id"`
	ArtistID        uint   `db:"artistId"`
	VenueID         uint   `db:"venueId"`
	StartTime       string `db:"startTime"`
	VenueName       string `db:"venueName"`
	VenueImageLink  string `db:"venueImageLink"`
	ArtistName      string `db:"artistName"`
	ArtistImageLink string `db:"artistImageLink"`
}

// Helper struct for counting shows per venue
type venueCount struct {
	VenueID uint `db:"venueId"`
	Count   int  `db:"count"`
}

// ShowRepo is a repository that stores shows inside a SQLite database
type ShowRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new show repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *ShowRepo {
	return &ShowRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new show. The referenced artist and venue are checked by the database's foreign keys
func (r *ShowRepo) Create(s *models.Show) error {
	r.logger.WithFields(logrus.Fields{
		log.FldArtist: s.ArtistID,
		log.FldVenue:  s.VenueID,
	}).Debug("Adding new show")
	if s.StartTime.IsZero() {
		return errors.Wrap(repos.ErrConstraintViolation, "Create: Show has no start time")
	}
	query := "INSERT INTO Shows(artistId, venueId, startTime) VALUES(?, ?, ?)"
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query, s.ArtistID, s.VenueID, repos.FormatTimestamp(s.StartTime))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint(id)
		return nil
	})
}

// List returns all shows
func (r *ShowRepo) List() ([]models.ShowListing, error) {
	r.logger.Debug("Listing shows")
	return r.selectListings(fmt.Sprintf("%s %s", showSelect, showOrder))
}

// ByVenue returns the shows taking place at the given venue
func (r *ShowRepo) ByVenue(venueID uint) ([]models.ShowListing, error) {
	r.logger.WithField(log.FldVenue, venueID).Debug("Listing shows of venue")
	return r.selectListings(fmt.Sprintf("%s WHERE s.venueId = ? %s", showSelect, showOrder), venueID)
}

// ByArtist returns the shows the given artist is booked for
func (r *ShowRepo) ByArtist(artistID uint) ([]models.ShowListing, error) {
	r.logger.WithField(log.FldArtist, artistID).Debug("Listing shows of artist")
	return r.selectListings(fmt.Sprintf("%s WHERE s.artistId = ? %s", showSelect, showOrder), artistID)
}

// CountByVenue returns the total number of shows per venue
func (r *ShowRepo) CountByVenue() (map[uint]int, error) {
	var counts []venueCount
	if err := r.db.Select(&counts, "SELECT venueId, COUNT(*) AS count FROM Shows GROUP BY venueId"); err != nil {
		return nil, repos.Classify(err)
	}
	ret := make(map[uint]int, len(counts))
	for _, c := range counts {
		ret[c.VenueID] = c.Count
	}
	return ret, nil
}

func (r *ShowRepo) selectListings(query string, args ...interface{}) ([]models.ShowListing, error) {
	var rows []listingRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, repos.Classify(err)
	}
	ret := make([]models.ShowListing, 0, len(rows))
	for _, row := range rows {
		start, err := repos.ParseTimestamp(row.StartTime)
		if err != nil {
			r.logger.WithError(err).WithField(log.FldID, row.ID).Error("Show has an unreadable start time")
			return nil, repos.Classify(err)
		}
		ret = append(ret, models.ShowListing{
			Show: models.Show{
				ID:        row.ID,
				ArtistID:  row.ArtistID,
				VenueID:   row.VenueID,
				StartTime: start,
			},
			VenueName:       row.VenueName,
			VenueImageLink:  row.VenueImageLink,
			ArtistName:      row.ArtistName,
			ArtistImageLink: row.ArtistImageLink,
		})
	}
	return ret, nil
}
