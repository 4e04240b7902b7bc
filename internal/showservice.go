package internal

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// ShowService provides service functions for working with shows
type ShowService interface {
	// List returns all shows ordered by their start time
	List(ctx context.Context) ([]models.ShowListing, error)
	// Create creates a new show linking an existing artist to an existing venue
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

// -- ShowService implementation ---------------------------------------------------------------------------------------

type showService struct {
	repo   repos.ShowRepo
	logger *logrus.Entry
}

// NewShowService creates a new show service instance
func NewShowService(repo repos.ShowRepo, logger *logrus.Entry) ShowService {
	return &showService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all shows ordered by their start time
func (s *showService) List(ctx context.Context) ([]models.ShowListing, error) {
	shows, err := s.repo.List()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list shows")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, "Shows")
	}
	return shows, nil
}

// Create creates a new show. A show referencing an unknown artist or venue is rejected as a constraint violation
func (s *showService) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	logger := s.logger.WithFields(logrus.Fields{log.FldArtist: show.ArtistID, log.FldVenue: show.VenueID})
	if err := s.repo.Create(show); err != nil {
		logger.WithError(err).Error("Failed to create show")
		return nil, translateRepoError(err, ErrCodeVenueNotFound,
			fmt.Sprintf("Show of artist #%d at venue #%d", show.ArtistID, show.VenueID),
		)
	}
	logger.WithField(log.FldID, show.ID).Info("Show created")
	return show, nil
}
