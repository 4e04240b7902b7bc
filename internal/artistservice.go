package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// ArtistService provides service functions for working with artists
type ArtistService interface {
	// Recent returns the summaries of the most recently created artists
	Recent(ctx context.Context, limit uint) ([]models.EntitySummary, error)
	// List returns ID and name of all artists
	List(ctx context.Context) ([]models.EntitySummary, error)
	// Search searches for artists having the given term in their name
	Search(ctx context.Context, term string) (*models.SearchResult, error)
	// Detail returns the artist with the given ID together with its past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.ArtistDetail, error)
	// Get returns the artist with the given ID
	Get(ctx context.Context, id uint) (*models.Artist, error)
	// Create creates a new artist
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	// Update overwrites all editable fields of an existing artist
	Update(ctx context.Context, artist *models.Artist) error
}

// -- ArtistService implementation -------------------------------------------------------------------------------------

type artistService struct {
	repo   repos.ArtistRepo
	shows  repos.ShowRepo
	now    Clock
	logger *logrus.Entry
}

// NewArtistService creates a new artist service instance
func NewArtistService(repo repos.ArtistRepo, shows repos.ShowRepo, now Clock, logger *logrus.Entry) ArtistService {
	return &artistService{
		repo:   repo,
		shows:  shows,
		now:    now,
		logger: logger,
	}
}

func artistWhat(id uint) string {
	return fmt.Sprintf("Artist #%d", id)
}

func artistSummaries(artists []models.Artist) []models.EntitySummary {
	ret := make([]models.EntitySummary, 0, len(artists))
	for _, a := range artists {
		ret = append(ret, models.EntitySummary{ID: a.ID, Name: a.Name})
	}
	return ret
}

// Recent returns the summaries of the most recently created artists
func (s *artistService) Recent(ctx context.Context, limit uint) ([]models.EntitySummary, error) {
	artists, err := s.repo.Recent(limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load recent artists")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, "Artists")
	}
	return artistSummaries(artists), nil
}

// List returns ID and name of all artists
func (s *artistService) List(ctx context.Context) ([]models.EntitySummary, error) {
	artists, err := s.repo.List()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list artists")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, "Artists")
	}
	return artistSummaries(artists), nil
}

// Search searches for artists having the given term anywhere in their name, ignoring case
func (s *artistService) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	s.logger.WithField(log.FldSearch, term).Debug("Searching artists")
	artists, err := s.repo.List()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list artists for search")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, "Artists")
	}
	matcher := newNameMatcher(term)
	now := s.now()
	res := &models.SearchResult{Data: []models.EntitySummary{}}
	for _, a := range artists {
		if !matcher.Matches(a.Name) {
			continue
		}
		shows, err := s.shows.ByArtist(a.ID)
		if err != nil {
			s.logger.WithError(err).WithField(log.FldID, a.ID).Error("Failed to load shows of artist")
			return nil, translateRepoError(err, ErrCodeArtistNotFound, artistWhat(a.ID))
		}
		res.Data = append(res.Data, models.EntitySummary{
			ID:               a.ID,
			Name:             a.Name,
			NumUpcomingShows: countUpcoming(shows, now),
		})
	}
	res.Count = len(res.Data)
	return res, nil
}

// Detail returns the artist with the given ID together with its past and upcoming shows
func (s *artistService) Detail(ctx context.Context, id uint) (*models.ArtistDetail, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ByArtist(id)
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to load shows of artist")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, artistWhat(id))
	}
	return &models.ArtistDetail{
		Artist:    *artist,
		ShowSplit: splitShows(shows, s.now()),
	}, nil
}

// Get returns the artist with the given ID
func (s *artistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	artist, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Warn("Failed to load artist")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, artistWhat(id))
	}
	return artist, nil
}

// Create creates a new artist
func (s *artistService) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	artist.Name = strings.TrimSpace(artist.Name)
	if err := s.repo.Create(artist); err != nil {
		s.logger.WithError(err).WithField(log.FldName, artist.Name).Error("Failed to create artist")
		return nil, translateRepoError(err, ErrCodeArtistNotFound, fmt.Sprintf("Artist '%s'", artist.Name))
	}
	s.logger.WithFields(logrus.Fields{log.FldID: artist.ID, log.FldName: artist.Name}).Info("Artist created")
	return artist, nil
}

// Update overwrites all editable fields of an existing artist
func (s *artistService) Update(ctx context.Context, artist *models.Artist) error {
	original, err := s.Get(ctx, artist.ID)
	if err != nil {
		return err
	}
	artist.Name = strings.TrimSpace(artist.Name)
	artist.CreatedAt = original.CreatedAt
	if err := s.repo.Update(artist); err != nil {
		s.logger.WithError(err).WithField(log.FldID, artist.ID).Error("Failed to update artist")
		return translateRepoError(err, ErrCodeArtistNotFound, artistWhat(artist.ID))
	}
	return nil
}
