package internal

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// VenueService provides service functions for working with venues
type VenueService interface {
	// Recent returns the summaries of the most recently created venues
	Recent(ctx context.Context, limit uint) ([]models.EntitySummary, error)
	// ListByLocation returns all venues grouped by the city and state they are located in
	ListByLocation(ctx context.Context) ([]models.LocationGroup, error)
	// Search searches for venues having the given term in their name
	Search(ctx context.Context, term string) (*models.SearchResult, error)
	// Detail returns the venue with the given ID together with its past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.VenueDetail, error)
	// Get returns the venue with the given ID
	Get(ctx context.Context, id uint) (*models.Venue, error)
	// Create creates a new venue
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	// Update overwrites all editable fields of an existing venue
	Update(ctx context.Context, venue *models.Venue) error
	// Delete removes a venue and its shows, returning the venue that has been deleted
	Delete(ctx context.Context, id uint) (*models.Venue, error)
}

// -- VenueService implementation --------------------------------------------------------------------------------------

type venueService struct {
	repo   repos.VenueRepo
	shows  repos.ShowRepo
	now    Clock
	logger *logrus.Entry
}

// NewVenueService creates a new venue service instance
func NewVenueService(repo repos.VenueRepo, shows repos.ShowRepo, now Clock, logger *logrus.Entry) VenueService {
	return &venueService{
		repo:   repo,
		shows:  shows,
		now:    now,
		logger: logger,
	}
}

func venueWhat(id uint) string {
	return fmt.Sprintf("Venue #%d", id)
}

// Recent returns the summaries of the most recently created venues
func (s *venueService) Recent(ctx context.Context, limit uint) ([]models.EntitySummary, error) {
	venues, err := s.repo.Recent(limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load recent venues")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, "Venues")
	}
	ret := make([]models.EntitySummary, 0, len(venues))
	for _, v := range venues {
		ret = append(ret, models.EntitySummary{ID: v.ID, Name: v.Name})
	}
	return ret, nil
}

// ListByLocation returns all venues grouped by the city and state they are located in. Every (city, state) pair
// appears exactly once. The show count of each venue is the total number of its shows.
func (s *venueService) ListByLocation(ctx context.Context) ([]models.LocationGroup, error) {
	venues, err := s.repo.List()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list venues")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, "Venues")
	}
	counts, err := s.shows.CountByVenue()
	if err != nil {
		s.logger.WithError(err).Error("Failed to count shows of venues")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, "Shows")
	}
	groups := map[models.Location]*models.LocationGroup{}
	for _, v := range venues {
		loc := v.Location()
		group, ok := groups[loc]
		if !ok {
			group = &models.LocationGroup{Location: loc}
			groups[loc] = group
		}
		group.Venues = append(group.Venues, models.EntitySummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	ret := make([]models.LocationGroup, 0, len(groups))
	for _, group := range groups {
		ret = append(ret, *group)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].City != ret[j].City {
			return ret[i].City < ret[j].City
		}
		return ret[i].State < ret[j].State
	})
	return ret, nil
}

// Search searches for venues having the given term anywhere in their name, ignoring case
func (s *venueService) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	s.logger.WithField(log.FldSearch, term).Debug("Searching venues")
	venues, err := s.repo.List()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list venues for search")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, "Venues")
	}
	matcher := newNameMatcher(term)
	now := s.now()
	res := &models.SearchResult{Data: []models.EntitySummary{}}
	for _, v := range venues {
		if !matcher.Matches(v.Name) {
			continue
		}
		shows, err := s.shows.ByVenue(v.ID)
		if err != nil {
			s.logger.WithError(err).WithField(log.FldID, v.ID).Error("Failed to load shows of venue")
			return nil, translateRepoError(err, ErrCodeVenueNotFound, venueWhat(v.ID))
		}
		res.Data = append(res.Data, models.EntitySummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: countUpcoming(shows, now),
		})
	}
	res.Count = len(res.Data)
	return res, nil
}

// Detail returns the venue with the given ID together with its past and upcoming shows
func (s *venueService) Detail(ctx context.Context, id uint) (*models.VenueDetail, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ByVenue(id)
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to load shows of venue")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, venueWhat(id))
	}
	return &models.VenueDetail{
		Venue:     *venue,
		ShowSplit: splitShows(shows, s.now()),
	}, nil
}

// Get returns the venue with the given ID
func (s *venueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Warn("Failed to load venue")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, venueWhat(id))
	}
	return venue, nil
}

// Create creates a new venue
func (s *venueService) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	venue.Name = strings.TrimSpace(venue.Name)
	if err := s.repo.Create(venue); err != nil {
		s.logger.WithError(err).WithField(log.FldName, venue.Name).Error("Failed to create venue")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, fmt.Sprintf("Venue '%s'", venue.Name))
	}
	s.logger.WithFields(logrus.Fields{log.FldID: venue.ID, log.FldName: venue.Name}).Info("Venue created")
	return venue, nil
}

// Update overwrites all editable fields of an existing venue. Fields not set inside the given venue are cleared.
func (s *venueService) Update(ctx context.Context, venue *models.Venue) error {
	original, err := s.Get(ctx, venue.ID)
	if err != nil {
		return err
	}
	venue.Name = strings.TrimSpace(venue.Name)
	venue.CreatedAt = original.CreatedAt
	if err := s.repo.Update(venue); err != nil {
		s.logger.WithError(err).WithField(log.FldID, venue.ID).Error("Failed to update venue")
		return translateRepoError(err, ErrCodeVenueNotFound, venueWhat(venue.ID))
	}
	return nil
}

// Delete removes a venue and its shows
func (s *venueService) Delete(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.WithError(err).WithField(log.FldID, id).Error("Failed to delete venue")
		return nil, translateRepoError(err, ErrCodeVenueNotFound, venueWhat(id))
	}
	s.logger.WithFields(logrus.Fields{log.FldID: id, log.FldName: venue.Name}).Info("Venue deleted")
	return venue, nil
}
