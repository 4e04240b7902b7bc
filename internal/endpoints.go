package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-kit/kit/endpoint"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/flash"
	"github.com/derWhity/fyyur/internal/forms"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

// Number of artists and venues shown on the home page
const recentLimit = 10

// Template names used by the endpoints
const (
	tplHome          = "home"
	tplVenues        = "venues"
	tplSearchVenues  = "search_venues"
	tplShowVenue     = "show_venue"
	tplNewVenue      = "new_venue"
	tplEditVenue     = "edit_venue"
	tplArtists       = "artists"
	tplSearchArtists = "search_artists"
	tplShowArtist    = "show_artist"
	tplNewArtist     = "new_artist"
	tplEditArtist    = "edit_artist"
	tplShows         = "shows"
	tplNewShow       = "new_show"
	tplNotFound      = "404"
	tplServerError   = "500"
)

// VenueEndpoints is a collection of endpoints to the venue service
type VenueEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Detail     endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ArtistEndpoints is a collection of endpoints to the artist service
type ArtistEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Detail     endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
}

// ShowEndpoints is a collection of endpoints to the show service
type ShowEndpoints struct {
	List       endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
}

// pageResponse is rendered as an HTML page using the named template
type pageResponse struct {
	Template string
	Status   int
	Data     interface{}
	// Notice shown on this page in addition to the one sent with the request
	Notice *flash.Notice
}

// redirectResponse sends the client to another location, carrying the notice inside the flash cookie
type redirectResponse struct {
	Location string
	Notice   *flash.Notice
}

// Data of the search result pages
type searchPage struct {
	Results    *models.SearchResult
	SearchTerm string
}

// Data of the form pages
type formPage struct {
	// ID of the edited entity - zero on creation forms
	ID     uint
	Form   interface{}
	States []string
}

func page(template string, data interface{}) pageResponse {
	return pageResponse{Template: template, Status: http.StatusOK, Data: data}
}

func pageWithError(template string, data interface{}, message string) pageResponse {
	resp := page(template, data)
	resp.Notice = flash.Error(message)
	return resp
}

func redirectHome(notice *flash.Notice) redirectResponse {
	return redirectResponse{Location: "/", Notice: notice}
}

func newFormPage(id uint, form interface{}) formPage {
	return formPage{ID: id, Form: form, States: forms.States()}
}

// -- Home -------------------------------------------------------------------------------------------------------------

// MakeHomeEndpoint returns an endpoint listing the most recently created artists and venues
func MakeHomeEndpoint(vs VenueService, as ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		logger := ctxhelper.Logger(ctx)
		data := models.RecentListings{Artists: []models.EntitySummary{}, Venues: []models.EntitySummary{}}
		artists, err := as.Recent(ctx, recentLimit)
		if err == nil {
			var venues []models.EntitySummary
			if venues, err = vs.Recent(ctx, recentLimit); err == nil {
				data.Artists, data.Venues = artists, venues
				return page(tplHome, data), nil
			}
		}
		logger.WithError(err).Error("Failed to load the recent listings")
		return pageWithError(tplHome, data, "Failed to fetch data. The database might not be running"), nil
	}
}

// -- Venues -----------------------------------------------------------------------------------------------------------

// MakeVenueEndpoints creates the endpoints needed to use the venue service
func MakeVenueEndpoints(s VenueService) VenueEndpoints {
	return VenueEndpoints{
		List:       RecoverToHome(MakeListVenuesEndpoint(s)),
		Search:     RecoverToHome(MakeSearchVenuesEndpoint(s)),
		Detail:     RecoverToHome(MakeVenueDetailEndpoint(s)),
		CreateForm: RecoverToHome(MakeFormEndpoint(tplNewVenue, forms.VenueForm{})),
		Create:     RecoverToHome(MakeCreateVenueEndpoint(s)),
		EditForm:   RecoverToHome(MakeEditVenueFormEndpoint(s)),
		Update:     RecoverToHome(MakeUpdateVenueEndpoint(s)),
		Delete:     RecoverToHome(MakeDeleteVenueEndpoint(s)),
	}
}

// MakeListVenuesEndpoint returns an endpoint listing all venues grouped by location
func MakeListVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		groups, err := s.ListByLocation(ctx)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to list venues")
			return pageWithError(tplVenues, []models.LocationGroup{},
				"Could not fetch venues, the database might not be running.",
			), nil
		}
		return page(tplVenues, groups), nil
	}
}

// MakeSearchVenuesEndpoint returns an endpoint searching venues by name
func MakeSearchVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(searchRequest)
		res, err := s.Search(ctx, req.Term)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldSearch, req.Term).Error("Venue search has failed")
			return pageWithError(tplSearchVenues,
				searchPage{&models.SearchResult{Data: []models.EntitySummary{}}, req.Term},
				"Could not search venues, the database might not be running.",
			), nil
		}
		return page(tplSearchVenues, searchPage{res, req.Term}), nil
	}
}

// MakeVenueDetailEndpoint returns an endpoint showing a venue with its shows
func MakeVenueDetailEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(uint)
		detail, err := s.Detail(ctx, id)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldID, id).Error("Failed to load venue details")
			return redirectHome(flash.Error(fmt.Sprintf(
				"Could not fetch the venue, the database might not be running or a venue with the id %d doesn't exist.",
				id,
			))), nil
		}
		return page(tplShowVenue, detail), nil
	}
}

// MakeCreateVenueEndpoint returns an endpoint creating a venue from a submitted form
func MakeCreateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form := request.(forms.VenueForm)
		logger := ctxhelper.Logger(ctx).WithField(log.FldName, form.Name)
		failed := flash.Error(fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
		if err := form.Validate(); err != nil {
			logger.WithError(err).Warn("Invalid venue form submitted")
			return redirectHome(failed), nil
		}
		venue, err := s.Create(ctx, form.ToModel(0))
		if err != nil {
			logger.WithError(err).Error("Failed to create venue")
			return redirectHome(failed), nil
		}
		return redirectHome(flash.Success(fmt.Sprintf("Venue %s was successfully listed!", venue.Name))), nil
	}
}

// MakeEditVenueFormEndpoint returns an endpoint rendering the edit form of a venue prefilled with its data
func MakeEditVenueFormEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(uint)
		venue, err := s.Get(ctx, id)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldID, id).Error("Failed to load venue for editing")
			return redirectHome(flash.Error(fmt.Sprintf(
				"Cannot edit the venue with the id : %d. The database might not be running or such a venue doesn't exist.",
				id,
			))), nil
		}
		return page(tplEditVenue, newFormPage(id, forms.VenueFormFrom(venue))), nil
	}
}

// MakeUpdateVenueEndpoint returns an endpoint overwriting a venue with a submitted form
func MakeUpdateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(venueUpdateRequest)
		logger := ctxhelper.Logger(ctx).WithField(log.FldID, req.ID)
		failed := flash.Error(fmt.Sprintf("Could not update the venue %s", req.Form.Name))
		if err := req.Form.Validate(); err != nil {
			logger.WithError(err).Warn("Invalid venue form submitted")
			return redirectHome(failed), nil
		}
		if err := s.Update(ctx, req.Form.ToModel(req.ID)); err != nil {
			logger.WithError(err).Error("Failed to update venue")
			return redirectHome(failed), nil
		}
		return redirectResponse{Location: fmt.Sprintf("/venues/%d", req.ID)}, nil
	}
}

// MakeDeleteVenueEndpoint returns an endpoint deleting a venue together with its shows
func MakeDeleteVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(venueDeleteRequest)
		logger := ctxhelper.Logger(ctx).WithField(log.FldID, req.RawID)
		failed := flash.Error(fmt.Sprintf("An error occurred. Could not delete the venue with the id : %s", req.RawID))
		if req.ID == 0 {
			logger.Warn("Cannot delete venue with an invalid ID")
			return redirectHome(failed), nil
		}
		venue, err := s.Delete(ctx, req.ID)
		if err != nil {
			logger.WithError(err).Error("Failed to delete venue")
			return redirectHome(failed), nil
		}
		return redirectHome(flash.Success(fmt.Sprintf(
			"The venue %s has been deleted from the database", venue.Name,
		))), nil
	}
}

// -- Artists ----------------------------------------------------------------------------------------------------------

// MakeArtistEndpoints creates the endpoints needed to use the artist service
func MakeArtistEndpoints(s ArtistService) ArtistEndpoints {
	return ArtistEndpoints{
		List:       RecoverToHome(MakeListArtistsEndpoint(s)),
		Search:     RecoverToHome(MakeSearchArtistsEndpoint(s)),
		Detail:     RecoverToHome(MakeArtistDetailEndpoint(s)),
		CreateForm: RecoverToHome(MakeFormEndpoint(tplNewArtist, forms.ArtistForm{})),
		Create:     RecoverToHome(MakeCreateArtistEndpoint(s)),
		EditForm:   RecoverToHome(MakeEditArtistFormEndpoint(s)),
		Update:     RecoverToHome(MakeUpdateArtistEndpoint(s)),
	}
}

// MakeListArtistsEndpoint returns an endpoint listing all artists
func MakeListArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artists, err := s.List(ctx)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to list artists")
			return pageWithError(tplArtists, []models.EntitySummary{},
				"Could not fetch artists, the database might not be running.",
			), nil
		}
		return page(tplArtists, artists), nil
	}
}

// MakeSearchArtistsEndpoint returns an endpoint searching artists by name
func MakeSearchArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(searchRequest)
		res, err := s.Search(ctx, req.Term)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldSearch, req.Term).Error("Artist search has failed")
			return pageWithError(tplSearchArtists,
				searchPage{&models.SearchResult{Data: []models.EntitySummary{}}, req.Term},
				"Could not search artists, the database might not be running.",
			), nil
		}
		return page(tplSearchArtists, searchPage{res, req.Term}), nil
	}
}

// MakeArtistDetailEndpoint returns an endpoint showing an artist with the shows played
func MakeArtistDetailEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(uint)
		detail, err := s.Detail(ctx, id)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldID, id).Error("Failed to load artist details")
			return redirectHome(flash.Error(fmt.Sprintf(
				"Could not fetch the artist, the database might not be running or an artist with the id %d doesn't exist.",
				id,
			))), nil
		}
		return page(tplShowArtist, detail), nil
	}
}

// MakeCreateArtistEndpoint returns an endpoint creating an artist from a submitted form
func MakeCreateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form := request.(forms.ArtistForm)
		logger := ctxhelper.Logger(ctx).WithField(log.FldName, form.Name)
		failed := flash.Error(fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		if err := form.Validate(); err != nil {
			logger.WithError(err).Warn("Invalid artist form submitted")
			return redirectHome(failed), nil
		}
		artist, err := s.Create(ctx, form.ToModel(0))
		if err != nil {
			logger.WithError(err).Error("Failed to create artist")
			return redirectHome(failed), nil
		}
		return redirectHome(flash.Success(fmt.Sprintf("Artist %s was successfully listed!", artist.Name))), nil
	}
}

// MakeEditArtistFormEndpoint returns an endpoint rendering the edit form of an artist prefilled with its data
func MakeEditArtistFormEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(uint)
		artist, err := s.Get(ctx, id)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).WithField(log.FldID, id).Error("Failed to load artist for editing")
			return redirectHome(flash.Error(fmt.Sprintf(
				"Cannot edit the artist with the id : %d. The database might not be running or such an artist doesn't exist.",
				id,
			))), nil
		}
		return page(tplEditArtist, newFormPage(id, forms.ArtistFormFrom(artist))), nil
	}
}

// MakeUpdateArtistEndpoint returns an endpoint overwriting an artist with a submitted form
func MakeUpdateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(artistUpdateRequest)
		logger := ctxhelper.Logger(ctx).WithField(log.FldID, req.ID)
		failed := flash.Error(fmt.Sprintf("Failed to update the artist %s", req.Form.Name))
		if err := req.Form.Validate(); err != nil {
			logger.WithError(err).Warn("Invalid artist form submitted")
			return redirectHome(failed), nil
		}
		if err := s.Update(ctx, req.Form.ToModel(req.ID)); err != nil {
			logger.WithError(err).Error("Failed to update artist")
			return redirectHome(failed), nil
		}
		return redirectResponse{Location: fmt.Sprintf("/artists/%d", req.ID)}, nil
	}
}

// -- Shows ------------------------------------------------------------------------------------------------------------

// MakeShowEndpoints creates the endpoints needed to use the show service
func MakeShowEndpoints(s ShowService) ShowEndpoints {
	return ShowEndpoints{
		List:       RecoverToHome(MakeListShowsEndpoint(s)),
		CreateForm: RecoverToHome(MakeFormEndpoint(tplNewShow, forms.ShowForm{})),
		Create:     RecoverToHome(MakeCreateShowEndpoint(s)),
	}
}

// MakeListShowsEndpoint returns an endpoint listing all shows
func MakeListShowsEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		shows, err := s.List(ctx)
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to list shows")
			return pageWithError(tplShows, []models.ShowListing{},
				"Could not fetch shows, the database might not be running.",
			), nil
		}
		return page(tplShows, shows), nil
	}
}

// MakeCreateShowEndpoint returns an endpoint creating a show from a submitted form
func MakeCreateShowEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form := request.(forms.ShowForm)
		logger := ctxhelper.Logger(ctx)
		failed := flash.Error(
			"An error occurred. Show could not be listed. This might be due to invalid IDs of Artist or Venue",
		)
		if err := form.Validate(); err != nil {
			logger.WithError(err).Warn("Invalid show form submitted")
			return redirectHome(failed), nil
		}
		show, err := form.ToModel()
		if err != nil {
			logger.WithError(err).Warn("Invalid show form submitted")
			return redirectHome(failed), nil
		}
		if _, err := s.Create(ctx, show); err != nil {
			logger.WithError(err).WithField(log.FldCode, ErrorCodeOf(err)).Error("Failed to create show")
			return redirectHome(failed), nil
		}
		return redirectHome(flash.Success("Show was successfully listed!")), nil
	}
}

// -- Forms ------------------------------------------------------------------------------------------------------------

// MakeFormEndpoint returns an endpoint rendering an empty creation form
func MakeFormEndpoint(template string, form interface{}) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return page(template, newFormPage(0, form)), nil
	}
}
