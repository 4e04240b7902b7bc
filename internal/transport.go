package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/flash"
	"github.com/derWhity/fyyur/internal/forms"
	"github.com/derWhity/fyyur/internal/log"
)

const (
	// ErrCodeInvalidID is returned when the ID inside the path cannot be used
	ErrCodeInvalidID = "INVALID_ID"
	// ErrCodeInvalidForm is returned when the submitted form cannot be parsed
	ErrCodeInvalidForm = "INVALID_FORM"
)

// Defines an error that defines the HTTP status that should be returned
type httpStatuser interface {
	Status() int
}

// MakeHTTPHandler creates the main HTTP handler for the Fyyur service. Files inside staticDir are served below
// /static/
func MakeHTTPHandler(
	vs VenueService,
	as ArtistService,
	ss ShowService,
	staticDir string,
	logger *logrus.Entry,
) (http.Handler, error) {
	rnd, err := newRenderer()
	if err != nil {
		return nil, err
	}
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(makeErrorEncoder(rnd)),
		httptransport.ServerBefore(makeContextInjector(logger)),
		httptransport.ServerBefore(decodeFlashNotice),
	}
	encodeResponse := makeResponseEncoder(rnd)
	handle := func(method, path string, ep endpoint.Endpoint, dec httptransport.DecodeRequestFunc) {
		r.Methods(method).Path(path).Handler(httptransport.NewServer(ep, dec, encodeResponse, options...))
	}

	// Home
	handle(http.MethodGet, "/", RecoverToHome(MakeHomeEndpoint(vs, as)), decodeNilRequest)

	// -- Venues ---------------------------------------
	{
		vEp := MakeVenueEndpoints(vs)
		handle(http.MethodGet, "/venues", vEp.List, decodeNilRequest)
		handle(http.MethodPost, "/venues/search", vEp.Search, decodeSearchRequest)
		handle(http.MethodGet, "/venues/create", vEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/venues/create", vEp.Create, decodeVenueForm)
		handle(http.MethodGet, "/venues/{id:[0-9]+}", vEp.Detail, decodeIDFromPath)
		handle(http.MethodGet, "/venues/{id:[0-9]+}/edit", vEp.EditForm, decodeIDFromPath)
		handle(http.MethodPost, "/venues/{id:[0-9]+}/edit", vEp.Update, decodeVenueUpdate)
		handle(http.MethodGet, "/venues/{id:[0-9]+}/delete", vEp.Delete, decodeVenueDelete)
	}

	// -- Artists --------------------------------------
	{
		aEp := MakeArtistEndpoints(as)
		handle(http.MethodGet, "/artists", aEp.List, decodeNilRequest)
		handle(http.MethodPost, "/artists/search", aEp.Search, decodeSearchRequest)
		handle(http.MethodGet, "/artists/create", aEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/artists/create", aEp.Create, decodeArtistForm)
		handle(http.MethodGet, "/artists/{id:[0-9]+}", aEp.Detail, decodeIDFromPath)
		handle(http.MethodGet, "/artists/{id:[0-9]+}/edit", aEp.EditForm, decodeIDFromPath)
		handle(http.MethodPost, "/artists/{id:[0-9]+}/edit", aEp.Update, decodeArtistUpdate)
	}

	// -- Shows ----------------------------------------
	{
		sEp := MakeShowEndpoints(ss)
		handle(http.MethodGet, "/shows", sEp.List, decodeNilRequest)
		handle(http.MethodGet, "/shows/create", sEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/shows/create", sEp.Create, decodeShowForm)
	}

	// Simple alive answer for checking if HTTP can be reached
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		data := map[string]bool{"ok": true}
		json.NewEncoder(w).Encode(data)
	})

	// Stylesheets and images
	r.Methods(http.MethodGet).PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))),
	)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logger.WithField(log.FldPath, req.URL.Path).Debug("No route found")
		writePage(w, rnd, tplNotFound, http.StatusNotFound, view{}, logger)
	})

	return r, nil
}

// decodeNilRequest just does nothing with the request. It is used for endpoints that don't need anything to be passed
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// getUintFromPath is a helper function that gets a uint from the given path variable
func getUintFromPath(varname string, r *http.Request) (uint, error) {
	errmsg := fmt.Sprintf("Value for '%s' is no valid ID", varname)
	str, ok := mux.Vars(r)[varname]
	if !ok {
		return 0, MakeError(http.StatusNotFound, ErrCodeInvalidID, errmsg)
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil || id == 0 {
		return 0, MakeError(http.StatusNotFound, ErrCodeInvalidID, errmsg)
	}
	return uint(id), nil
}

// Decodes an ID from the "id" path variable provided by GoRilla
func decodeIDFromPath(_ context.Context, r *http.Request) (interface{}, error) {
	return getUintFromPath("id", r)
}

// Decodes the venue to delete. An unusable ID is passed on as 0, so the endpoint can report the failure
func decodeVenueDelete(_ context.Context, r *http.Request) (interface{}, error) {
	req := venueDeleteRequest{RawID: mux.Vars(r)["id"]}
	if id, err := getUintFromPath("id", r); err == nil {
		req.ID = id
	}
	return req, nil
}

// parseForm reads the submitted form body
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return MakeErrorWithData(http.StatusBadRequest, ErrCodeInvalidForm, "The submitted form cannot be read", err)
	}
	return nil
}

// Decodes the search term from the submitted search form
func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return searchRequest{Term: r.PostForm.Get("search_term")}, nil
}

// Decodes a venue creation form. The form is validated by the endpoint
func decodeVenueForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return forms.DecodeVenue(r.PostForm), nil
}

// Decodes a venue edit form together with the venue ID from the path
func decodeVenueUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return venueUpdateRequest{ID: id, Form: forms.DecodeVenue(r.PostForm)}, nil
}

// Decodes an artist creation form
func decodeArtistForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return forms.DecodeArtist(r.PostForm), nil
}

// Decodes an artist edit form together with the artist ID from the path
func decodeArtistUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return artistUpdateRequest{ID: id, Form: forms.DecodeArtist(r.PostForm)}, nil
}

// Decodes a show creation form
func decodeShowForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return forms.DecodeShow(r.PostForm), nil
}

// writePage renders a page and writes it with the given status. If rendering fails, a plain error is sent instead
func writePage(w http.ResponseWriter, rnd *renderer, name string, status int, v view, logger *logrus.Entry) {
	doc, err := rnd.Render(name, v)
	if err != nil {
		logger.WithError(err).Error("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(doc)
}

// makeResponseEncoder returns the encoder writing pages and redirects
func makeResponseEncoder(rnd *renderer) httptransport.EncodeResponseFunc {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		switch resp := response.(type) {
		case redirectResponse:
			flash.Write(w, nil, resp.Notice)
			w.Header().Set("Location", resp.Location)
			w.WriteHeader(http.StatusFound)
		case pageResponse:
			v := view{Data: resp.Data}
			if sent := ctxhelper.Notice(ctx); sent != nil {
				flash.Clear(w, nil)
				v.Notices = append(v.Notices, sent)
			}
			if resp.Notice != nil {
				v.Notices = append(v.Notices, resp.Notice)
			}
			status := resp.Status
			if status == 0 {
				status = http.StatusOK
			}
			writePage(w, rnd, resp.Template, status, v, ctxhelper.Logger(ctx))
		default:
			return fmt.Errorf("Cannot encode response of type %T", response)
		}
		return nil
	}
}

// makeErrorEncoder returns the encoder rendering the error pages for the incoming error
func makeErrorEncoder(rnd *renderer) httptransport.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if err == nil {
			panic("encodeError with nil error")
		}
		status := http.StatusInternalServerError
		if st, ok := err.(httpStatuser); ok {
			status = st.Status()
		}
		logger := ctxhelper.Logger(ctx)
		code := ErrorCodeOf(err)
		logger.WithError(err).WithField(log.FldCode, code).Warn("Request has failed")
		if code == ErrCodeInvalidForm {
			flash.Write(w, nil, flash.Error("An error occurred. The submitted form could not be read."))
			w.Header().Set("Location", "/")
			w.WriteHeader(http.StatusFound)
			return
		}
		name := tplServerError
		if status == http.StatusNotFound {
			name = tplNotFound
		}
		writePage(w, rnd, name, status, view{}, logger)
	}
}

// makeContextInjector returns a function that stores the request logger inside the context
func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		return ctxhelper.WithLogger(ctx, logger.WithFields(logrus.Fields{
			log.FldMethod: r.Method,
			log.FldPath:   r.URL.Path,
		}))
	}
}

// decodeFlashNotice moves the notice sent with the request into the context
func decodeFlashNotice(ctx context.Context, r *http.Request) context.Context {
	if notice, ok := flash.Read(r); ok {
		return ctxhelper.WithNotice(ctx, notice)
	}
	return ctx
}
