package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
)

// Defines an error that defines the HTTP status that should be returned
type httpStatuser interface {
	Status() int
}

// Defines an error that returns a machine-readable error code
type errorCoder interface {
	ErrorCode() string
}

// Defines an error that contains a data field with additional information
type dataBearer interface {
	Data() interface{}
}

type errorResponse struct {
	basicResponse
	// The error code
	Error   string      `json:"error"`
	Message string      `json:"errorMessage"`
	Details interface{} `json:"errorDetails,omitempty"`
}

// HandlerOptions holds the settings the HTTP handler needs from the application's configuration
type HandlerOptions struct {
	// The location show times are read and displayed in
	Location *time.Location
	// Maximum duration of an endpoint call - zero disables the bound
	Timeout time.Duration
}

// MakeHTTPHandler creates the main HTTP handler for the Fyyur service
func MakeHTTPHandler(
	vs VenueService,
	as ArtistService,
	ss ShowService,
	opts HandlerOptions,
	logger *logrus.Entry,
) http.Handler {
	r := mux.NewRouter()
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerBefore(makeContextInjector(logger)),
	}
	// Every endpoint is logged and bounded by the request timeout
	wrap := func(name string, ep endpoint.Endpoint) endpoint.Endpoint {
		return endpoint.Chain(LogCalls(name), WithTimeout(opts.Timeout))(ep)
	}
	handle := func(method, path, name string, ep endpoint.Endpoint, dec httptransport.DecodeRequestFunc) {
		r.Methods(method).Path(path).Handler(httptransport.NewServer(
			wrap(name, ep),
			dec,
			encodeJSONResponse,
			options...,
		))
	}

	handle(http.MethodGet, "/", "Home", MakeHomeEndpoint(), decodeNilRequest)

	// -- Venue service --------------------------------
	{
		vEp := MakeVenueEndpoints(vs, loc)

		handle(http.MethodGet, "/venues", "ListVenues", vEp.List, decodeNilRequest)
		handle(http.MethodPost, "/venues/search", "SearchVenues", vEp.Search, decodeSearchForm)
		handle(http.MethodGet, "/venues/create", "VenueCreateForm", vEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/venues/create", "CreateVenue", vEp.Create, decodeVenueForm)
		handle(http.MethodGet, "/venues/{id:[0-9]+}", "GetVenue", vEp.Get, decodeIDFromPath)
		handle(http.MethodDelete, "/venues/{id:[0-9]+}", "DeleteVenue", vEp.Delete, decodeIDFromPath)
		handle(http.MethodGet, "/venues/{id:[0-9]+}/edit", "VenueEditForm", vEp.EditForm, decodeIDFromPath)
		handle(http.MethodPost, "/venues/{id:[0-9]+}/edit", "UpdateVenue", vEp.Update, decodeVenueUpdate)
	}

	// -- Artist service -------------------------------
	{
		aEp := MakeArtistEndpoints(as, loc)

		handle(http.MethodGet, "/artists", "ListArtists", aEp.List, decodeNilRequest)
		handle(http.MethodPost, "/artists/search", "SearchArtists", aEp.Search, decodeSearchForm)
		handle(http.MethodGet, "/artists/create", "ArtistCreateForm", aEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/artists/create", "CreateArtist", aEp.Create, decodeArtistForm)
		handle(http.MethodGet, "/artists/{id:[0-9]+}", "GetArtist", aEp.Get, decodeIDFromPath)
		handle(http.MethodDelete, "/artists/{id:[0-9]+}", "DeleteArtist", aEp.Delete, decodeIDFromPath)
		handle(http.MethodGet, "/artists/{id:[0-9]+}/edit", "ArtistEditForm", aEp.EditForm, decodeIDFromPath)
		handle(http.MethodPost, "/artists/{id:[0-9]+}/edit", "UpdateArtist", aEp.Update, decodeArtistUpdate)
	}

	// -- Show service ---------------------------------
	{
		sEp := MakeShowEndpoints(ss, loc)

		handle(http.MethodGet, "/shows", "ListShows", sEp.List, decodeNilRequest)
		handle(http.MethodGet, "/shows/create", "ShowCreateForm", sEp.CreateForm, decodeNilRequest)
		handle(http.MethodPost, "/shows/create", "CreateShow", sEp.Create, makeShowFormDecoder(loc))
	}

	// Simple alive answer for checking if HTTP can be reached
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		data := map[string]bool{"ok": true}
		json.NewEncoder(w).Encode(data)
	})

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		encodeError(req.Context(), ErrRouteNotFound, w)
	})

	return recoverPanics(r, logger)
}

// recoverPanics turns a panic inside a handler into a 500 response instead of a dropped connection
func recoverPanics(next http.Handler, logger *logrus.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithField(log.FldPath, r.URL.Path).Errorf("Recovered from panic: %v", rec)
				encodeError(r.Context(), fmt.Errorf("internal server error"), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// decodeNilRequest just does nothing with the request. It is used for endpoints that don't need anything to be passed
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// getUintFromPath is a helper function that gets a uint from the given path variable
func getUintFromPath(varname string, r *http.Request) (uint, error) {
	errmsg := fmt.Sprintf("Value for '%s' is no valid unsigned integer", varname)
	vars := mux.Vars(r)
	str, ok := vars[varname]
	if !ok {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	return uint(id), nil
}

// Decodes an ID from the "id" path variable provided by GoRilla
func decodeIDFromPath(ctx context.Context, r *http.Request) (interface{}, error) {
	return getUintFromPath("id", r)
}

// parseForm parses the submitted form data of the request
func parseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(1 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return MakeError(
			http.StatusBadRequest,
			ErrCodeIllegalForm,
			fmt.Sprintf("Failed to decode form data: %v", err),
		)
	}
	return nil
}

// checkbox reads a form checkbox that is sent as "y" when checked and left out otherwise
func checkbox(r *http.Request, name string) bool {
	vals, ok := r.Form[name]
	return ok && len(vals) > 0 && vals[0] == "y"
}

// decodeSearchForm reads the "search_term" form field - a missing or blank term searches for everything.
// Other terms are passed on as submitted, including surrounding spaces
func decodeSearchForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	term := r.Form.Get("search_term")
	if strings.TrimSpace(term) == "" {
		term = ""
	}
	return Search{Search: term}, nil
}

// decodeVenueForm reads a submitted venue form
func decodeVenueForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return VenueForm{
		Name:          r.Form.Get("name"),
		City:          r.Form.Get("city"),
		State:         r.Form.Get("state"),
		Address:       r.Form.Get("address"),
		Phone:         r.Form.Get("phone"),
		ImageLink:     r.Form.Get("image_link"),
		FacebookLink:  r.Form.Get("facebook_link"),
		Website:       r.Form.Get("website"),
		Genres:        r.Form["genres"],
		SeekingTalent: checkbox(r, "seeking_talent"),
		Description:   r.Form.Get("description"),
	}, nil
}

// decodeArtistForm reads a submitted artist form
func decodeArtistForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return ArtistForm{
		Name:         r.Form.Get("name"),
		City:         r.Form.Get("city"),
		State:        r.Form.Get("state"),
		Phone:        r.Form.Get("phone"),
		ImageLink:    r.Form.Get("image_link"),
		FacebookLink: r.Form.Get("facebook_link"),
		Website:      r.Form.Get("website"),
		Genres:       r.Form["genres"],
		SeekingVenue: checkbox(r, "seeking_venue"),
		Description:  r.Form.Get("description"),
	}, nil
}

// Decodes a venue form from an edit request where the ID of the venue is in the path
func decodeVenueUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	form, err := decodeVenueForm(ctx, r)
	if err != nil {
		return nil, err
	}
	return updateRequest{ID: id, Form: form}, nil
}

// Decodes an artist form from an edit request where the ID of the artist is in the path
func decodeArtistUpdate(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	form, err := decodeArtistForm(ctx, r)
	if err != nil {
		return nil, err
	}
	return updateRequest{ID: id, Form: form}, nil
}

// getUintFromForm reads a required unsigned integer from the submitted form
func getUintFromForm(r *http.Request, name string) (uint, error) {
	str := strings.TrimSpace(r.Form.Get(name))
	if str == "" {
		return 0, MakeErrorWithData(http.StatusBadRequest, ErrCodeRequiredFieldMissing,
			fmt.Sprintf("Field '%s' is required", name), map[string]string{"field": name},
		)
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint,
			fmt.Sprintf("Value for '%s' is no valid unsigned integer", name),
		)
	}
	return uint(id), nil
}

// makeShowFormDecoder returns a decoder for the show form that reads start times without offset in loc
func makeShowFormDecoder(loc *time.Location) httptransport.DecodeRequestFunc {
	return func(_ context.Context, r *http.Request) (interface{}, error) {
		if err := parseForm(r); err != nil {
			return nil, err
		}
		var form ShowForm
		var err error
		if form.VenueID, err = getUintFromForm(r, "venue_id"); err != nil {
			return nil, err
		}
		if form.ArtistID, err = getUintFromForm(r, "artist_id"); err != nil {
			return nil, err
		}
		raw := r.Form.Get("start_time")
		if strings.TrimSpace(raw) == "" {
			return nil, MakeErrorWithData(http.StatusBadRequest, ErrCodeRequiredFieldMissing,
				"Field 'start_time' is required", map[string]string{"field": "start_time"},
			)
		}
		if form.StartTime, err = ParseStartTime(raw, loc); err != nil {
			return nil, MakeErrorWithData(http.StatusBadRequest, ErrCodeIllegalValue, err.Error(),
				map[string]string{"field": "start_time"},
			)
		}
		return form, nil
	}
}

// Encodes a typical JSON response - or an empty one for endpoints without a body
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if _, ok := response.(noContent); ok {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// Builds an error response based on the incoming error
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if st, ok := err.(httpStatuser); ok {
		w.WriteHeader(st.Status())
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	ret := errorResponse{
		basicResponse: basicResponse{OK: false},
		Message:       err.Error(),
		Error:         ErrCodeUnknown,
	}
	if cd, ok := err.(errorCoder); ok {
		ret.Error = cd.ErrorCode()
	}
	if db, ok := err.(dataBearer); ok {
		if data := db.Data(); data != nil {
			if err, ok := data.(error); ok {
				ret.Details = err.Error()
			} else {
				ret.Details = data
			}
		}
	}
	json.NewEncoder(w).Encode(&ret)
}

var portSuffix = regexp.MustCompile(":[0-9]+$")

// makeContextInjector returns a function placing a request-scoped logger inside the context of every call
func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip = portSuffix.ReplaceAllString(r.RemoteAddr, "")
		}
		return ctxhelper.WithLogger(ctx, logger.WithFields(logrus.Fields{
			log.FldMethod: r.Method,
			log.FldPath:   r.URL.Path,
			log.FldIP:     ip,
		}))
	}
}
