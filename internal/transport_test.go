package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/db/dbtest"
)

type testResponse struct {
	OK           bool            `json:"ok"`
	Data         json.RawMessage `json:"data"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
	ErrorMessage string          `json:"errorMessage"`
}

func newTestHandler(t *testing.T) http.Handler {
	env := newTestEnv(t)
	return MakeHTTPHandler(env.venues, env.artists, env.shows, HandlerOptions{
		Location: time.UTC,
		Timeout:  5 * time.Second,
	}, dbtest.Logger())
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var res testResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	}
	return rec, res
}

func TestHomeAndAlive(t *testing.T) {
	h := newTestHandler(t)
	rec, res := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.OK)

	rec, res = do(t, h, http.MethodGet, "/alive", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.OK)
}

func TestUnknownRoute(t *testing.T) {
	rec, res := do(t, newTestHandler(t), http.MethodGet, "/nothing/here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, res.OK)
	assert.Equal(t, ErrCodeNotFound, res.Error)
}

func TestVenueLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec, res := do(t, h, http.MethodGet, "/venues/create", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"","genres":[],"address":"","city":"","state":"","phone":"","website":"",
		"facebook_link":"","seeking_talent":false,"description":"","image_link":""}`, string(res.Data))

	rec, res = do(t, h, http.MethodPost, "/venues/create", url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"genres":         {"Jazz", "Reggae"},
		"seeking_talent": {"y"},
		"description":    {"We are on the lookout"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", res.Message)
	var created venueView
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, []string{"Jazz", "Reggae"}, created.Genres)
	assert.True(t, created.SeekingTalent)

	rec, res = do(t, h, http.MethodGet, "/venues", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var areas []areaView
	require.NoError(t, json.Unmarshal(res.Data, &areas))
	require.Len(t, areas, 1)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "The Musical Hop", areas[0].Venues[0].Name)

	target := "/venues/" + jsonID(created.ID)
	rec, res = do(t, h, http.MethodGet, target+"/edit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var form venueFormView
	require.NoError(t, json.Unmarshal(res.Data, &form))
	assert.Equal(t, "We are on the lookout", form.Description)

	rec, res = do(t, h, http.MethodPost, target+"/edit", url.Values{
		"name":  {"The Musical Hop"},
		"city":  {"Oakland"},
		"state": {"CA"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail venueDetailView
	require.NoError(t, json.Unmarshal(res.Data, &detail))
	assert.Equal(t, "Oakland", detail.City)
	assert.False(t, detail.SeekingTalent)
	assert.Equal(t, []string{}, detail.Genres)
	assert.Equal(t, 0, detail.UpcomingShowsCount)

	rec, _ = do(t, h, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, rec.Body.Len())

	rec, res = do(t, h, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeVenueNotFound, res.Error)

	rec, _ = do(t, h, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueCreateFailureNotice(t *testing.T) {
	rec, res := do(t, newTestHandler(t), http.MethodPost, "/venues/create", url.Values{"name": {"Half"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, res.OK)
	assert.Equal(t, ErrCodeRequiredFieldMissing, res.Error)
	assert.Equal(t, "An error occurred. Venue Half could not be listed.", res.ErrorMessage)
}

func TestSearchEchoesTerm(t *testing.T) {
	h := newTestHandler(t)
	for _, n := range []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"} {
		rec, _ := do(t, h, http.MethodPost, "/artists/create", url.Values{
			"name": {n}, "city": {"San Francisco"}, "state": {"CA"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, res := do(t, h, http.MethodPost, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, rec.Code)
	var sr struct {
		Count      int                 `json:"count"`
		Data       []artistSummaryView `json:"data"`
		SearchTerm string              `json:"search_term"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &sr))
	assert.Equal(t, 1, sr.Count)
	assert.Equal(t, "band", sr.SearchTerm)
	assert.Equal(t, "The Wild Sax Band", sr.Data[0].Name)

	rec, res = do(t, h, http.MethodPost, "/artists/search", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(res.Data, &sr))
	assert.Equal(t, 3, sr.Count)

	// Blank terms list everything, other terms keep their spaces
	rec, res = do(t, h, http.MethodPost, "/artists/search", url.Values{"search_term": {"   "}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(res.Data, &sr))
	assert.Equal(t, 3, sr.Count)
	assert.Equal(t, "", sr.SearchTerm)

	rec, res = do(t, h, http.MethodPost, "/artists/search", url.Values{"search_term": {" Guns"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(res.Data, &sr))
	assert.Equal(t, 0, sr.Count)
	assert.Equal(t, " Guns", sr.SearchTerm)

	rec, res = do(t, h, http.MethodPost, "/artists/search", url.Values{"search_term": {" Petals"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(res.Data, &sr))
	assert.Equal(t, 1, sr.Count)

	rec, res = do(t, h, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lst []artistListView
	require.NoError(t, json.Unmarshal(res.Data, &lst))
	require.Len(t, lst, 3)
	assert.Equal(t, "Guns N Petals", lst[0].Name)
}

func TestShowCreateFlow(t *testing.T) {
	h := newTestHandler(t)
	_, res := do(t, h, http.MethodPost, "/venues/create", url.Values{
		"name": {"The Fillmore"}, "city": {"San Francisco"}, "state": {"CA"},
	})
	var v venueView
	require.NoError(t, json.Unmarshal(res.Data, &v))
	_, res = do(t, h, http.MethodPost, "/artists/create", url.Values{
		"name": {"Guns N Petals"}, "city": {"San Francisco"}, "state": {"CA"},
	})
	var a artistView
	require.NoError(t, json.Unmarshal(res.Data, &a))

	rec, res := do(t, h, http.MethodGet, "/shows/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sf showFormView
	require.NoError(t, json.Unmarshal(res.Data, &sf))
	assert.Equal(t, FormatStartTime(testNow, time.UTC), sf.StartTime)

	tests := []struct {
		name   string
		form   url.Values
		status int
		code   string
	}{
		{
			name:   "missing artist",
			form:   url.Values{"venue_id": {jsonID(v.ID)}, "artist_id": {"999"}, "start_time": {"2026-10-15 20:00:00"}},
			status: http.StatusNotFound,
			code:   ErrCodeArtistNotFound,
		},
		{
			name:   "invalid venue id",
			form:   url.Values{"venue_id": {"abc"}, "artist_id": {jsonID(a.ID)}, "start_time": {"2026-10-15 20:00:00"}},
			status: http.StatusBadRequest,
			code:   ErrCodeInvalidUint,
		},
		{
			name:   "invalid start time",
			form:   url.Values{"venue_id": {jsonID(v.ID)}, "artist_id": {jsonID(a.ID)}, "start_time": {"tomorrow"}},
			status: http.StatusBadRequest,
			code:   ErrCodeIllegalValue,
		},
		{
			name:   "missing start time",
			form:   url.Values{"venue_id": {jsonID(v.ID)}, "artist_id": {jsonID(a.ID)}},
			status: http.StatusBadRequest,
			code:   ErrCodeRequiredFieldMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, res := do(t, h, http.MethodPost, "/shows/create", tt.form)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, res.Error)
		})
	}

	rec, res = do(t, h, http.MethodGet, "/shows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(res.Data))

	rec, res = do(t, h, http.MethodPost, "/shows/create", url.Values{
		"venue_id": {jsonID(v.ID)}, "artist_id": {jsonID(a.ID)}, "start_time": {"2026-10-15 20:00:00"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Show was successfully listed!", res.Message)

	rec, res = do(t, h, http.MethodGet, "/shows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var shows []showListView
	require.NoError(t, json.Unmarshal(res.Data, &shows))
	require.Len(t, shows, 1)
	assert.Equal(t, "The Fillmore", shows[0].VenueName)
	assert.Equal(t, "2026-10-15 20:00:00", shows[0].StartTime)

	rec, res = do(t, h, http.MethodGet, "/artists/"+jsonID(a.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ad artistDetailView
	require.NoError(t, json.Unmarshal(res.Data, &ad))
	assert.Equal(t, 1, ad.UpcomingShowsCount)
	assert.Equal(t, "The Fillmore", ad.UpcomingShows[0].VenueName)

	rec, _ = do(t, h, http.MethodDelete, "/artists/"+jsonID(a.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, res = do(t, h, http.MethodGet, "/shows", nil)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
