package internal

import (
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"
)

// VenueEndpoints is a collection of endpoints to the venue service
type VenueEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
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
	Get        endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ShowEndpoints is a collection of endpoints to the show service
type ShowEndpoints struct {
	List       endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
}

// The base for all responses which always contains an "ok" property to show if the call was successful and a
// data element containing the result of the request. Message holds the notice shown to the user, if any
type basicResponse struct {
	OK      bool        `json:"ok"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// noContent is the response of endpoints that return no body at all
type noContent struct{}

// -- Venues -----------------------------------------------------------------------------------------------------------

// MakeVenueEndpoints creates the endpoints needed to use the venue service. Show times are displayed in loc
func MakeVenueEndpoints(s VenueService, loc *time.Location) VenueEndpoints {
	return VenueEndpoints{
		List:       makeListVenuesEndpoint(s),
		Search:     makeSearchVenuesEndpoint(s),
		Get:        makeGetVenueEndpoint(s, loc),
		CreateForm: makeEmptyFormEndpoint(venueFormView{Genres: []string{}}),
		Create:     makeCreateVenueEndpoint(s),
		EditForm:   makeVenueEditFormEndpoint(s),
		Update:     makeUpdateVenueEndpoint(s, loc),
		Delete:     makeDeleteVenueEndpoint(s),
	}
}

func makeListVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		areas, err := s.Areas(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeAreaViews(areas)}, nil
	}
}

func makeSearchVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		se, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		lst, err := s.Search(ctx, &se)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: searchView{len(lst), makeVenueSummaryViews(lst), se.Search}}, nil
	}
}

func makeGetVenueEndpoint(s VenueService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID")
		}
		d, err := s.Detail(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeVenueDetailView(d, loc)}, nil
	}
}

func makeCreateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form, ok := request.(VenueForm)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		v, err := s.Create(ctx, &form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    makeVenueView(v),
			Message: fmt.Sprintf("Venue %s was successfully listed!", v.Name),
		}, nil
	}
}

func makeVenueEditFormEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID")
		}
		v, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeVenueFormView(v)}, nil
	}
}

func makeUpdateVenueEndpoint(s VenueService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(updateRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		form, ok := req.Form.(VenueForm)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		if _, err := s.Update(ctx, req.ID, &form); err != nil {
			return nil, err
		}
		d, err := s.Detail(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeVenueDetailView(d, loc)}, nil
	}
}

func makeDeleteVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID")
		}
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return noContent{}, nil
	}
}

// -- Artists ----------------------------------------------------------------------------------------------------------

// MakeArtistEndpoints creates the endpoints needed to use the artist service. Show times are displayed in loc
func MakeArtistEndpoints(s ArtistService, loc *time.Location) ArtistEndpoints {
	return ArtistEndpoints{
		List:       makeListArtistsEndpoint(s),
		Search:     makeSearchArtistsEndpoint(s),
		Get:        makeGetArtistEndpoint(s, loc),
		CreateForm: makeEmptyFormEndpoint(artistFormView{Genres: []string{}}),
		Create:     makeCreateArtistEndpoint(s),
		EditForm:   makeArtistEditFormEndpoint(s),
		Update:     makeUpdateArtistEndpoint(s, loc),
		Delete:     makeDeleteArtistEndpoint(s),
	}
}

func makeListArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		lst, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeArtistListViews(lst)}, nil
	}
}

func makeSearchArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		se, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		lst, err := s.Search(ctx, &se)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: searchView{len(lst), makeArtistSummaryViews(lst), se.Search}}, nil
	}
}

func makeGetArtistEndpoint(s ArtistService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID")
		}
		d, err := s.Detail(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeArtistDetailView(d, loc)}, nil
	}
}

func makeCreateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form, ok := request.(ArtistForm)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		a, err := s.Create(ctx, &form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    makeArtistView(a),
			Message: fmt.Sprintf("Artist %s was successfully listed!", a.Name),
		}, nil
	}
}

func makeArtistEditFormEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID")
		}
		a, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeArtistFormView(a)}, nil
	}
}

func makeUpdateArtistEndpoint(s ArtistService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(updateRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		form, ok := req.Form.(ArtistForm)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		if _, err := s.Update(ctx, req.ID, &form); err != nil {
			return nil, err
		}
		d, err := s.Detail(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeArtistDetailView(d, loc)}, nil
	}
}

func makeDeleteArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		id, ok := request.(uint)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID")
		}
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return noContent{}, nil
	}
}

// -- Shows ------------------------------------------------------------------------------------------------------------

// MakeShowEndpoints creates the endpoints needed to use the show service. Show times are displayed in loc
func MakeShowEndpoints(s ShowService, loc *time.Location) ShowEndpoints {
	return ShowEndpoints{
		List:       makeListShowsEndpoint(s, loc),
		CreateForm: makeShowFormEndpoint(s, loc),
		Create:     makeCreateShowEndpoint(s),
	}
}

func makeListShowsEndpoint(s ShowService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		lst, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: makeShowListViews(lst, loc)}, nil
	}
}

// makeShowFormEndpoint returns the empty show form with the start time defaulting to the current time
func makeShowFormEndpoint(s ShowService, loc *time.Location) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{OK: true, Data: showFormView{StartTime: FormatStartTime(s.Now(), loc)}}, nil
	}
}

func makeCreateShowEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form, ok := request.(ShowForm)
		if !ok {
			return nil, fmt.Errorf("illegal show parameter")
		}
		if _, err := s.Create(ctx, &form); err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Message: "Show was successfully listed!"}, nil
	}
}

// -- Misc -------------------------------------------------------------------------------------------------------------

// makeEmptyFormEndpoint returns an endpoint answering with the given blank form
func makeEmptyFormEndpoint(form interface{}) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{OK: true, Data: form}, nil
	}
}

// MakeHomeEndpoint returns the endpoint behind the landing page
func MakeHomeEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{OK: true}, nil
	}
}
