package internal

import "net/http"

const (
	// ErrCodeUnknown is the error code for unknown errors
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeNotFound is returned when no route matches the requested path
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRepoError is returned when the request to a repo fails with an error
	ErrCodeRepoError = "STORAGE_QUERY_FAILED"
	// ErrCodeRequiredFieldMissing is returned when at least one required field has not been populated on an incoming
	// request
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	// ErrCodeIllegalForm is returned when the request body could not be parsed as form data
	ErrCodeIllegalForm = "ILLEGAL_FORM_REQUEST"
	// ErrCodeIllegalValue is returned when any field in the transferred data does not validate for some reason
	ErrCodeIllegalValue = "ILLEGAL_VALUE"
	// ErrCodeInvalidUint is returned when an ID is required inside a request, but is not provided or in a wrong format
	ErrCodeInvalidUint = "INVALID_UINT"
	// ErrCodeVenueNotFound is returned when an operation works on a venue that does not exist
	ErrCodeVenueNotFound = "VENUE_NOT_FOUND"
	// ErrCodeArtistNotFound is returned when an operation works on an artist that does not exist
	ErrCodeArtistNotFound = "ARTIST_NOT_FOUND"
	// ErrCodeTimeout is returned when a request did not finish within the configured request timeout
	ErrCodeTimeout = "REQUEST_TIMEOUT"
)

var (
	// ErrRouteNotFound is the error returned for paths no handler is registered for
	ErrRouteNotFound = MakeError(http.StatusNotFound, ErrCodeNotFound, "The requested page does not exist")
)

// HTTPError is an error that contains information about the error message to return to the client
type HTTPError struct {
	message string
	code    string
	status  int
	data    interface{}
}

// MakeError creates a new HTTPError with the given contents
func MakeError(status int, code, message string) *HTTPError {
	return MakeErrorWithData(status, code, message, nil)
}

// MakeErrorWithData creates a new HTTPError with the given contents and an additional data element
func MakeErrorWithData(status int, code, message string, data interface{}) *HTTPError {
	return &HTTPError{message, code, status, data}
}

// Error implements the errorer interface
func (e *HTTPError) Error() string {
	return e.message
}

// Status returns the HTTP status that should be returned
func (e *HTTPError) Status() int {
	return e.status
}

// ErrorCode returns the machine-readable error code
func (e *HTTPError) ErrorCode() string {
	return e.code
}

// Data returns additional data about the error
func (e *HTTPError) Data() interface{} {
	return e.data
}

// IsNotFound tells if the given error is an HTTPError resulting in a 404 response
func IsNotFound(err error) bool {
	if e, ok := err.(*HTTPError); ok {
		return e.status == http.StatusNotFound
	}
	return false
}

// asListingFailure turns an error of a create operation into the single failure notice shown to the user while keeping
// status and code of the original error
func asListingFailure(err error, message string) error {
	if e, ok := err.(*HTTPError); ok {
		return MakeErrorWithData(e.status, e.code, message, e.data)
	}
	return MakeErrorWithData(http.StatusInternalServerError, ErrCodeRepoError, message, err)
}
