package geocode

import "errors"

var (
	// ErrUnavailable indicates the geocoding service is unreachable.
	ErrUnavailable = errors.New("geocoding service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("geocoding request timed out")

	// ErrBadStatus indicates a non-200 response.
	ErrBadStatus = errors.New("geocoding service returned an error status")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("geocoding retry attempts exhausted")
)
