package bookingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the booking API rejects the bearer
	// token. The client has already fired the unauthorized hook by the time
	// callers see this.
	ErrUnauthorized = errors.New("bookingapi: unauthorized")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("bookingapi: resource not found")

	// ErrInvalidResponse is returned when the response body cannot be decoded.
	ErrInvalidResponse = errors.New("bookingapi: invalid response")

	// ErrInternal is returned for client-side failures (request construction,
	// transport, timeout).
	ErrInternal = errors.New("bookingapi: internal error")
)

// RemoteError carries the booking API's own error message for non-2xx
// responses that are neither 401 nor 404.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bookingapi: remote error (status %d): %s", e.StatusCode, e.Message)
}
