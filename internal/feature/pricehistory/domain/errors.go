// Package domain defines domain-level errors for the pricehistory feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for price history operations.
// None of them are recovered from locally; they propagate to the caller as-is.
var (
	// ErrBadParameters indicates an invalid or ambiguous combination of
	// window-selection fields, or a missing ticker.
	// It is always returned before any network call is made.
	ErrBadParameters = errors.New("bad parameters")

	// ErrEmptyResponse indicates the API answered 200 with an empty candles array.
	ErrEmptyResponse = errors.New("empty candles response")

	// ErrSchemaMismatch indicates a record whose keys differ from the first
	// record's, or that lacks one of the required price columns.
	ErrSchemaMismatch = errors.New("candle schema mismatch")

	// ErrMalformedResponse indicates a 200 body that is not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed price history response")
)

// StatusError is returned when the API responds with anything other than 200.
// The status code is surfaced unchanged and never interpreted.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pricehistory http %d", e.StatusCode)
}

// NetworkError wraps a connection-level failure (DNS, TLS, timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("pricehistory network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the upstream HTTP status from err, if err carries one.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
