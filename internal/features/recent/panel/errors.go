package panel

import (
	"errors"
	"fmt"
)

var (
	// ErrDeleteInFlight is returned when a delete for the same id has not settled yet
	ErrDeleteInFlight = errors.New("delete already in progress")

	// ErrSuperseded is returned by a load that settled after a newer load started
	ErrSuperseded = errors.New("load superseded by a newer load")
)

// FetchError reports a non-success HTTP status from the backend
type FetchError struct {
	Method string
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// ParseError reports a response body that is not in the expected shape
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
