package apiclient

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the upstream API taxonomy. Handlers branch on these to
// pick the user-visible failure mode (not-found state, re-auth prompt, or
// generic retryable banner).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the upstream HTTP status and message for a failed request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Message)
}

// Unwrap maps the status (and "not found" message bodies, which some upstream
// routes use with a 400) onto the sentinel taxonomy.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 401:
		return ErrUnauthorized
	case e.StatusCode == 404:
		return ErrNotFound
	case strings.Contains(strings.ToLower(e.Message), "not found"):
		return ErrNotFound
	default:
		return nil
	}
}

// IsNotFound reports whether err represents a missing upstream resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err represents a rejected/expired token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
