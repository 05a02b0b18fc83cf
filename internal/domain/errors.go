package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals input rejected before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = fmt.Errorf("%w: query is required", ErrValidation)
	// ErrNoCollections signals a search without selected collections.
	ErrNoCollections = fmt.Errorf("%w: at least one collection must be selected", ErrValidation)
	// ErrUnknownCollection signals a collection outside the active search.
	ErrUnknownCollection = fmt.Errorf("%w: collection is not part of the search", ErrValidation)
	// ErrDuplicateTranslation signals an existing (key, language) pair.
	ErrDuplicateTranslation = fmt.Errorf("%w: translation already exists for key and language", ErrValidation)

	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a write rejected by the remote API as a duplicate.
	ErrConflict = errors.New("conflict")

	// ErrUpstream signals a non-2xx response from the remote API.
	ErrUpstream = errors.New("upstream error")
	// ErrTransport signals a network failure talking to the remote API.
	ErrTransport = errors.New("transport error")

	// ErrStaleQuery signals a result that belongs to a superseded query.
	ErrStaleQuery = errors.New("stale query")
	// ErrNoActiveSearch signals pagination without a search.
	ErrNoActiveSearch = errors.New("no active search")
	// ErrFetchInFlight signals a concurrent fetch on the same collection lane.
	ErrFetchInFlight = errors.New("fetch already in flight")
)

// StatusError is a non-2xx response from the remote API.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s: status %d", e.Operation, ErrUpstream.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: status %d: %s", e.Operation, ErrUpstream.Error(), e.StatusCode, e.Body)
}

// Is maps well-known status codes onto sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrConflict:
		return e.StatusCode == 409
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// NewStatusError creates a StatusError.
func NewStatusError(op string, status int, body string) error {
	return &StatusError{Operation: op, StatusCode: status, Body: body}
}
