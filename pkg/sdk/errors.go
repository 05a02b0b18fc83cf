package solrdesk

import "github.com/kailas-cloud/solrdesk/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation           = domain.ErrValidation
	ErrEmptyQuery           = domain.ErrEmptyQuery
	ErrNoCollections        = domain.ErrNoCollections
	ErrUnknownCollection    = domain.ErrUnknownCollection
	ErrDuplicateTranslation = domain.ErrDuplicateTranslation
	ErrNotFound             = domain.ErrNotFound
	ErrUpstream             = domain.ErrUpstream
	ErrTransport            = domain.ErrTransport
	ErrStaleQuery           = domain.ErrStaleQuery
	ErrNoActiveSearch       = domain.ErrNoActiveSearch
	ErrFetchInFlight        = domain.ErrFetchInFlight
)
