package search

import (
	"context"

	"github.com/kailas-cloud/solrdesk/internal/domain/preferences"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
)

// SearchAPI fetches one page of results across collections.
type SearchAPI interface {
	Search(ctx context.Context, query string, collections []string, marks cursor.Marks) (*page.Page, error)
}

// PreferenceStore supplies and remembers the collection selection of a profile.
type PreferenceStore interface {
	Load(ctx context.Context, profile string) (preferences.Preferences, error)
	RememberCollections(ctx context.Context, profile string, collections []string, active string) error
}
