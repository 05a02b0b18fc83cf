package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
)

// Initiator issues wide pages: one request covering every selected collection.
// It keeps the sequence of pages received for the current query generation.
type Initiator struct {
	api SearchAPI

	mu    sync.Mutex
	epoch uint64
	pages []*page.Page
}

// NewInitiator creates an Initiator.
func NewInitiator(api SearchAPI) *Initiator {
	return &Initiator{api: api}
}

// Reset starts a new page sequence for the generation of tok.
// Tokens older than the current generation are ignored.
func (in *Initiator) Reset(tok result.Token) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if tok.Epoch() <= in.epoch {
		return
	}
	in.epoch = tok.Epoch()
	in.pages = nil
}

// Fetch requests one page of tok's query across collections. Collections without
// a mark start at "*". Not retried; errors are returned to the caller as-is.
func (in *Initiator) Fetch(
	ctx context.Context, tok result.Token, collections []string, marks cursor.Marks,
) (*page.Page, error) {
	query := tok.Query()
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if len(collections) == 0 {
		return nil, domain.ErrNoCollections
	}

	p, err := in.api.Search(ctx, query, collections, marks.Subset(collections))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	in.mu.Lock()
	if tok.Epoch() == in.epoch {
		in.pages = append(in.pages, p)
	}
	in.mu.Unlock()
	return p, nil
}

// Pages returns the pages received for the current query, in arrival order.
func (in *Initiator) Pages() []*page.Page {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]*page.Page(nil), in.pages...)
}
