package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
)

// LaneResult is the outcome of one load-more fetch.
type LaneResult struct {
	Page      *page.Page
	Documents []domain.Document
	Cursor    cursor.Mark
	Exhausted bool
}

// Lane fetches further pages of one collection for one query generation.
// Not safe for concurrent use; the session lets one fetch per lane through.
type Lane struct {
	api        SearchAPI
	token      result.Token
	collection string
	cursor     cursor.Mark
	exhausted  bool
}

// NewLane creates a Lane starting at seed ("*" when empty).
func NewLane(api SearchAPI, tok result.Token, collection string, seed cursor.Mark) *Lane {
	return &Lane{api: api, token: tok, collection: collection, cursor: cursor.OrStart(seed)}
}

// Collection returns the collection the lane pages through.
func (l *Lane) Collection() string { return l.collection }

// Token returns the query generation of the lane.
func (l *Lane) Token() result.Token { return l.token }

// Cursor returns the cursor the next fetch will start from.
func (l *Lane) Cursor() cursor.Mark { return l.cursor }

// Sync moves the lane to the aggregator's view of the collection.
// Wide pages advance cursors outside the lane, so every fetch starts from here.
func (l *Lane) Sync(seed cursor.Mark, exhausted bool) {
	l.cursor = cursor.OrStart(seed)
	l.exhausted = l.exhausted || exhausted
}

// Next fetches the page after the current cursor. An exhausted lane returns
// immediately without a request.
func (l *Lane) Next(ctx context.Context) (LaneResult, error) {
	if l.exhausted {
		return LaneResult{Cursor: l.cursor, Exhausted: true}, nil
	}

	prev := l.cursor
	p, err := l.api.Search(ctx, l.token.Query(), []string{l.collection}, cursor.Marks{l.collection: prev})
	if err != nil {
		return LaneResult{Cursor: prev}, fmt.Errorf("load more %s: %w", l.collection, err)
	}

	docs := p.Documents(l.collection)
	next, ok := p.NextCursor(l.collection)
	if ok && next != "" {
		l.cursor = next
	}
	if len(docs) == 0 || (ok && next == prev) {
		l.exhausted = true
	}

	return LaneResult{Page: p, Documents: docs, Cursor: l.cursor, Exhausted: l.exhausted}, nil
}
