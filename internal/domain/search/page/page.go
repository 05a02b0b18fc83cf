// Package page models one response of the multi-collection search endpoint.
package page

import (
	"sort"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
)

// Page is one search response (immutable value object).
// The pointer identity of a *Page is what the aggregator uses to detect replays.
type Page struct {
	results  map[string][]domain.Document
	next     cursor.Marks
	numFound map[string]int
}

// New creates a Page, copying the input maps.
func New(
	results map[string][]domain.Document, next cursor.Marks, numFound map[string]int,
) *Page {
	p := &Page{
		results:  make(map[string][]domain.Document, len(results)),
		next:     make(cursor.Marks, len(next)),
		numFound: make(map[string]int, len(numFound)),
	}
	for col, docs := range results {
		cp := make([]domain.Document, len(docs))
		copy(cp, docs)
		p.results[col] = cp
	}
	for col, m := range next {
		p.next[col] = m
	}
	for col, n := range numFound {
		p.numFound[col] = n
	}
	return p
}

// Documents returns the documents returned for a collection.
func (p *Page) Documents(collection string) []domain.Document {
	docs := p.results[collection]
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	return out
}

// HasResults reports whether the page carries a result entry for the collection.
func (p *Page) HasResults(collection string) bool {
	_, ok := p.results[collection]
	return ok
}

// NextCursor returns the cursor issued for the collection.
func (p *Page) NextCursor(collection string) (cursor.Mark, bool) {
	m, ok := p.next[collection]
	return m, ok
}

// NumFound returns the total hit count reported for the collection.
func (p *Page) NumFound(collection string) (int, bool) {
	n, ok := p.numFound[collection]
	return n, ok
}

// Collections returns every collection mentioned in the page, sorted.
func (p *Page) Collections() []string {
	seen := make(map[string]struct{}, len(p.results))
	for col := range p.results {
		seen[col] = struct{}{}
	}
	for col := range p.next {
		seen[col] = struct{}{}
	}
	for col := range p.numFound {
		seen[col] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for col := range seen {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}
