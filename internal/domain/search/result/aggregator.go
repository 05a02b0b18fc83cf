// Package result accumulates paginated multi-collection search responses.
//
// An Aggregator owns, per collection of the active query, the accumulated
// document list, the latest cursor mark and the local view page. Every fetch
// carries the Token it was started under; results for a superseded query are
// rejected, and a page object is never applied twice.
package result

import (
	"sync"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/view"
)

// State is the lifecycle stage of the active query.
type State string

const (
	// Idle means no search has been started.
	Idle State = "idle"
	// Searching means the first page of the query is in flight.
	Searching State = "searching"
	// Populated means at least one page has been merged.
	Populated State = "populated"
	// Failed means the wide search failed; the query may be re-issued.
	Failed State = "failed"
)

// Token identifies one query generation. Async fetches hold on to the token
// they were started with and present it back when merging.
type Token struct {
	epoch uint64
	query string
}

// Epoch returns the query generation.
func (t Token) Epoch() uint64 { return t.epoch }

// Query returns the query string of the generation.
func (t Token) Query() string { return t.query }

// IsZero reports whether the token predates any search.
func (t Token) IsZero() bool { return t.epoch == 0 }

// lane is the per-collection accumulation state.
type lane struct {
	docs      []domain.Document
	cursor    cursor.Mark
	numFound  int
	fetched   bool
	exhausted bool
	err       error
}

// Aggregator merges pages of one query at a time. Safe for concurrent use.
type Aggregator struct {
	mu sync.RWMutex

	state   State
	epoch   uint64
	query   string
	order   []string
	lanes   map[string]*lane
	applied map[*page.Page]struct{}
	active  string
	pager   *view.Pager
	err     error
}

// NewAggregator creates an idle Aggregator with the given local page size.
func NewAggregator(pageSize int) *Aggregator {
	return &Aggregator{
		state:   Idle,
		lanes:   make(map[string]*lane),
		applied: make(map[*page.Page]struct{}),
		pager:   view.NewPager(pageSize),
	}
}

// Begin starts a query over the given collections.
// Re-issuing the active query (searching or populated) is a no-op: the current
// token is returned with started=false. Any other query resets documents,
// cursors and view pages and opens a new generation.
func (a *Aggregator) Begin(query string, collections []string) (tok Token, started bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.query == query && (a.state == Searching || a.state == Populated) {
		return a.token(), false
	}

	a.epoch++
	a.query = query
	a.state = Searching
	a.err = nil
	a.active = ""
	a.order = append([]string(nil), collections...)
	a.lanes = make(map[string]*lane, len(collections))
	for _, col := range collections {
		a.lanes[col] = &lane{}
	}
	a.applied = make(map[*page.Page]struct{})
	a.pager.Reset()

	return a.token(), true
}

// Apply merges a page fetched under tok.
// Returns ErrStaleQuery when tok is superseded and applied=false when the same
// page object was merged before.
func (a *Aggregator) Apply(tok Token, p *page.Page) (applied bool, err error) {
	if p == nil {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if tok != a.token() || a.state == Idle {
		return false, domain.ErrStaleQuery
	}
	if _, ok := a.applied[p]; ok {
		return false, nil
	}
	a.applied[p] = struct{}{}

	for _, col := range a.order {
		next, hasNext := p.NextCursor(col)
		if !p.HasResults(col) && !hasNext {
			continue
		}
		l := a.lanes[col]
		docs := p.Documents(col)
		l.docs = append(l.docs, docs...)

		prev := cursor.OrStart(l.cursor)
		if hasNext {
			l.cursor = next
		}
		if n, ok := p.NumFound(col); ok {
			l.numFound = n
		}
		l.fetched = true
		l.err = nil

		// an empty page or a cursor that did not move ends the lane
		if len(docs) == 0 || (hasNext && next == prev) {
			l.exhausted = true
		}
	}

	a.state = Populated
	a.autoSelect()
	return true, nil
}

// FailSearch puts the query generation into the Failed state.
func (a *Aggregator) FailSearch(tok Token, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tok != a.token() || a.state == Idle {
		return domain.ErrStaleQuery
	}
	a.state = Failed
	a.err = err
	return nil
}

// FailCollection records a fetch error scoped to one collection.
func (a *Aggregator) FailCollection(tok Token, collection string, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tok != a.token() {
		return domain.ErrStaleQuery
	}
	l, ok := a.lanes[collection]
	if !ok {
		return domain.ErrUnknownCollection
	}
	l.err = err
	return nil
}

// Current returns the active token and state.
func (a *Aggregator) Current() (Token, State) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token(), a.state
}

// Collections returns the collections of the active query in selection order.
func (a *Aggregator) Collections() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.order...)
}

// Has reports whether the collection belongs to the active query.
func (a *Aggregator) Has(collection string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.lanes[collection]
	return ok
}

// Cursor returns the latest cursor of a collection, Start when none is known.
func (a *Aggregator) Cursor(collection string) cursor.Mark {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if l, ok := a.lanes[collection]; ok {
		return cursor.OrStart(l.cursor)
	}
	return cursor.Start
}

// Cursors returns the latest cursors of the given collections.
func (a *Aggregator) Cursors(collections []string) cursor.Marks {
	a.mu.RLock()
	defer a.mu.RUnlock()
	marks := make(cursor.Marks, len(collections))
	for _, col := range collections {
		if l, ok := a.lanes[col]; ok {
			marks[col] = cursor.OrStart(l.cursor)
		} else {
			marks[col] = cursor.Start
		}
	}
	return marks
}

// Exhausted reports whether a collection has no more data.
func (a *Aggregator) Exhausted(collection string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	l, ok := a.lanes[collection]
	return ok && l.exhausted
}

// Pending returns the collections that may still yield documents, in order.
func (a *Aggregator) Pending() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.order))
	for _, col := range a.order {
		if !a.lanes[col].exhausted {
			out = append(out, col)
		}
	}
	return out
}

// Documents returns a copy of the accumulated list of a collection.
func (a *Aggregator) Documents(collection string) []domain.Document {
	a.mu.RLock()
	defer a.mu.RUnlock()
	l, ok := a.lanes[collection]
	if !ok {
		return nil
	}
	out := make([]domain.Document, len(l.docs))
	copy(out, l.docs)
	return out
}

// Select makes a collection the active tab. View pages are left untouched.
func (a *Aggregator) Select(collection string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.lanes[collection]; !ok {
		return domain.ErrUnknownCollection
	}
	a.active = collection
	return nil
}

// Active returns the selected collection ("" when none).
func (a *Aggregator) Active() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// SetPage moves the local view page of a collection and returns the clamped page.
func (a *Aggregator) SetPage(collection string, n int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.lanes[collection]
	if !ok {
		return 0, domain.ErrUnknownCollection
	}
	return a.pager.SetPage(collection, n, len(l.docs)), nil
}

// View returns the documents of the current local page of a collection.
func (a *Aggregator) View(collection string) (PageView, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	l, ok := a.lanes[collection]
	if !ok {
		return PageView{}, domain.ErrUnknownCollection
	}
	total := len(l.docs)
	n := a.pager.Page(collection, total)
	start, end := a.pager.Bounds(n, total)
	docs := make([]domain.Document, end-start)
	copy(docs, l.docs[start:end])
	return PageView{
		Collection: collection,
		Page:       n,
		PageCount:  a.pager.PageCount(total),
		PageSize:   a.pager.Size(),
		Total:      total,
		Exhausted:  l.exhausted,
		Documents:  docs,
	}, nil
}

// Snapshot returns a consistent copy of the aggregation state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Snapshot{
		Query:       a.query,
		State:       a.state,
		Epoch:       a.epoch,
		Active:      a.active,
		Err:         a.err,
		Collections: make([]CollectionState, 0, len(a.order)),
	}
	for _, col := range a.order {
		l := a.lanes[col]
		count := len(l.docs)
		s.Collections = append(s.Collections, CollectionState{
			Name:      col,
			Count:     count,
			NumFound:  l.numFound,
			Cursor:    cursor.OrStart(l.cursor),
			Fetched:   l.fetched,
			Exhausted: l.exhausted,
			Disabled:  count == 0,
			Page:      a.pager.Page(col, count),
			PageCount: a.pager.PageCount(count),
			Err:       l.err,
		})
	}
	return s
}

func (a *Aggregator) token() Token {
	return Token{epoch: a.epoch, query: a.query}
}

// autoSelect picks the first collection with documents when nothing is selected.
func (a *Aggregator) autoSelect() {
	if a.active != "" {
		return
	}
	for _, col := range a.order {
		if len(a.lanes[col].docs) > 0 {
			a.active = col
			return
		}
	}
}
