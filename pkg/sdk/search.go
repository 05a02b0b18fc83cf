package solrdesk

import (
	"context"
	"fmt"
	"sort"
	"time"

	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
)

// SearchSession is one search tab: a query over several collections whose
// results accumulate as more pages are fetched. Safe for concurrent use.
type SearchSession struct {
	sess *searchuc.Session
	svc  searchUseCase
	obs  *observer
}

// ID returns the session identifier.
func (s *SearchSession) ID() string { return s.sess.ID() }

// Search runs query over collections (the profile's saved selection when none
// are given). Repeating the active query returns the current state unchanged.
func (s *SearchSession) Search(ctx context.Context, query string, collections ...string) (_ Snapshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.search", start, err) }()

	snap, err := s.svc.Search(ctx, s.sess, query, collections)
	if err != nil {
		return fromInternalSnapshot(snap), fmt.Errorf("search: %w", err)
	}
	return fromInternalSnapshot(snap), nil
}

// Continue fetches the next page of every collection that is not exhausted.
func (s *SearchSession) Continue(ctx context.Context) (_ Snapshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.continue", start, err) }()

	snap, err := s.svc.Continue(ctx, s.sess)
	if err != nil {
		return fromInternalSnapshot(snap), fmt.Errorf("continue search: %w", err)
	}
	return fromInternalSnapshot(snap), nil
}

// LoadMore fetches the next page of one collection.
func (s *SearchSession) LoadMore(ctx context.Context, collection string) (_ Batch, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.load_more", start, err) }()

	res, err := s.svc.LoadMore(ctx, s.sess, collection)
	if err != nil {
		return Batch{}, fmt.Errorf("load more %s: %w", collection, err)
	}
	b := fromInternalLane(collection, res)
	s.obs.loaded(b)
	return b, nil
}

// LoadMoreAll fetches the next page of several collections concurrently (all
// pending ones when none are given). Successful batches are returned sorted by
// collection even when some collections fail.
func (s *SearchSession) LoadMoreAll(ctx context.Context, collections ...string) (_ []Batch, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.load_more_all", start, err) }()

	results, err := s.svc.LoadMoreAll(ctx, s.sess, collections)
	out := make([]Batch, 0, len(results))
	for col, res := range results {
		out = append(out, fromInternalLane(col, res))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Collection < out[j].Collection })
	s.obs.loaded(out...)
	if err != nil {
		return out, fmt.Errorf("load more: %w", err)
	}
	return out, nil
}

// Select makes collection the active tab.
func (s *SearchSession) Select(ctx context.Context, collection string) (Snapshot, error) {
	snap, err := s.svc.Select(ctx, s.sess, collection)
	if err != nil {
		return fromInternalSnapshot(snap), fmt.Errorf("select: %w", err)
	}
	return fromInternalSnapshot(snap), nil
}

// Page moves the local page of collection to n (clamped) and returns it.
func (s *SearchSession) Page(collection string, n int) (Page, error) {
	v, err := s.svc.SetPage(s.sess, collection, n)
	if err != nil {
		return Page{}, fmt.Errorf("page: %w", err)
	}
	return fromInternalView(v), nil
}

// CurrentPage returns the current local page of collection.
func (s *SearchSession) CurrentPage(collection string) (Page, error) {
	v, err := s.svc.View(s.sess, collection)
	if err != nil {
		return Page{}, fmt.Errorf("page: %w", err)
	}
	return fromInternalView(v), nil
}

// Snapshot returns the aggregation state.
func (s *SearchSession) Snapshot() Snapshot {
	return fromInternalSnapshot(s.svc.Snapshot(s.sess))
}
