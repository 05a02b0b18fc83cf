package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/collection"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
	"github.com/kailas-cloud/solrdesk/internal/logger"
	"github.com/kailas-cloud/solrdesk/internal/metrics"
)

// DefaultMaxParallel bounds concurrent lane fetches in LoadMoreAll.
const DefaultMaxParallel = 4

// Service drives search sessions: wide searches, load-more and local paging.
type Service struct {
	prefs       PreferenceStore
	maxParallel int
}

// New creates a search service. prefs may be nil.
func New(prefs PreferenceStore, maxParallel int) *Service {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	return &Service{prefs: prefs, maxParallel: maxParallel}
}

// Search starts a query over the given collections and merges its first page.
// An empty selection falls back to the profile's saved collections. Re-submitting
// the active query is a no-op and returns the current state.
func (s *Service) Search(
	ctx context.Context, sess *Session, query string, collections []string,
) (result.Snapshot, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return result.Snapshot{}, domain.ErrEmptyQuery
	}

	collections = collection.Normalize(collections)
	if len(collections) == 0 {
		collections = s.savedCollections(ctx, sess.Profile())
	}
	if len(collections) == 0 {
		return result.Snapshot{}, domain.ErrNoCollections
	}

	agg := sess.Aggregator()
	tok, started := agg.Begin(query, collections)
	if !started {
		return agg.Snapshot(), nil
	}
	sess.Initiator().Reset(tok)

	release, err := sess.acquire(tok, collections)
	if err != nil {
		return agg.Snapshot(), err
	}
	defer release()

	p, err := sess.Initiator().Fetch(ctx, tok, collections, agg.Cursors(collections))
	if err != nil {
		_ = agg.FailSearch(tok, err)
		return agg.Snapshot(), err
	}
	if err := s.apply(ctx, agg, tok, p); err != nil {
		return agg.Snapshot(), err
	}

	s.remember(ctx, sess, collections, agg.Active())
	return agg.Snapshot(), nil
}

// Continue fetches the next wide page for every collection that is not exhausted,
// starting from the aggregator's latest cursors.
func (s *Service) Continue(ctx context.Context, sess *Session) (result.Snapshot, error) {
	agg := sess.Aggregator()
	tok, err := activeToken(agg)
	if err != nil {
		return agg.Snapshot(), err
	}

	pending := agg.Pending()
	if len(pending) == 0 {
		return agg.Snapshot(), nil
	}

	release, err := sess.acquire(tok, pending)
	if err != nil {
		return agg.Snapshot(), err
	}
	defer release()

	p, err := sess.Initiator().Fetch(ctx, tok, pending, agg.Cursors(pending))
	if err != nil {
		for _, col := range pending {
			_ = agg.FailCollection(tok, col, err)
		}
		return agg.Snapshot(), err
	}
	if err := s.apply(ctx, agg, tok, p); err != nil {
		return agg.Snapshot(), err
	}
	return agg.Snapshot(), nil
}

// LoadMore fetches the next page of one collection, seeded with the cursor the
// aggregator last saw for it.
func (s *Service) LoadMore(ctx context.Context, sess *Session, col string) (LaneResult, error) {
	agg := sess.Aggregator()
	tok, err := activeToken(agg)
	if err != nil {
		return LaneResult{}, err
	}
	col = strings.TrimSpace(col)
	if !agg.Has(col) {
		return LaneResult{}, fmt.Errorf("%s: %w", col, domain.ErrUnknownCollection)
	}
	return s.loadMore(ctx, sess, tok, col)
}

// LoadMoreAll runs LoadMore for several collections concurrently (all pending
// ones when none are given). A failing collection does not stop its siblings;
// failures are joined into the returned error.
func (s *Service) LoadMoreAll(
	ctx context.Context, sess *Session, collections []string,
) (map[string]LaneResult, error) {
	agg := sess.Aggregator()
	tok, err := activeToken(agg)
	if err != nil {
		return nil, err
	}

	collections = collection.Normalize(collections)
	if len(collections) == 0 {
		collections = agg.Pending()
	}
	for _, col := range collections {
		if !agg.Has(col) {
			return nil, fmt.Errorf("%s: %w", col, domain.ErrUnknownCollection)
		}
	}

	var (
		mu      sync.Mutex
		results = make(map[string]LaneResult, len(collections))
		errs    []error
		g       errgroup.Group
	)
	g.SetLimit(s.maxParallel)

	for _, col := range collections {
		g.Go(func() error {
			res, err := s.loadMore(ctx, sess, tok, col)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			results[col] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

// Select makes col the active collection tab.
func (s *Service) Select(ctx context.Context, sess *Session, col string) (result.Snapshot, error) {
	agg := sess.Aggregator()
	if err := agg.Select(strings.TrimSpace(col)); err != nil {
		return agg.Snapshot(), fmt.Errorf("%s: %w", col, err)
	}
	s.remember(ctx, sess, agg.Collections(), agg.Active())
	return agg.Snapshot(), nil
}

// SetPage moves the local page of col and returns the resulting view.
func (s *Service) SetPage(sess *Session, col string, n int) (result.PageView, error) {
	agg := sess.Aggregator()
	if _, err := agg.SetPage(col, n); err != nil {
		return result.PageView{}, fmt.Errorf("%s: %w", col, err)
	}
	return agg.View(col)
}

// View returns the current local page of col.
func (s *Service) View(sess *Session, col string) (result.PageView, error) {
	v, err := sess.Aggregator().View(col)
	if err != nil {
		return result.PageView{}, fmt.Errorf("%s: %w", col, err)
	}
	return v, nil
}

// Snapshot returns the session's aggregation state.
func (s *Service) Snapshot(sess *Session) result.Snapshot {
	return sess.Aggregator().Snapshot()
}

func (s *Service) loadMore(
	ctx context.Context, sess *Session, tok result.Token, col string,
) (LaneResult, error) {
	agg := sess.Aggregator()

	release, err := sess.acquire(tok, []string{col})
	if err != nil {
		return LaneResult{}, fmt.Errorf("%s: %w", col, err)
	}
	defer release()

	lane := sess.lane(tok, col)
	lane.Sync(agg.Cursor(col), agg.Exhausted(col))

	res, err := lane.Next(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("collection fetch failed", logger.Collection(col), zap.Error(err))
		_ = agg.FailCollection(tok, col, err)
		return res, err
	}
	if res.Page == nil {
		return res, nil
	}
	if err := s.apply(ctx, agg, tok, res.Page); err != nil {
		return res, fmt.Errorf("%s: %w", col, err)
	}
	return res, nil
}

func (s *Service) apply(ctx context.Context, agg *result.Aggregator, tok result.Token, p *page.Page) error {
	applied, err := agg.Apply(tok, p)
	if err != nil {
		if errors.Is(err, domain.ErrStaleQuery) {
			logger.FromContext(ctx).Debug("dropped page of superseded query", logger.Generation(tok.Query(), tok.Epoch())...)
		}
		return fmt.Errorf("merge page: %w", err)
	}
	if !applied {
		return nil
	}
	for _, col := range p.Collections() {
		if n := len(p.Documents(col)); n > 0 {
			metrics.SearchDocumentsFetchedTotal.WithLabelValues(col).Add(float64(n))
		}
	}
	return nil
}

func (s *Service) savedCollections(ctx context.Context, profile string) []string {
	if s.prefs == nil {
		return nil
	}
	p, err := s.prefs.Load(ctx, profile)
	if err != nil {
		logger.FromContext(ctx).Warn("load preferences failed", logger.Profile(profile), zap.Error(err))
		return nil
	}
	return collection.Normalize(p.Collections)
}

func (s *Service) remember(ctx context.Context, sess *Session, collections []string, active string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.RememberCollections(ctx, sess.Profile(), collections, active); err != nil {
		logger.FromContext(ctx).Warn("save preferences failed", logger.Profile(sess.Profile()), zap.Error(err))
	}
}

// activeToken returns the token of a query that can be paged further.
func activeToken(agg *result.Aggregator) (result.Token, error) {
	tok, state := agg.Current()
	switch state {
	case result.Idle, result.Failed:
		return result.Token{}, domain.ErrNoActiveSearch
	}
	return tok, nil
}
