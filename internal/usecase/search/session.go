package search

import (
	"sync"
	"time"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
)

// Session is one user's search desk: an aggregator plus the fetchers feeding it.
type Session struct {
	id        string
	profile   string
	createdAt time.Time

	agg       *result.Aggregator
	initiator *Initiator
	api       SearchAPI

	mu    sync.Mutex
	lanes map[string]*Lane
	// busy maps a collection to the epoch of the fetch holding it
	busy map[string]uint64
}

func newSession(id, profile string, pageSize int, api SearchAPI) *Session {
	return &Session{
		id:        id,
		profile:   profile,
		createdAt: time.Now(),
		agg:       result.NewAggregator(pageSize),
		initiator: NewInitiator(api),
		api:       api,
		lanes:     make(map[string]*Lane),
		busy:      make(map[string]uint64),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Profile returns the preferences profile of the session.
func (s *Session) Profile() string { return s.profile }

// CreatedAt returns the creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Aggregator returns the session's result aggregator.
func (s *Session) Aggregator() *result.Aggregator { return s.agg }

// Initiator returns the session's wide-page fetcher.
func (s *Session) Initiator() *Initiator { return s.initiator }

// acquire reserves the collections for one fetch under tok, all or nothing.
// A collection already held in the same epoch yields ErrFetchInFlight.
func (s *Session) acquire(tok result.Token, collections []string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, col := range collections {
		if e, ok := s.busy[col]; ok && e == tok.Epoch() {
			return nil, domain.ErrFetchInFlight
		}
	}
	for _, col := range collections {
		s.busy[col] = tok.Epoch()
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, col := range collections {
			if s.busy[col] == tok.Epoch() {
				delete(s.busy, col)
			}
		}
	}, nil
}

// lane returns the fetcher of a collection for tok, replacing lanes of older generations.
func (s *Session) lane(tok result.Token, collection string) *Lane {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lanes[collection]; ok && l.Token() == tok {
		return l
	}
	l := NewLane(s.api, tok, collection, s.agg.Cursor(collection))
	s.lanes[collection] = l
	return l
}
