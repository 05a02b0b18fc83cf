package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/metrics"
)

// DefaultProfile is used when a session is created without a profile.
const DefaultProfile = "default"

// Sessions is the in-process registry of search sessions.
// A session expires after ttl without access.
type Sessions struct {
	cache    *gocache.Cache
	api      SearchAPI
	pageSize int
}

// NewSessions creates a registry. pageSize is the local view page size.
func NewSessions(api SearchAPI, pageSize int, ttl time.Duration) *Sessions {
	c := gocache.New(ttl, ttl/2)
	c.OnEvicted(func(string, any) {
		metrics.SearchSessionsActive.Dec()
	})
	return &Sessions{cache: c, api: api, pageSize: pageSize}
}

// Create opens a new session for profile.
func (r *Sessions) Create(profile string) *Session {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = DefaultProfile
	}
	s := newSession(uuid.NewString(), profile, r.pageSize, r.api)
	r.cache.SetDefault(s.ID(), s)
	metrics.SearchSessionsActive.Inc()
	return s
}

// Get returns a live session and extends its lifetime.
func (r *Sessions) Get(id string) (*Session, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s, ok := v.(*Session)
	if !ok || !r.touch(id, s) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

// touch extends the lifetime of a session still held by the registry.
// An entry evicted since it was read stays gone.
func (r *Sessions) touch(id string, s *Session) bool {
	return r.cache.Replace(id, s, gocache.DefaultExpiration) == nil
}

// Delete drops a session.
func (r *Sessions) Delete(id string) error {
	if _, ok := r.cache.Get(id); !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	r.cache.Delete(id)
	return nil
}

// Count returns the number of live sessions.
func (r *Sessions) Count() int {
	return r.cache.ItemCount()
}
