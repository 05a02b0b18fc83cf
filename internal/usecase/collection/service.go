package collection

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	domcol "github.com/kailas-cloud/solrdesk/internal/domain/collection"
)

const listKey = "collections"

// Service lists searchable collections, caching the index API answer.
type Service struct {
	api   Lister
	cache *gocache.Cache
}

// New creates a collection service. A non-positive ttl disables caching.
func New(api Lister, ttl time.Duration) *Service {
	var c *gocache.Cache
	if ttl > 0 {
		c = gocache.New(ttl, 2*ttl)
	}
	return &Service{api: api, cache: c}
}

// List returns the collections, deduplicated by name in API order.
func (s *Service) List(ctx context.Context) ([]domcol.Descriptor, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(listKey); ok {
			if ds, ok := v.([]domcol.Descriptor); ok {
				return append([]domcol.Descriptor(nil), ds...), nil
			}
		}
	}
	return s.Refresh(ctx)
}

// Refresh bypasses the cache and reloads the collections.
func (s *Service) Refresh(ctx context.Context) ([]domcol.Descriptor, error) {
	ds, err := s.api.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	seen := make(map[string]struct{}, len(ds))
	out := make([]domcol.Descriptor, 0, len(ds))
	for _, d := range ds {
		if _, ok := seen[d.Name()]; ok {
			continue
		}
		seen[d.Name()] = struct{}{}
		out = append(out, d)
	}

	if s.cache != nil {
		s.cache.SetDefault(listKey, out)
	}
	return append([]domcol.Descriptor(nil), out...), nil
}
