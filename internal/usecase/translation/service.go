package translation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

const catalogKey = "catalog"

// Service manages translations. A cached catalog answers duplicate checks so a
// conflicting (key, language) pair is rejected without a write request.
type Service struct {
	remote Remote
	cache  *gocache.Cache
	// mu serializes writes so the duplicate check and the write see the same catalog
	mu sync.Mutex
}

// New creates a translation service. The catalog is kept for ttl after a load.
func New(remote Remote, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{remote: remote, cache: gocache.New(ttl, 2*ttl)}
}

// List reloads the catalog and returns the entries of language ("" for all),
// sorted by key then language.
func (s *Service) List(ctx context.Context, language string) ([]domtr.Translation, error) {
	cat, err := s.catalog(ctx, true)
	if err != nil {
		return nil, err
	}
	return filter(cat, strings.TrimSpace(language)), nil
}

// Create validates and stores a new translation.
func (s *Service) Create(ctx context.Context, key, language, value string) (domtr.Translation, error) {
	t, err := domtr.New(key, language, value)
	if err != nil {
		return domtr.Translation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.catalog(ctx, false)
	if err != nil {
		return domtr.Translation{}, err
	}
	if _, ok := find(cat, t.Pair(), ""); ok {
		return domtr.Translation{}, fmt.Errorf("%s: %w", t.Pair(), domain.ErrDuplicateTranslation)
	}

	created, err := s.remote.CreateTranslation(ctx, t)
	if err != nil {
		return domtr.Translation{}, mapWriteError(t.Pair(), "create translation", err)
	}
	s.invalidate()
	return created, nil
}

// Update replaces the translation with the given ID.
func (s *Service) Update(ctx context.Context, id, key, language, value string) (domtr.Translation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domtr.Translation{}, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	t, err := domtr.New(key, language, value)
	if err != nil {
		return domtr.Translation{}, err
	}
	t = t.WithID(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.catalog(ctx, false)
	if err != nil {
		return domtr.Translation{}, err
	}
	if _, ok := find(cat, t.Pair(), id); ok {
		return domtr.Translation{}, fmt.Errorf("%s: %w", t.Pair(), domain.ErrDuplicateTranslation)
	}

	updated, err := s.remote.UpdateTranslation(ctx, t)
	if err != nil {
		return domtr.Translation{}, mapWriteError(t.Pair(), "update translation", err)
	}
	s.invalidate()
	return updated, nil
}

// Delete removes a translation.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remote.DeleteTranslation(ctx, id); err != nil {
		return fmt.Errorf("delete translation %s: %w", id, err)
	}
	s.invalidate()
	return nil
}

// catalog returns every translation, from cache unless refresh is set.
func (s *Service) catalog(ctx context.Context, refresh bool) ([]domtr.Translation, error) {
	if !refresh {
		if v, ok := s.cache.Get(catalogKey); ok {
			if cat, ok := v.([]domtr.Translation); ok {
				return cat, nil
			}
		}
	}
	cat, err := s.remote.ListTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	s.cache.SetDefault(catalogKey, cat)
	return cat, nil
}

func (s *Service) invalidate() {
	s.cache.Delete(catalogKey)
}

// find returns the entry holding pair, ignoring the record with skipID.
func find(cat []domtr.Translation, pair domtr.Pair, skipID string) (domtr.Translation, bool) {
	for _, t := range cat {
		if t.Pair() == pair && (skipID == "" || t.ID() != skipID) {
			return t, true
		}
	}
	return domtr.Translation{}, false
}

func filter(cat []domtr.Translation, language string) []domtr.Translation {
	out := make([]domtr.Translation, 0, len(cat))
	for _, t := range cat {
		if language == "" || t.Language() == language {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Key() != out[j].Key() {
			return out[i].Key() < out[j].Key()
		}
		return out[i].Language() < out[j].Language()
	})
	return out
}

// mapWriteError turns a remote conflict into the duplicate validation error.
func mapWriteError(pair domtr.Pair, op string, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%s: %w", pair, domain.ErrDuplicateTranslation)
	}
	return fmt.Errorf("%s %s: %w", op, pair, err)
}
