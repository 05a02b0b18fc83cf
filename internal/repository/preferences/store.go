package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrdesk/internal/db"
	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
)

// store is the consumer interface for preference persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store persists desk preferences as JSON documents on top of the KV store.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a preferences store. Keys look like {prefix}prefs:{profile}.
// A positive ttl expires a profile that has not been saved for that long.
func New(s store, prefix string, ttl time.Duration) *Store {
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// Load returns the saved preferences of a profile (zero value when none).
func (s *Store) Load(ctx context.Context, profile string) (dompref.Preferences, error) {
	key := s.key(profile)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompref.Preferences{}, nil
		}
		return dompref.Preferences{}, fmt.Errorf("prefs GET %s: %w", key, err)
	}

	var p dompref.Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return dompref.Preferences{}, fmt.Errorf("prefs GET %s decode: %w", key, err)
	}
	return p, nil
}

// Save overwrites the preferences of a profile.
func (s *Store) Save(ctx context.Context, profile string, p dompref.Preferences) error {
	key := s.key(profile)
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs SET %s encode: %w", key, err)
	}
	if s.ttl > 0 {
		err = s.store.SetWithTTL(ctx, key, data, s.ttl)
	} else {
		err = s.store.Set(ctx, key, data)
	}
	if err != nil {
		return fmt.Errorf("prefs SET %s: %w", key, err)
	}
	return nil
}

// Delete forgets the preferences of a profile.
func (s *Store) Delete(ctx context.Context, profile string) error {
	key := s.key(profile)
	if err := s.store.Del(ctx, key); err != nil {
		return fmt.Errorf("prefs DEL %s: %w", key, err)
	}
	return nil
}

func (s *Store) key(profile string) string {
	return s.prefix + "prefs:" + profile
}
