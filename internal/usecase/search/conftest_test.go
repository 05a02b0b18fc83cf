package search

import (
	"context"
	"maps"
	"sync"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/preferences"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
)

// --- Mocks ---

type searchCall struct {
	query       string
	collections []string
	marks       cursor.Marks
}

type mockAPI struct {
	mu       sync.Mutex
	calls    []searchCall
	searchFn func(ctx context.Context, query string, cols []string, marks cursor.Marks) (*page.Page, error)
}

func (m *mockAPI) Search(ctx context.Context, query string, cols []string, marks cursor.Marks) (*page.Page, error) {
	m.mu.Lock()
	m.calls = append(m.calls, searchCall{query: query, collections: append([]string(nil), cols...), marks: maps.Clone(marks)})
	m.mu.Unlock()
	if m.searchFn != nil {
		return m.searchFn(ctx, query, cols, marks)
	}
	return page.New(nil, nil, nil), nil
}

func (m *mockAPI) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockAPI) lastCall() searchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

type rememberCall struct {
	profile     string
	collections []string
	active      string
}

type mockPrefs struct {
	mu         sync.Mutex
	saved      preferences.Preferences
	loadErr    error
	remembered []rememberCall
}

func (m *mockPrefs) Load(_ context.Context, _ string) (preferences.Preferences, error) {
	return m.saved, m.loadErr
}

func (m *mockPrefs) RememberCollections(_ context.Context, profile string, cols []string, active string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remembered = append(m.remembered, rememberCall{profile: profile, collections: cols, active: active})
	return nil
}

// --- Helpers ---

func docs(ids ...string) []domain.Document {
	out := make([]domain.Document, len(ids))
	for i, id := range ids {
		out[i] = domain.Document{"id": id}
	}
	return out
}

func ids(ds []domain.Document) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID()
	}
	return out
}

// alphaFirstPage is the wide response of the "alpha" scenario.
func alphaFirstPage() *page.Page {
	return page.New(
		map[string][]domain.Document{"docs": docs("d1", "d2"), "images": {}},
		cursor.Marks{"docs": "c1", "images": "c1img"},
		map[string]int{"docs": 2, "images": 0},
	)
}

func newTestSession(api SearchAPI) *Session {
	return newSession("s1", DefaultProfile, 9, api)
}
