package translation

import (
	"context"
	"strconv"
	"sync"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

// --- Mocks ---

// mockRemote is an in-memory translations API that counts calls.
type mockRemote struct {
	mu      sync.Mutex
	records []domtr.Translation
	nextID  int

	listCalls, createCalls, updateCalls, deleteCalls int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newMockRemote(records ...domtr.Translation) *mockRemote {
	return &mockRemote{records: records, nextID: len(records) + 1}
}

func (m *mockRemote) ListTranslations(_ context.Context) ([]domtr.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domtr.Translation(nil), m.records...), nil
}

func (m *mockRemote) CreateTranslation(_ context.Context, t domtr.Translation) (domtr.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return domtr.Translation{}, m.createErr
	}
	t = t.WithID(strconv.Itoa(m.nextID))
	m.nextID++
	m.records = append(m.records, t)
	return t, nil
}

func (m *mockRemote) UpdateTranslation(_ context.Context, t domtr.Translation) (domtr.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return domtr.Translation{}, m.updateErr
	}
	for i, r := range m.records {
		if r.ID() == t.ID() {
			m.records[i] = t
			return t, nil
		}
	}
	return domtr.Translation{}, domain.NewStatusError("translation_update", 404, "")
}

func (m *mockRemote) DeleteTranslation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, r := range m.records {
		if r.ID() == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.NewStatusError("translation_delete", 404, "")
}

func greetingEN() domtr.Translation {
	return domtr.Reconstruct("1", "greeting", "en", "Hello")
}
