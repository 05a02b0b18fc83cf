package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/db/memory"
	"github.com/kailas-cloud/solrdesk/internal/repository/preferences"
	"github.com/kailas-cloud/solrdesk/internal/transport/solrapi"
	collectionuc "github.com/kailas-cloud/solrdesk/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/solrdesk/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/solrdesk/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
)

// --- Fake index API ---

const fakeBatch = 3

type fakeTranslation struct {
	ID       string `json:"_id"`
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

// fakeUpstream serves the index API from memory. Search pages are fakeBatch
// documents wide; cursors encode the offset ("c<n>").
type fakeUpstream struct {
	mu           sync.Mutex
	docs         map[string][]string
	translations []fakeTranslation
	nextID       int
	searchCalls  int
	failSearch   bool
	lastMarks    map[string]string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		docs: map[string][]string{
			"alpha": {"a1", "a2", "a3", "a4", "a5"},
			"beta":  {"b1", "b2"},
		},
		nextID: 1,
	}
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", f.search)
	mux.HandleFunc("GET /solr/collections", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"collections": []any{"alpha", map[string]string{"collectionName": "beta", "displayName": "Beta"}},
		})
	})
	mux.HandleFunc("GET /translations", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, append([]fakeTranslation{}, f.translations...))
	})
	mux.HandleFunc("POST /translations", func(w http.ResponseWriter, r *http.Request) {
		var t fakeTranslation
		_ = json.NewDecoder(r.Body).Decode(&t)
		f.mu.Lock()
		defer f.mu.Unlock()
		t.ID = "t" + strconv.Itoa(f.nextID)
		f.nextID++
		f.translations = append(f.translations, t)
		writeJSON(w, http.StatusCreated, t)
	})
	mux.HandleFunc("PUT /translations/{id}", func(w http.ResponseWriter, r *http.Request) {
		var t fakeTranslation
		_ = json.NewDecoder(r.Body).Decode(&t)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.translations {
			if f.translations[i].ID == r.PathValue("id") {
				t.ID = f.translations[i].ID
				f.translations[i] = t
				writeJSON(w, http.StatusOK, t)
				return
			}
		}
		http.Error(w, "missing", http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /translations/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.translations {
			if f.translations[i].ID == r.PathValue("id") {
				f.translations = append(f.translations[:i], f.translations[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.Error(w, "missing", http.StatusNotFound)
	})
	return mux
}

func (f *fakeUpstream) search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query           string            `json:"query"`
		SolrCollections []string          `json:"solrCollections"`
		CursorMarks     map[string]string `json:"cursorMarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastMarks = req.CursorMarks
	if f.failSearch {
		http.Error(w, "index down", http.StatusInternalServerError)
		return
	}

	results := map[string][]map[string]any{}
	next := map[string]string{}
	numFound := map[string]int{}
	for _, col := range req.SolrCollections {
		all := f.docs[col]
		offset := 0
		if m := req.CursorMarks[col]; strings.HasPrefix(m, "c") {
			offset, _ = strconv.Atoi(strings.TrimPrefix(m, "c"))
		}
		end := min(offset+fakeBatch, len(all))
		offset = min(offset, end)
		docs := make([]map[string]any, 0, end-offset)
		for _, id := range all[offset:end] {
			docs = append(docs, map[string]any{"id": id, "q": req.Query})
		}
		results[col] = docs
		next[col] = "c" + strconv.Itoa(end)
		numFound[col] = len(all)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":         results,
		"nextCursorMarks": next,
		"numFound":        numFound,
	})
}

func (f *fakeUpstream) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func (f *fakeUpstream) marks() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastMarks
}

func (f *fakeUpstream) setFailSearch(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSearch = v
}

// --- Helpers ---

type testEnv struct {
	upstream *fakeUpstream
	router   http.Handler
	server   *Server
	sessions *searchuc.Sessions
}

func newTestEnv(t *testing.T, apiKeys ...string) *testEnv {
	t.Helper()

	up := newFakeUpstream()
	upSrv := httptest.NewServer(up.handler())
	t.Cleanup(upSrv.Close)

	client, err := solrapi.NewClient(&solrapi.Config{
		BaseURL:   upSrv.URL,
		Timeout:   5 * time.Second,
		RetryMax:  1,
		RetryWait: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	store := memory.NewStore()
	prefs := preferencesuc.New(preferences.New(store, "test:", 0))
	sessions := searchuc.NewSessions(client, 2, time.Minute)

	srv := NewServer(
		collectionuc.New(client, time.Minute),
		searchuc.New(prefs, 2),
		sessions,
		translationuc.New(client, time.Minute),
		prefs,
		healthuc.New(store, client),
		zap.NewNop(),
	)
	return &testEnv{upstream: up, router: srv.Router(apiKeys), server: srv, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/sessions", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("create session: got %d: %s", rr.Code, rr.Body.String())
	}
	var resp SessionResponse
	decode(t, rr, &resp)
	return resp.SessionID
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
}

func sessionPath(id string, parts ...string) string {
	p := fmt.Sprintf("/api/sessions/%s", id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
