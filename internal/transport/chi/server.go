// Package chi is the BFF HTTP API of the search desk.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/metrics"
	collectionuc "github.com/kailas-cloud/solrdesk/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/solrdesk/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/solrdesk/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
	"github.com/kailas-cloud/solrdesk/internal/version"
)

const (
	maxJSONBody   = 1 << 20
	maxImportBody = 16 << 20
)

// Server holds the BFF handlers.
type Server struct {
	collections   *collectionuc.Service
	search        *searchuc.Service
	sessions      *searchuc.Sessions
	translations  *translationuc.Service
	preferences   *preferencesuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
	maxImport     int64
}

// NewServer creates the BFF server.
func NewServer(
	collections *collectionuc.Service,
	search *searchuc.Service,
	sessions *searchuc.Sessions,
	translations *translationuc.Service,
	preferences *preferencesuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		collections:   collections,
		search:        search,
		sessions:      sessions,
		translations:  translations,
		preferences:   preferences,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
		maxImport:     maxImportBody,
	}
}

// Router builds the chi router with middlewares and every route mounted.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware("/metrics"))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r gochi.Router) {
		r.Get("/collections", s.ListCollections)

		r.Route("/sessions", func(r gochi.Router) {
			r.Post("/", s.CreateSession)
			r.Route("/{session}", func(r gochi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.DeleteSession)
				r.Post("/search", s.Search)
				r.Post("/search/next", s.ContinueSearch)
				r.Post("/more", s.LoadMoreAll)
				r.Put("/active", s.SelectCollection)
				r.Post("/collections/{collection}/more", s.LoadMore)
				r.Get("/collections/{collection}/documents", s.ViewDocuments)
			})
		})

		r.Route("/translations", func(r gochi.Router) {
			r.Get("/", s.ListTranslations)
			r.Post("/", s.CreateTranslation)
			r.Get("/export", s.ExportTranslations)
			r.Post("/import", s.ImportTranslations)
			r.Put("/{id}", s.UpdateTranslation)
			r.Delete("/{id}", s.DeleteTranslation)
		})

		r.Get("/preferences/{profile}", s.GetPreferences)
		r.Put("/preferences/{profile}", s.PutPreferences)
		r.Delete("/preferences/{profile}", s.DeletePreferences)
	})

	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// ListCollections handles GET /api/collections (?refresh=true bypasses the cache).
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	list := s.collections.List
	if r.URL.Query().Get("refresh") == "true" {
		list = s.collections.Refresh
	}
	cols, err := list(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]CollectionResponse, len(cols))
	for i, c := range cols {
		items[i] = CollectionResponse{Name: c.Name(), DisplayName: c.DisplayName()}
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Collections: items})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
