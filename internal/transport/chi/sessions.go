package chi

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/solrdesk/internal/logger"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
)

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	sess := s.sessions.Create(req.Profile)
	annotate(r, logpkg.Session(sess.ID(), sess.Profile())...)

	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID(),
		Profile:   sess.Profile(),
		CreatedAt: sess.CreatedAt(),
	})
}

// GetSession handles GET /api/sessions/{session}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeSnapshot(w, sess, s.search.Snapshot(sess))
}

// DeleteSession handles DELETE /api/sessions/{session}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "session")
	r = annotate(r, zap.String(logpkg.KeySessionID, id))
	if err := s.sessions.Delete(id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /api/sessions/{session}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	var req SearchRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	r = annotate(r, zap.String(logpkg.KeyQuery, req.Query), zap.Strings("collections", req.Collections))

	snap, err := s.search.Search(r.Context(), sess, req.Query, req.Collections)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeSnapshot(w, sess, snap)
}

// ContinueSearch handles POST /api/sessions/{session}/search/next.
func (s *Server) ContinueSearch(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	snap, err := s.search.Continue(r.Context(), sess)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeSnapshot(w, sess, snap)
}

// LoadMore handles POST /api/sessions/{session}/collections/{collection}/more.
func (s *Server) LoadMore(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	col := gochi.URLParam(r, "collection")
	r = annotate(r, logpkg.Collection(col))

	res, err := s.search.LoadMore(r.Context(), sess, col)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, laneResultToResponse(col, res, s.search.Snapshot(sess)))
}

// LoadMoreAll handles POST /api/sessions/{session}/more. Collections that fail
// are listed in errors; the request fails only when none succeeded.
func (s *Server) LoadMoreAll(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	var req LoadMoreAllRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	results, err := s.search.LoadMoreAll(r.Context(), sess, req.Collections)
	if err != nil && len(results) == 0 {
		s.handleDomainError(w, r, err)
		return
	}

	snap := s.search.Snapshot(sess)
	names := make([]string, 0, len(results))
	for col := range results {
		names = append(names, col)
	}
	sort.Strings(names)

	resp := LoadMoreAllResponse{
		Results:  make([]LoadMoreResponse, 0, len(names)),
		Snapshot: s.snapshotResponse(sess, snap),
	}
	for _, col := range names {
		resp.Results = append(resp.Results, laneResultToResponse(col, results[col], snap))
	}
	if err != nil {
		s.logger.Warn("load more partially failed", zap.String(logpkg.KeySessionID, sess.ID()), zap.Error(err))
		resp.Errors = splitJoined(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelectCollection handles PUT /api/sessions/{session}/active.
func (s *Server) SelectCollection(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	var req SelectRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	snap, err := s.search.Select(r.Context(), sess, req.Collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeSnapshot(w, sess, snap)
}

// ViewDocuments handles GET /api/sessions/{session}/collections/{collection}/documents.
// A page query parameter moves the local page first.
func (s *Server) ViewDocuments(w http.ResponseWriter, r *http.Request) {
	sess, r, ok := s.session(w, r)
	if !ok {
		return
	}
	col := gochi.URLParam(r, "collection")

	var (
		v   result.PageView
		err error
	)
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			s.handleDomainError(w, r, fmt.Errorf("page %q: %w", raw, domain.ErrValidation))
			return
		}
		v, err = s.search.SetPage(sess, col, n)
	} else {
		v, err = s.search.View(sess, col)
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageViewToResponse(v))
}

// session resolves the {session} path parameter.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*searchuc.Session, *http.Request, bool) {
	id := gochi.URLParam(r, "session")
	r = annotate(r, zap.String(logpkg.KeySessionID, id))
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, r, false
	}
	return sess, r, true
}

func (s *Server) writeSnapshot(w http.ResponseWriter, sess *searchuc.Session, snap result.Snapshot) {
	writeJSON(w, http.StatusOK, s.snapshotResponse(sess, snap))
}

func (s *Server) snapshotResponse(sess *searchuc.Session, snap result.Snapshot) SnapshotResponse {
	resp := snapshotToResponse(sess.ID(), snap)
	if snap.Active != "" {
		if v, err := s.search.View(sess, snap.Active); err == nil {
			pv := pageViewToResponse(v)
			resp.View = &pv
		}
	}
	return resp
}

// splitJoined flattens an errors.Join result into messages.
func splitJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}
	errs := joined.Unwrap()
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
