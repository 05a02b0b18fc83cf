package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"

	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
	logpkg "github.com/kailas-cloud/solrdesk/internal/logger"
)

// GetPreferences handles GET /api/preferences/{profile}.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	profile := gochi.URLParam(r, "profile")
	r = annotate(r, logpkg.Profile(profile))

	p, err := s.preferences.Load(r.Context(), profile)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(p))
}

// PutPreferences handles PUT /api/preferences/{profile}.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	profile := gochi.URLParam(r, "profile")
	r = annotate(r, logpkg.Profile(profile))

	var req dompref.Preferences
	if !decodeJSON(w, r, &req, false) {
		return
	}
	saved, err := s.preferences.Save(r.Context(), profile, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(saved))
}

// DeletePreferences handles DELETE /api/preferences/{profile}.
func (s *Server) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	profile := gochi.URLParam(r, "profile")
	r = annotate(r, logpkg.Profile(profile))

	if err := s.preferences.Reset(r.Context(), profile); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func preferencesResponse(p dompref.Preferences) dompref.Preferences {
	if p.Collections == nil {
		p.Collections = []string{}
	}
	return p
}
