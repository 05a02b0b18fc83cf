package chi

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListTranslations handles GET /api/translations (?language= filters).
func (s *Server) ListTranslations(w http.ResponseWriter, r *http.Request) {
	items, err := s.translations.List(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := TranslationListResponse{Translations: make([]TranslationResponse, len(items))}
	for i, t := range items {
		resp.Translations[i] = translationToResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTranslation handles POST /api/translations.
func (s *Server) CreateTranslation(w http.ResponseWriter, r *http.Request) {
	var req TranslationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	r = annotate(r, zap.String("key", req.Key), zap.String("language", req.Language))

	t, err := s.translations.Create(r.Context(), req.Key, req.Language, req.Value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, translationToResponse(t))
}

// UpdateTranslation handles PUT /api/translations/{id}.
func (s *Server) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "id")
	var req TranslationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	r = annotate(r, zap.String("translation_id", id))

	t, err := s.translations.Update(r.Context(), id, req.Key, req.Language, req.Value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, translationToResponse(t))
}

// DeleteTranslation handles DELETE /api/translations/{id}.
func (s *Server) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "id")
	r = annotate(r, zap.String("translation_id", id))

	if err := s.translations.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportTranslations handles GET /api/translations/export as a CSV download.
// The body is buffered so a failed fetch still yields a JSON error.
func (s *Server) ExportTranslations(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")

	var buf bytes.Buffer
	n, err := s.translations.Export(r.Context(), &buf, language)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	name := "translations.csv"
	if language != "" {
		name = "translations-" + language + ".csv"
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("X-Row-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ImportTranslations handles POST /api/translations/import. The CSV is read
// either from a multipart "file" field or from the raw body.
func (s *Server) ImportTranslations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImport)

	src, closeFn, err := importSource(r)
	if err != nil {
		if !bodyTooLargeHandler(w, err) {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		}
		return
	}
	defer closeFn()

	rep, err := s.translations.Import(r.Context(), src)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if rep.Err != nil {
		logFields := []zap.Field{zap.Int("failed", rep.Failed), zap.Error(rep.Err)}
		s.logger.Warn("translation import had failures", logFields...)
	}
	writeJSON(w, http.StatusOK, importReportToResponse(rep))
}

func importSource(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("multipart field %q: %w", "file", err)
	}
	return f, func() { _ = f.Close() }, nil
}

