package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	logpkg "github.com/kailas-cloud/solrdesk/internal/logger"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest           = "bad_request"
	codePayloadTooLarge      = "payload_too_large"
	codeValidationFailed     = "validation_failed"
	codeDuplicateTranslation = "duplicate_translation"
	codeNotFound             = "not_found"
	codeConflict             = "conflict"
	codeFetchInFlight        = "fetch_in_flight"
	codeStaleQuery           = "stale_query"
	codeNoActiveSearch       = "no_active_search"
	codeUpstreamError        = "upstream_error"
	codeUpstreamUnavailable  = "upstream_unavailable"
	codeUpstreamTimeout      = "upstream_timeout"
	codeUnauthorized         = "unauthorized"
	codeMethodNotAllowed     = "method_not_allowed"
	codeInternalError        = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// defaultErrorHandlers is ordered: specific sentinels precede their parents.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		bodyTooLargeHandler,
		sentinelHandler(domain.ErrDuplicateTranslation, http.StatusConflict, codeDuplicateTranslation, true),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed, true),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound, false),
		sentinelHandler(domain.ErrFetchInFlight, http.StatusConflict, codeFetchInFlight, false),
		sentinelHandler(domain.ErrStaleQuery, http.StatusConflict, codeStaleQuery, false),
		sentinelHandler(domain.ErrNoActiveSearch, http.StatusConflict, codeNoActiveSearch, false),
		sentinelHandler(domain.ErrConflict, http.StatusConflict, codeConflict, false),
		sentinelHandler(domain.ErrTransport, http.StatusServiceUnavailable, codeUpstreamUnavailable, false),
		sentinelHandler(domain.ErrUpstream, http.StatusBadGateway, codeUpstreamError, false),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, codeUpstreamTimeout, false),
	}
}

// sentinelHandler matches a single sentinel. Validation errors expose the full
// message; everything else only the sentinel text.
func sentinelHandler(sentinel error, status int, code string, verbose bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if verbose {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

// bodyTooLargeHandler reports a request body cut off by http.MaxBytesReader.
func bodyTooLargeHandler(w http.ResponseWriter, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge,
		fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("request failed", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
