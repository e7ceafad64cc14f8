package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flomentum/health-bridge/pkg/domain/query"
	"github.com/flomentum/health-bridge/pkg/infrastructure/sentry"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy onto HTTP statuses: validation 400,
// not-found 404, provider failure 502, anything else 500. Provider and
// unexpected failures are reported to Sentry.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *query.ValidationError
	var notFoundErr *query.NotFoundError
	var providerErr *query.ProviderError

	switch {
	case errors.As(err, &validationErr):
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Msg})
	case errors.As(err, &notFoundErr):
		s.respondJSON(w, http.StatusNotFound, errorBody{Error: notFoundErr.Msg, Code: notFoundErr.Code})
	case errors.As(err, &providerErr):
		s.logger.Error("Provider query failed", "path", r.URL.Path, "error", err)
		sentry.CaptureException(err, map[string]interface{}{"path": r.URL.Path})
		s.respondJSON(w, http.StatusBadGateway, errorBody{Error: providerErr.Error(), Code: providerErr.Code})
	default:
		s.logger.Error("Unexpected error", "path", r.URL.Path, "error", err)
		sentry.CaptureException(err, map[string]interface{}{"path": r.URL.Path})
		s.respondJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

// decode parses a JSON body into dst, surfacing malformed input as a
// validation error.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return query.NewValidationError("Invalid parameters")
	}
	return nil
}
