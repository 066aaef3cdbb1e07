package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Error().Err(err).Msg("Failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an AppError type to its HTTP status. Internal
// details are never sent to the client.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := appErr.Type.HTTPStatus()
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeValidation:
		respondWithError(w, status, appErr.Message)
	case apperrors.ErrorTypeExternal:
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Upstream failure")
		respondWithError(w, status, "upstream service unavailable")
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Internal error")
		respondWithError(w, status, "internal server error")
	}
}
