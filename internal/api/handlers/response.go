package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an error to its HTTP status and logs server-side failures
func respondWithAppError(ctx context.Context, w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		observability.RecordError(trace.SpanFromContext(ctx), err)
		observability.LoggerFromContext(ctx).Error().Err(err).Int("status", status).Msg("request failed")
	}
	respondWithError(w, status, apperrors.PublicMessage(err))
}

// decodeJSON reads a request body of at most 64 KiB into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(dst)
}
