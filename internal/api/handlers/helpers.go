package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"freight-match-service/internal/domain"
)

func writeJSON(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(log, w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps sentinel errors to status codes at the boundary.
func writeDomainError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidMCNumber):
		writeError(log, w, r, http.StatusBadRequest, "MC number must be 1-7 digits with an optional MC prefix")
	case errors.Is(err, domain.ErrInvalidLocation):
		writeError(log, w, r, http.StatusBadRequest, "location must look like \"City, ST\"")
	case errors.Is(err, domain.ErrCarrierNotFound):
		writeError(log, w, r, http.StatusNotFound, "carrier not found")
	case errors.Is(err, domain.ErrLoadNotFound):
		writeError(log, w, r, http.StatusNotFound, "load not found")
	case errors.Is(err, domain.ErrDuplicateAssignment):
		writeError(log, w, r, http.StatusConflict, "load already has an active assignment")
	case errors.Is(err, domain.ErrLoadNotAvailable):
		writeError(log, w, r, http.StatusConflict, "load is not available")
	case errors.Is(err, domain.ErrUpstream):
		writeError(log, w, r, http.StatusBadGateway, "carrier verification is temporarily unavailable")
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(log, w, r, http.StatusInternalServerError, "internal server error")
	}
}
