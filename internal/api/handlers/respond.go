package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// Helper functions shared by all handlers

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

// handleServiceError maps service errors onto HTTP responses: not-found
// errors keep their message, everything else is a generic 500 so internal
// details never leak to the storefront.
func handleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
		respondWithError(w, http.StatusNotFound, appErr.Message)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// parseCSV splits a comma-separated query parameter, dropping empty entries
// so trailing commas in hand-edited URLs don't produce phantom ids
func parseCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseIntOrDefault parses an integer query parameter, falling back to def
// when absent or malformed
func parseIntOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
