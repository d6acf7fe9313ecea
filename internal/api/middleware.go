package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"autocare/internal/apperrors"
)

// RequestTimeout bounds every request. The store is a network collaborator;
// expiry surfaces as a retryable unavailable error, not as proof the write
// did not complete server-side.
func RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps a service error onto its HTTP status and a short
// human-readable message.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("Unexpected error: %v", err)
		writeJSON(w, status, map[string]string{"error": "Error while processing request"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
