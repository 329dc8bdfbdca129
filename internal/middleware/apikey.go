package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// APIKeyMiddleware guards a handler behind the shared x-api-key header. The
// comparison is exact; an empty configured key rejects everything.
func APIKeyMiddleware(apiKey string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("x-api-key")
			if apiKey == "" || key != apiKey {
				logger.Warn().Str("path", r.URL.Path).Msg("Rejected request with invalid API key")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "Unauthorized",
					"details": "Invalid API key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
