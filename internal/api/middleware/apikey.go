package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/response"
)

// APIKeyMiddleware guards administrative endpoints with a shared key carried
// in the X-API-Key header, compared against the configured expected key.
// Requests are rejected outright when the server has no key configured.
func APIKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				response.RespondError(w, http.StatusServiceUnavailable, "admin endpoints disabled", "No API key configured")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
