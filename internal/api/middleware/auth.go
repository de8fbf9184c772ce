package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/edvin/edgeid/internal/api/response"
)

// Auth returns a middleware that validates the X-API-Key header against the
// configured key. Comparison runs over fixed-length digests so timing does
// not leak key length or prefix matches.
func Auth(apiKey string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(apiKey))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			got := sha256.Sum256([]byte(key))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				response.WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
