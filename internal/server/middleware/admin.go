package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminToken guards cache maintenance routes with a static shared token
// carried in the X-Admin-Token header, compared in constant time. With no
// token configured the routes answer 501, mirroring an unconfigured
// integration rather than an authorization failure.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, `{"title":"Not Implemented","status":501,"detail":"cache maintenance is not configured"}`, http.StatusNotImplemented)
				return
			}

			got := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"invalid admin token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
