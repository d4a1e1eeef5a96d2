package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS wraps next with permissive cross-origin headers: any origin, the
// common methods, and any request header. Preflight requests are answered
// directly.
func CORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         86400,
	})(next)
}
