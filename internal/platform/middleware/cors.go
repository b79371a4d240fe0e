package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the landing form to be posted from the configured origins.
// An empty list rejects every cross-origin request.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}
	if len(allowedOrigins) == 0 {
		// go-chi/cors treats an empty origin list as "*".
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	return cors.Handler(opts)
}
