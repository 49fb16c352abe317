package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// CORSOptions configures cross-origin access to the storefront API.
type CORSOptions struct {
	AllowedOrigins []string // browser origins of the storefront/admin UIs, or ["*"]
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // seconds browsers may cache the preflight answer
}

// DefaultCORSOptions allows any origin, which suits the demo deployment where
// the catalogue is public and all writes sit behind bearer tokens. Pin
// AllowedOrigins to the real UI hosts when fronting a production store.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		MaxAge:         300,
	}
}

// CORS answers preflights and stamps the allow headers on every response
// whose Origin matches opts.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// First match wins; "*" admits every origin.
			allowed := ""
			for _, o := range opts.AllowedOrigins {
				if o == "*" || o == origin {
					allowed = o
					break
				}
			}

			if allowed != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if opts.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", fmt.Sprintf("%d", opts.MaxAge))
				}
			}

			// Preflights end here; they never reach a handler.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
