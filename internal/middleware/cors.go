// Package middleware provides reusable HTTP middleware for the quote intake
// and email services.
package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORSOptions is the configurable CORS policy. Empty Methods or Headers fall
// back to the defaults the API needs.
type CORSOptions struct {
	Origins          []string
	AllowCredentials bool
	Methods          []string
	Headers          []string
}

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Content-Type", "Authorization"}
)

// NewCORSHandler returns a middleware that applies CORS headers per opts.
// Each origin must be a full origin (scheme + host, no trailing slash) or "*".
// A "*" entry in Methods or Headers allows any.
func NewCORSHandler(opts CORSOptions) func(http.Handler) http.Handler {
	methods := opts.Methods
	switch {
	case len(methods) == 0:
		methods = defaultCORSMethods
	case slices.Contains(methods, "*"):
		methods = []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		}
	}
	headers := opts.Headers
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.Origins,
		AllowCredentials: opts.AllowCredentials,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
