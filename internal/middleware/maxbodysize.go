package middleware

import (
	"net/http"

	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// NewMaxBodySizeHandler caps request bodies at limit bytes. A declared
// Content-Length over the limit is answered with the 413 error envelope
// straight away; otherwise the body is wrapped in http.MaxBytesReader and
// httpx.DecodeJSON surfaces the overflow as the same 413.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				httpx.WriteError(w, r, &http.MaxBytesError{Limit: limit})
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
