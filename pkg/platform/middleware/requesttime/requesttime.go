// Package requesttime pins one "now" per request.
// Every timestamp written while serving the request (audit events, status
// changes, validity checks) uses the same instant.
package requesttime

import (
	"net/http"
	"time"

	"en13813/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return NewMiddleware(time.Now)(next)
}

// NewMiddleware is Middleware with an injectable clock.
func NewMiddleware(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
