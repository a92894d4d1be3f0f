// Package metadata lifts request identity out of headers into the request
// context, where services read it through requestcontext.
package metadata

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"en13813/pkg/requestcontext"
)

const (
	HeaderRequestID = "X-Request-ID"
	// HeaderActor names the person acting; it feeds audit records only and is
	// never used for access decisions.
	HeaderActor = "X-Actor"

	maxHeaderLen = 128
)

// RequestMetadata stores the request id and actor in the context and echoes
// the request id on the response. A missing or oversized request id is
// replaced with a fresh UUID.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if requestID == "" || len(requestID) > maxHeaderLen {
			requestID = uuid.NewString()
		}
		actor := strings.TrimSpace(r.Header.Get(HeaderActor))
		if len(actor) > maxHeaderLen {
			actor = actor[:maxHeaderLen]
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		if actor != "" {
			ctx = requestcontext.WithActor(ctx, actor)
		}
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the client IP, honouring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// client, proxy1, proxy2, ...
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
