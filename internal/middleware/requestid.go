package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"hotelcomp/internal/infrastructure"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID assigns every request an id, reusing a well-formed inbound
// X-Request-ID. The id is stored under chi's request id key and as the
// logging trace id. Install it first.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := inboundRequestID(r)
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(infrastructure.WithTraceID(ctx, id)))
	})
}

// inboundRequestID accepts a caller's id only if it is short printable
// ASCII; anything else is replaced so it cannot pollute the logs
func inboundRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if id == "" || len(id) > maxRequestIDLen {
		return uuid.NewString()
	}
	if strings.IndexFunc(id, func(c rune) bool { return c < '!' || c > '~' }) >= 0 {
		return uuid.NewString()
	}
	return id
}

// GetRequestID returns the request id, falling back to the trace id
func GetRequestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return infrastructure.GetTraceID(ctx)
}
