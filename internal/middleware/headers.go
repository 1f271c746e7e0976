package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// MaxBodySize caps request bodies. Reading past the limit fails with
// *http.MaxBytesError, which the error handler maps to 413.
func MaxBodySize(limit int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets the response hardening headers. The API serves no
// HTML, so the content security policy denies everything.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// CORSConfig holds CORS configuration. An empty AllowedOrigins admits
// every origin.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Logger           *slog.Logger
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// CORS answers preflight requests with 204 and marks allowed origins on
// every response
func CORS(cfg CORSConfig) func(next http.Handler) http.Handler {
	methods := joinOr(cfg.AllowedMethods, "GET, POST, OPTIONS")
	headers := joinOr(cfg.AllowedHeaders, "Accept, Content-Type, "+RequestIDHeader)
	exposed := joinOr(cfg.ExposedHeaders, RequestIDHeader+", Content-Disposition")
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = 300
	}

	anyOrigin := len(cfg.AllowedOrigins) == 0
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			anyOrigin = true
		}
		origins[strings.ToLower(o)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && (anyOrigin || origins[strings.ToLower(origin)])

			h := w.Header()
			h.Add("Vary", "Origin")
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposed)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
			if cfg.Logger != nil {
				cfg.Logger.DebugContext(r.Context(), "CORS preflight",
					slog.String("origin", origin),
					slog.Bool("allowed", allowed),
				)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
