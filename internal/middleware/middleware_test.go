package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcomp/internal/infrastructure"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestID(t *testing.T) {
	var seenReqID, seenTraceID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenReqID = chimw.GetReqID(r.Context())
		seenTraceID = infrastructure.GetTraceID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, seenReqID)
		assert.Equal(t, id, seenTraceID)
	})

	t.Run("reused from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seenReqID)
	})
}

func TestGetRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))

	ctx := infrastructure.WithTraceID(req.Context(), "trace-only")
	assert.Equal(t, "trace-only", GetRequestID(ctx))
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.Equal(t, "/api/v1/comparisons", entry["path"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestRequestID_RejectsMalformedInbound(t *testing.T) {
	for _, inbound := range []string{strings.Repeat("a", 200), "two words", "line\nbreak"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, inbound)
		rec := httptest.NewRecorder()
		RequestID(okHandler()).ServeHTTP(rec, req)

		assert.Len(t, rec.Header().Get(RequestIDHeader), 36, "inbound %q", inbound)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.0001, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := RequestID(rl.Handler(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retry, 1)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.EqualValues(t, http.StatusTooManyRequests, problem["status"])
	assert.EqualValues(t, retry, problem["retry_after"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), problem["trace_id"])
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abc")))
	assert.NoError(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcdefgh")))
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, readErr, &tooLarge)
}

func TestCORS(t *testing.T) {
	h := CORS(CORSConfig{AllowedOrigins: []string{"http://localhost:8080"}})(okHandler())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestOTelMiddleware_RecordsRoutePattern(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	otelMW, err := NewOTelMiddleware(providers)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(otelMW.Handler)
	r.Get("/api/v1/reference/{table}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reference/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	scrape := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/api/v1/reference/{table}"`)
	assert.Contains(t, body, `status_code="404"`)
}

func TestNewOTelMiddleware_RequiresProviders(t *testing.T) {
	_, err := NewOTelMiddleware(nil)
	assert.Error(t, err)
}
