package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hotelcomp/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus scrape endpoint and a JSON runtime
// snapshot
type MetricsHandler struct {
	prometheus http.Handler
	startTime  time.Time
}

// NewMetricsHandler creates a new metrics handler. A nil prometheus
// handler makes the scrape endpoint answer 404.
func NewMetricsHandler(prometheus http.Handler, startTime time.Time) *MetricsHandler {
	return &MetricsHandler{prometheus: prometheus, startTime: startTime}
}

// Routes sets up the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Scrape)
	r.Get("/runtime", h.Runtime)
	return r
}

// Scrape handles GET /metrics
func (h *MetricsHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	if h.prometheus == nil {
		http.NotFound(w, r)
		return
	}
	h.prometheus.ServeHTTP(w, r)
}

// Runtime handles GET /metrics/runtime
func (h *MetricsHandler) Runtime(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, infrastructure.ReadSystemStats(h.startTime))
}
