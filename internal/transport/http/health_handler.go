package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hotelcomp/internal/services"
	api "hotelcomp/pkg/contracts/api/v1"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toHealthResponse(h.service.HealthCheck(r.Context())))
}

// ReadinessCheck handles GET /api/health/ready. A not-ready service
// answers 503 so load balancers take it out of rotation.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := h.service.ReadinessCheck(r.Context())
	if status.Status != services.StatusReady {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, toHealthResponse(status))
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.LivenessCheck(r.Context()))
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version())
}

func toHealthResponse(status services.HealthStatus) api.HealthResponse {
	resp := api.HealthResponse{
		Status:    status.Status,
		Version:   status.Version,
		Timestamp: status.Timestamp,
		Uptime:    status.Uptime,
	}
	if len(status.Services) > 0 {
		resp.Checks = make(map[string]string, len(status.Services))
		for name, s := range status.Services {
			check := s.Status
			if s.Message != "" {
				check += ": " + s.Message
			}
			resp.Checks[name] = check
		}
	}
	return resp
}
