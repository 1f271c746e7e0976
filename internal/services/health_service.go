package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"hotelcomp/internal/comparables"
	"hotelcomp/internal/config"
	"hotelcomp/internal/infrastructure"
	"hotelcomp/pkg/contracts"
)

// Health status values
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// HealthService provides health check functionality
type HealthService struct {
	version   contracts.VersionInfo
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Version   string                      `json:"version"`
	Uptime    string                      `json:"uptime,omitempty"`
	Runtime   *infrastructure.SystemStats `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth    `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. paths may be nil, in which
// case readiness only covers the engine.
func NewHealthService(paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:   contracts.GetVersionInfo(),
		paths:     paths,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
	}
}

// ReadinessCheck reports whether the service can take comparison runs:
// the state rate table is loaded and the reports directory is writable.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Services: map[string]ServiceHealth{
			"engine":  hs.checkEngine(),
			"reports": hs.checkReportsDir(),
		},
	}

	for name, service := range status.Services {
		if service.Status != StatusReady {
			status.Status = StatusNotReady
			hs.logger.WarnContext(ctx, "dependency not ready",
				slog.String("check", name),
				slog.String("message", service.Message),
			)
		}
	}

	return status
}

// LivenessCheck returns liveness status with a runtime sample
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.ReadSystemStats(hs.startTime)
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Uptime:    stats.Uptime.Round(time.Second).String(),
		Runtime:   &stats,
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return hs.version
}

// StartTime returns when the service was created
func (hs *HealthService) StartTime() time.Time {
	return hs.startTime
}

func (hs *HealthService) checkEngine() ServiceHealth {
	n := len(comparables.StateTaxRates())
	if n == 0 {
		return ServiceHealth{Status: StatusNotReady, Message: "state tax rate table is empty"}
	}
	return ServiceHealth{Status: StatusReady, Message: fmt.Sprintf("%d state tax rates loaded (%s)", n, runtime.Version())}
}

func (hs *HealthService) checkReportsDir() ServiceHealth {
	if hs.paths == nil {
		return ServiceHealth{Status: StatusReady, Message: "reports directory not configured"}
	}

	dir := hs.paths.ReportsDir
	info, err := os.Stat(dir)
	if err != nil {
		return ServiceHealth{Status: StatusNotReady, Message: fmt.Sprintf("reports directory unavailable: %v", err)}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: StatusNotReady, Message: fmt.Sprintf("%s is not a directory", dir)}
	}

	probe, err := os.CreateTemp(dir, ".ready-*")
	if err != nil {
		return ServiceHealth{Status: StatusNotReady, Message: fmt.Sprintf("cannot write to reports directory: %v", err)}
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return ServiceHealth{Status: StatusReady}
}
