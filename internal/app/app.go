package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"hotelcomp/internal/config"
	apierrors "hotelcomp/internal/errors"
	"hotelcomp/internal/infrastructure"
	customMiddleware "hotelcomp/internal/middleware"
	"hotelcomp/internal/services"
	handlers "hotelcomp/internal/transport/http"
	"hotelcomp/pkg/contracts"
)

// AppName is the human-readable application name
const AppName = "Hotel Comparable Matcher"

// Application represents the main application container
type Application struct {
	Config            *config.Config
	Paths             *config.Paths
	Router            *chi.Mux
	Server            *http.Server
	ComparisonService *services.ComparisonService
	HealthService     *services.HealthService
	OTelProviders     *infrastructure.OTelProviders
	Logger            *slog.Logger

	errorHandler *apierrors.ErrorHandler
	validator    *customMiddleware.Validator
}

// New loads configuration from the environment and config files, sets up
// logging and builds the application
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	// A relative log file lives in the logs directory next to the binary
	if cfg.Logging.FilePath != "" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplication(cfg, paths, logger)
}

// NewApplication wires services, handlers and the HTTP server from an
// already loaded configuration
func NewApplication(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	if paths != nil {
		if err := paths.EnsureDirectories(); err != nil {
			return nil, fmt.Errorf("failed to ensure directories: %w", err)
		}
		logger.Info("Application paths",
			slog.String("data_dir", paths.DataDir),
			slog.String("reports_dir", paths.ReportsDir),
			slog.String("logs_dir", paths.LogsDir))
	}

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFromTelemetry(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		OTelProviders: otelProviders,
		Logger:        logger,
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		validator:     customMiddleware.NewValidator(),
	}

	a.ComparisonService = services.NewComparisonService(cfg.Comparison, paths, otelProviders.Metrics, logger)
	a.HealthService = services.NewHealthService(paths, logger)

	if err := a.setupRouter(); err != nil {
		return nil, err
	}
	a.createServer()

	return a, nil
}

// setupRouter builds the middleware chain and mounts every handler.
// Order: RequestID, RealIP, OTel, Logger, Recoverer, then the security
// layers and body limit.
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimw.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		return fmt.Errorf("failed to create OpenTelemetry middleware: %w", err)
	}
	r.Use(otelMiddleware.Handler)

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.RecoveryMiddleware(a.errorHandler))
	r.Use(chimw.StripSlashes)
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	if a.Config.Server.MaxUploadBytes > 0 {
		r.Use(customMiddleware.MaxBodySize(a.Config.Server.MaxUploadBytes))
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	r.Mount("/metrics", handlers.NewMetricsHandler(
		a.OTelProviders.PrometheusHTTP, a.HealthService.StartTime()).Routes())

	a.Router = r
	return nil
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	comparisonHandler := handlers.NewComparisonHandler(a.ComparisonService, a.validator, a.Logger, a.errorHandler)
	propertyHandler := handlers.NewPropertyHandler(a.ComparisonService, a.validator, a.Logger, a.errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)
		})

		r.Route("/v1", func(r chi.Router) {
			r.Mount("/comparisons", comparisonHandler.Routes())
			r.Mount("/properties", propertyHandler.Routes())
			r.Mount("/reference", handlers.NewReferenceHandler().Routes())
			r.Mount("/reports", handlers.NewReportHandler(a.ComparisonService, a.Logger, a.errorHandler).Routes())
		})
	})
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-Run-ID",
			"X-Unknown-Addresses",
			"X-Report-Name",
			"Content-Disposition",
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. A listener failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	status := a.HealthService.ReadinessCheck(ctx)
	if status.Status != services.StatusReady {
		a.Logger.WarnContext(ctx, "Startup readiness check failed", slog.Any("services", status.Services))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("log file close error: %w", err))
	}
	return errors.Join(errs...)
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	return a.Stop(context.Background())
}
