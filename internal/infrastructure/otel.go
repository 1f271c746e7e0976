package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"hotelcomp/internal/config"
)

const (
	ServiceName = "hotelcomp"
	// InstrumentationName names the tracer and meter of this module
	InstrumentationName = "hotelcomp"
)

// Trace exporters understood by InitializeOTel
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)

// OTelConfig selects which signals are exported and how the process
// identifies itself
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders is what InitializeOTel hands to the HTTP layer and the
// services. Tracer, Meter and Metrics are never nil.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	// PrometheusHTTP serves the metrics registry; nil when metrics are off
	PrometheusHTTP http.Handler
	Metrics        *BusinessMetrics
	Logger         *slog.Logger
}

// OTelConfigFromTelemetry converts the telemetry section of the app config
func OTelConfigFromTelemetry(cfg config.TelemetryConfig, version string) *OTelConfig {
	out := DefaultOTelConfig()
	out.ServiceVersion = version
	if cfg.ServiceName != "" {
		out.ServiceName = cfg.ServiceName
	}
	if cfg.Environment != "" {
		out.Environment = cfg.Environment
	}
	if cfg.TraceExporter != "" {
		out.TraceExporter = cfg.TraceExporter
	}
	out.EnableTracing = cfg.Enabled && out.TraceExporter != TraceExporterNone
	out.EnableMetrics = cfg.Enabled && cfg.MetricsEnabled
	return out
}

// DefaultOTelConfig exports Prometheus metrics and no traces
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "dev",
		Environment:    env,
		TraceExporter:  TraceExporterNone,
		EnableMetrics:  true,
		SampleRatio:    1.0,
	}
}

// InitializeOTel sets up tracing and metrics. Business metrics are always
// available on the returned providers; they are no-ops when metrics are off.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	logger = WithComponent(logger, "telemetry")
	ctx := context.Background()

	p := &OTelProviders{
		Logger: logger,
		Tracer: otel.Tracer(InstrumentationName),
		Meter:  noop.NewMeterProvider().Meter(InstrumentationName),
	}
	res := newResource(cfg)

	if cfg.EnableTracing {
		if err := p.startTracing(cfg, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if cfg.EnableMetrics {
		if err := p.startMetrics(cfg, res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	metrics, err := CreateBusinessMetrics(p.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	p.Metrics = metrics

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "telemetry ready",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing", p.TracerProvider != nil),
		slog.Bool("metrics", p.MeterProvider != nil),
	)
	return p, nil
}

func newResource(cfg *OTelConfig) *resource.Resource {
	host, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		semconv.ServiceInstanceIDKey.String(host+"-"+strconv.FormatInt(time.Now().Unix(), 10)),
	)
}

func (p *OTelProviders) startTracing(cfg *OTelConfig, res *resource.Resource) error {
	if cfg.TraceExporter == TraceExporterNone {
		return nil
	}
	if cfg.TraceExporter != TraceExporterStdout {
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	p.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	p.Tracer = p.TracerProvider.Tracer(InstrumentationName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(p.TracerProvider)
	return nil
}

// startMetrics exports through Prometheus on a registry owned by p, so
// initializing twice in one process never collides on registration
func (p *OTelProviders) startMetrics(cfg *OTelConfig, res *resource.Resource) error {
	registry := promclient.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	p.Meter = p.MeterProvider.Meter(InstrumentationName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	p.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	otel.SetMeterProvider(p.MeterProvider)

	if err := RegisterRuntimeMetrics(p.Meter, time.Now()); err != nil {
		return fmt.Errorf("failed to register runtime metrics: %w", err)
	}
	return nil
}

// Shutdown flushes and stops whichever providers were started
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	p.Logger.DebugContext(ctx, "telemetry stopped")
	return nil
}
