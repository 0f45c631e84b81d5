package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceName identifies this service in traces and metrics.
	ServiceName = "stocklens"
	// ServiceVersion is reported as a resource attribute.
	ServiceVersion = "1.0.0"
	// MeterName scopes the instruments created by this package.
	MeterName = "stocklens"
)

// OTelConfig holds OpenTelemetry configuration.
type OTelConfig struct {
	Environment   string
	EnableTracing bool
	EnableMetrics bool
	SampleRatio   float64
}

// DefaultOTelConfig samples everything and enables both signals; suitable
// for development and small deployments.
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		Environment:   "development",
		EnableTracing: true,
		EnableMetrics: true,
		SampleRatio:   1.0,
	}
}

// OTelProviders holds the initialized providers and derived instruments.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Fetch          *FetchMetrics
	logger         *slog.Logger
}

// InitializeOTel sets up tracing (stdout exporter) and metrics (Prometheus
// exporter) and returns the providers.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{logger: logger}

	if cfg.EnableTracing {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(MeterName)
	}

	if cfg.EnableMetrics {
		exporter, err := otelprom.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.Handler()

		providers.Fetch, err = NewFetchMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create fetch metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry initialized",
		slog.Bool("tracing", cfg.EnableTracing),
		slog.Bool("metrics", cfg.EnableMetrics),
		slog.String("environment", cfg.Environment))

	return providers, nil
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FetchMetrics instruments the provider acquisition layer: one logical
// fetch may spend several attempts rotating through the credential pool.
type FetchMetrics struct {
	Fetches     metric.Int64Counter
	Attempts    metric.Int64Counter
	Rotations   metric.Int64Counter
	FetchTime   metric.Float64Histogram
}

// NewFetchMetrics creates the acquisition instruments on the given meter.
func NewFetchMetrics(meter metric.Meter) (*FetchMetrics, error) {
	fetches, err := meter.Int64Counter(
		"provider_fetches_total",
		metric.WithDescription("Logical provider fetches by resource and outcome"),
	)
	if err != nil {
		return nil, err
	}

	attempts, err := meter.Int64Counter(
		"provider_attempts_total",
		metric.WithDescription("Individual provider attempts by classification"),
	)
	if err != nil {
		return nil, err
	}

	rotations, err := meter.Int64Counter(
		"provider_key_rotations_total",
		metric.WithDescription("Credential rotations caused by rate limits or advisories"),
	)
	if err != nil {
		return nil, err
	}

	fetchTime, err := meter.Float64Histogram(
		"provider_fetch_duration_seconds",
		metric.WithDescription("Logical fetch duration including rotation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &FetchMetrics{
		Fetches:   fetches,
		Attempts:  attempts,
		Rotations: rotations,
		FetchTime: fetchTime,
	}, nil
}

// RecordFetch records one completed logical fetch.
func (m *FetchMetrics) RecordFetch(ctx context.Context, resource, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("outcome", outcome),
	)
	m.Fetches.Add(ctx, 1, attrs)
	m.FetchTime.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordAttempt records one classified provider attempt.
func (m *FetchMetrics) RecordAttempt(ctx context.Context, classification string) {
	if m == nil {
		return
	}
	m.Attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("classification", classification),
	))
}

// RecordRotation records one credential rotation.
func (m *FetchMetrics) RecordRotation(ctx context.Context) {
	if m == nil {
		return
	}
	m.Rotations.Add(ctx, 1)
}
