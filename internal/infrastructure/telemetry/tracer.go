// Package telemetry wires OpenTelemetry traces, metrics and logs, the GORM
// tracing plugin and Pyroscope continuous profiling.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	otelpyroscope "github.com/grafana/otel-profiling-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

// TracerProvider wraps the SDK provider with lifecycle management
type TracerProvider struct {
	provider            *sdktrace.TracerProvider
	logger              *zap.Logger
	config              config.TelemetryConfig
	mu                  sync.Mutex
	spanProfilesEnabled bool
}

// NewTracerProvider exports spans over OTLP gRPC. With telemetry disabled
// the global no-op provider stays in place.
func NewTracerProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*TracerProvider, error) {
	tp := &TracerProvider{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Telemetry disabled, using no-op tracer provider")
		return tp, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	tp.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(tp.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry TracerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)
	return tp, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// EnableSpanProfiles links CPU profiles to spans. Call it after the
// profiler has started.
func (tp *TracerProvider) EnableSpanProfiles() {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.provider == nil || tp.spanProfilesEnabled {
		return
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.provider))
	tp.spanProfilesEnabled = true
	tp.logger.Info("Span profiles integration enabled")
}

func (tp *TracerProvider) SpanProfilesEnabled() bool {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.spanProfilesEnabled
}

// Shutdown flushes pending spans
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := tp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	tp.logger.Info("OpenTelemetry TracerProvider shutdown complete")
	return nil
}

func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.provider == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.provider.Tracer(name, opts...)
}

func (tp *TracerProvider) IsEnabled() bool {
	return tp.provider != nil
}
