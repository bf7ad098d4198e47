package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics component is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

const defaultExportInterval = 60 * time.Second

// MeterProvider wraps the SDK meter provider with lifecycle management
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider exports metrics over OTLP gRPC when both telemetry and
// metrics are enabled
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled || !cfg.MetricsEnabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(defaultExportInterval))
	mp = NewMeterProviderWithReader(reader, logger, sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp.provider)
	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	)
	return mp, nil
}

// NewMeterProviderWithReader builds a provider around reader without
// touching the global provider; tests pass a manual reader
func NewMeterProviderWithReader(reader sdkmetric.Reader, logger *zap.Logger, opts ...sdkmetric.Option) *MeterProvider {
	opts = append(opts, sdkmetric.WithReader(reader))
	return &MeterProvider{provider: sdkmetric.NewMeterProvider(opts...), logger: logger}
}

func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	mp.logger.Info("OpenTelemetry MeterProvider shutdown complete")
	return nil
}

func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Counter records monotonically increasing values
type Counter struct {
	counter metric.Int64Counter
}

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// FloatCounter records monotonically increasing amounts such as money
type FloatCounter struct {
	counter metric.Float64Counter
}

func NewFloatCounter(meter metric.Meter, name, description, unit string) (*FloatCounter, error) {
	c, err := meter.Float64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &FloatCounter{counter: c}, nil
}

func (c *FloatCounter) Add(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// HistogramOpts configures a histogram
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

type Histogram struct {
	histogram metric.Float64Histogram
}

func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	hopts := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(opts.Boundaries) > 0 {
		hopts = append(hopts, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, hopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", opts.Name, err)
	}
	return &Histogram{histogram: h}, nil
}

func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// RecordDuration records d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

var (
	AttrUserID         = attribute.Key("user_id")
	AttrRole           = attribute.Key("role")
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrOrderStatus    = attribute.Key("order_status")
	AttrExpenseType    = attribute.Key("expense_type")
	AttrExpenseStatus  = attribute.Key("expense_status")
	AttrPartnerKind    = attribute.Key("partner_kind")
)

var (
	// HTTPDurationBuckets in seconds
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	// SizeBuckets in bytes
	SizeBuckets = []float64{100, 1000, 10000, 100000, 1000000, 5000000}
)
