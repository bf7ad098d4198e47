package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider ships zap records to the collector through the OTel log SDK
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	logger   *zap.Logger
}

func NewLoggerProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{logger: logger}
	if !cfg.Enabled || !cfg.LogsEnabled {
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp.provider)
	logger.Info("OpenTelemetry LoggerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint))
	return lp, nil
}

// NewLoggerProviderWithProcessor is the test hook for an in-memory exporter
func NewLoggerProviderWithProcessor(p sdklog.Processor, logger *zap.Logger) *LoggerProvider {
	return &LoggerProvider{provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(p)), logger: logger}
}

func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := lp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}
	return nil
}

func (lp *LoggerProvider) IsEnabled() bool {
	return lp.provider != nil
}

// ZapCore returns a core that forwards records at or above level to the
// collector. It is a no-op core when logs export is disabled.
func (lp *LoggerProvider) ZapCore(serviceName string, level zapcore.Level) zapcore.Core {
	if lp == nil || lp.provider == nil {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(serviceName, otelzap.WithLoggerProvider(lp.provider))
	return &levelFilterCore{Core: core, minLevel: level}
}

// levelFilterCore drops entries below minLevel; otelzap itself has no level
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
