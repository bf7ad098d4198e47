package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQuery = 200 * time.Millisecond

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm plus callbacks that flag slow queries
// on the current span. Query variables are only recorded with logFullSQL.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, dbCfg config.DatabaseConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbCfg.DBName)}
	if !dbCfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQuery
	}
	if err := registerSlowQueryCallbacks(db, thresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("driver", dbCfg.Driver),
		zap.Duration("slow_query_threshold", thresh))
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, thresh time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, thresh) }

	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register("eyedist:timing_before_create", before),
		cb.Query().Before("gorm:query").Register("eyedist:timing_before_query", before),
		cb.Update().Before("gorm:update").Register("eyedist:timing_before_update", before),
		cb.Delete().Before("gorm:delete").Register("eyedist:timing_before_delete", before),
		cb.Row().Before("gorm:row").Register("eyedist:timing_before_row", before),
		cb.Raw().Before("gorm:raw").Register("eyedist:timing_before_raw", before),
		cb.Create().After("gorm:create").Register("eyedist:slow_query_create", after),
		cb.Query().After("gorm:query").Register("eyedist:slow_query_query", after),
		cb.Update().After("gorm:update").Register("eyedist:slow_query_update", after),
		cb.Delete().After("gorm:delete").Register("eyedist:slow_query_delete", after),
		cb.Row().After("gorm:row").Register("eyedist:slow_query_row", after),
		cb.Raw().After("gorm:raw").Register("eyedist:slow_query_raw", after),
	}
	return errors.Join(regs...)
}

func markSlowQuery(tx *gorm.DB, thresh time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > thresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", thresh.Milliseconds()),
		))
	}
}
