package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM output through zap, picking up the request-scoped
// logger from the query context when one is attached.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	fullSQL       bool
}

// NewGormLogger creates a GORM logger. SQL text is only included when
// fullSQL is set, since bound values may contain personal data.
func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, fullSQL bool) *GormLogger {
	return &GormLogger{
		base:          base.Named("gorm"),
		level:         level,
		slowThreshold: slowThreshold,
		fullSQL:       fullSQL,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger(ctx).Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger(ctx).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{zap.Duration("elapsed", elapsed), zap.Int64("rows", rows)}
	if l.fullSQL {
		fields = append(fields, zap.String("sql", sql))
	}

	log := l.logger(ctx)
	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		log.Error("SQL Error", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		log.Warn("Slow SQL", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		log.Debug("SQL Query", fields...)
	}
}

func (l *GormLogger) logger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if _, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
			return L(ctx).Named("gorm")
		}
	}
	return l.base
}

// GormLevel maps the application log level to a GORM log level
func GormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}
