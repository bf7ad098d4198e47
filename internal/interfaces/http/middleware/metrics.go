package middleware

import (
	"context"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter, "http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	requestSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_size_bytes",
		Description: "HTTP request body size distribution in bytes",
		Unit:        "By",
		Boundaries:  telemetry.SizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  telemetry.SizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestSize:     requestSize,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics collects request count, latency and sizes per route. It is a
// no-op when the meter provider is nil or disabled.
func HTTPMetrics(mp *telemetry.MeterProvider) gin.HandlerFunc {
	if mp == nil || !mp.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"))
}

// HTTPMetricsWithMeter builds the middleware on an existing meter
func HTTPMetricsWithMeter(meter metric.Meter) gin.HandlerFunc {
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		requestSize := c.Request.ContentLength

		m.activeRequests.Add(ctx, 1)
		c.Next()
		m.activeRequests.Add(ctx, -1)

		m.record(ctx, c, time.Since(start), requestSize)
	}
}

func (m *httpMetrics) record(ctx context.Context, c *gin.Context, d time.Duration, requestSize int64) {
	// route pattern, not the raw path, to keep cardinality bounded
	route := c.FullPath()
	if route == "" {
		route = "unknown"
	}
	base := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(c.Request.Method),
		telemetry.AttrHTTPRoute.String(route),
	}

	counted := append([]attribute.KeyValue{telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())}, base...)
	if role := GetJWTRole(c); role != "" {
		counted = append(counted, telemetry.AttrRole.String(role.String()))
	}
	m.requestTotal.Inc(ctx, counted...)
	m.requestDuration.RecordDuration(ctx, d, base...)

	if requestSize > 0 {
		m.requestSize.Record(ctx, float64(requestSize), base...)
	}
	if size := c.Writer.Size(); size > 0 {
		m.responseSize.Record(ctx, float64(size), base...)
	}
}

// HTTPMetricsStatusGroup groups status codes by class
func HTTPMetricsStatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}
