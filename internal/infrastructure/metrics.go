package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DashboardMetrics holds the application metrics. A nil *DashboardMetrics
// is valid and records nothing.
type DashboardMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Dataset metrics
	DatasetLoads        metric.Int64Counter
	DatasetLoadDuration metric.Float64Histogram
	DatasetRows         metric.Int64Gauge
	MalformedRows       metric.Int64Counter

	// Cache metrics
	CacheHits          metric.Int64Counter
	CacheMisses        metric.Int64Counter
	CacheInvalidations metric.Int64Counter

	// Pipeline metrics
	AggregationDuration metric.Float64Histogram
	ExportsTotal        metric.Int64Counter
}

// CreateDashboardMetrics registers every instrument on meter
func CreateDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	m := &DashboardMetrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.DatasetLoads, err = meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Dataset file loads by outcome"),
	); err != nil {
		return nil, err
	}

	if m.DatasetLoadDuration, err = meter.Float64Histogram(
		"dataset_load_duration_seconds",
		metric.WithDescription("Time spent reading and parsing the dataset"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.DatasetRows, err = meter.Int64Gauge(
		"dataset_rows",
		metric.WithDescription("Number of rows in the most recently loaded dataset"),
	); err != nil {
		return nil, err
	}

	if m.MalformedRows, err = meter.Int64Counter(
		"dataset_malformed_rows_total",
		metric.WithDescription("Rows with a field that could not be parsed"),
	); err != nil {
		return nil, err
	}

	if m.CacheHits, err = meter.Int64Counter(
		"dataset_cache_hits_total",
		metric.WithDescription("Dataset cache hits"),
	); err != nil {
		return nil, err
	}

	if m.CacheMisses, err = meter.Int64Counter(
		"dataset_cache_misses_total",
		metric.WithDescription("Dataset cache misses"),
	); err != nil {
		return nil, err
	}

	if m.CacheInvalidations, err = meter.Int64Counter(
		"dataset_cache_invalidations_total",
		metric.WithDescription("Dataset cache entries dropped, by reason"),
	); err != nil {
		return nil, err
	}

	if m.AggregationDuration, err = meter.Float64Histogram(
		"aggregation_duration_seconds",
		metric.WithDescription("Time spent computing dashboard aggregates"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.ExportsTotal, err = meter.Int64Counter(
		"exports_total",
		metric.WithDescription("Aggregate exports by format"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordHTTPRequest records a finished request
func (m *DashboardMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, d.Seconds(), attrs)
}

// TrackActiveRequest adjusts the in-flight request gauge
func (m *DashboardMetrics) TrackActiveRequest(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.HTTPActiveRequests.Add(ctx, delta)
}

// RecordDatasetLoad records one load attempt of the dataset file
func (m *DashboardMetrics) RecordDatasetLoad(ctx context.Context, rows, malformed int, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.DatasetLoadDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("status", status)))
	if err != nil {
		return
	}
	m.DatasetRows.Record(ctx, int64(rows))
	if malformed > 0 {
		m.MalformedRows.Add(ctx, int64(malformed))
	}
}

// RecordCacheHit counts a dataset served from cache
func (m *DashboardMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1)
}

// RecordCacheMiss counts a dataset that had to be loaded
func (m *DashboardMetrics) RecordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1)
}

// RecordCacheInvalidation counts a dropped cache entry. reason is
// "changed" for a stale file signature or "explicit" for a manual reload.
func (m *DashboardMetrics) RecordCacheInvalidation(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.CacheInvalidations.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordAggregation records the time spent building aggregates for one selection
func (m *DashboardMetrics) RecordAggregation(ctx context.Context, filtered bool, d time.Duration) {
	if m == nil {
		return
	}
	m.AggregationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("filtered", filtered)))
}

// RecordExport counts a generated export
func (m *DashboardMetrics) RecordExport(ctx context.Context, format, view string) {
	if m == nil {
		return
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("view", view),
	))
}
