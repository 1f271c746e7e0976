package infrastructure

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"hotelcomp/pkg/contracts/domain"
)

// BusinessMetrics are the instruments recorded by the HTTP layer and the
// comparison service. All Record methods accept a nil receiver.
type BusinessMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	ComparisonRunsTotal    metric.Int64Counter
	ComparisonRunDuration  metric.Float64Histogram
	ComparisonSubjects     metric.Int64Counter
	ComparisonSelections   metric.Int64Histogram
	ComparisonRunsRejected metric.Int64Counter

	DatasetRowsLoaded  metric.Int64Counter
	DatasetRowsDropped metric.Int64Counter

	ReportsWritten metric.Int64Counter
}

// instruments creates instruments on one meter and collects their errors
// so callers check once at the end
type instruments struct {
	meter metric.Meter
	errs  []error
}

func (b *instruments) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return c
}

func (b *instruments) gauge(name, desc string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return c
}

func (b *instruments) seconds(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	b.errs = append(b.errs, err)
	return h
}

func (b *instruments) sizes(name, desc string, bounds ...float64) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc),
		metric.WithExplicitBucketBoundaries(bounds...))
	b.errs = append(b.errs, err)
	return h
}

// CreateBusinessMetrics registers every business instrument on meter
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	b := &instruments{meter: meter}
	m := &BusinessMetrics{
		HTTPRequestsTotal:   b.counter("http_requests_total", "HTTP requests served, by route and status"),
		HTTPRequestDuration: b.seconds("http_request_duration_seconds", "HTTP request latency"),
		HTTPActiveRequests:  b.gauge("http_active_requests", "HTTP requests in flight"),

		ComparisonRunsTotal:    b.counter("comparison_runs_total", "Completed comparison runs"),
		ComparisonRunDuration:  b.seconds("comparison_run_duration_seconds", "Comparison run duration"),
		ComparisonSubjects:     b.counter("comparison_subjects_total", "Subjects processed, by outcome"),
		ComparisonSelections:   b.sizes("comparison_selection_size", "Comparables selected per matched subject", 1, 2, 3, 4, 5),
		ComparisonRunsRejected: b.counter("comparison_runs_rejected_total", "Runs refused by parameter checks, by field"),

		DatasetRowsLoaded:  b.counter("dataset_rows_loaded_total", "Dataset rows accepted by the loader"),
		DatasetRowsDropped: b.counter("dataset_rows_dropped_total", "Dataset rows dropped by the loader, by reason"),

		ReportsWritten: b.counter("reports_written_total", "Report files written, by format"),
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordHTTPRequest counts one served request
func (m *BusinessMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, seconds, attrs)
}

// TrackInFlight raises the in-flight gauge and returns the func that lowers it
func (m *BusinessMetrics) TrackInFlight(ctx context.Context) func() {
	if m == nil {
		return func() {}
	}
	m.HTTPActiveRequests.Add(ctx, 1)
	return func() { m.HTTPActiveRequests.Add(ctx, -1) }
}

// RecordComparisonRun records the counters of a finished run
func (m *BusinessMetrics) RecordComparisonRun(ctx context.Context, summary domain.RunSummary, results []domain.ComparisonResult) {
	if m == nil {
		return
	}

	m.ComparisonRunsTotal.Add(ctx, 1)
	m.ComparisonRunDuration.Record(ctx, summary.Duration.Seconds())
	m.ComparisonSubjects.Add(ctx, int64(summary.MatchedCount),
		metric.WithAttributes(attribute.String("outcome", "matched")))
	m.ComparisonSubjects.Add(ctx, int64(summary.NoMatchCount),
		metric.WithAttributes(attribute.String("outcome", "no_match")))

	for _, r := range results {
		if r.Matched() {
			m.ComparisonSelections.Record(ctx, int64(len(r.Selection)))
		}
	}
}

// RecordRejectedRun counts a run refused before any subject was processed
func (m *BusinessMetrics) RecordRejectedRun(ctx context.Context, field string) {
	if m == nil {
		return
	}
	m.ComparisonRunsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

// RecordDatasetLoad records accepted and dropped row counts
func (m *BusinessMetrics) RecordDatasetLoad(ctx context.Context, loaded int, dropped map[string]int) {
	if m == nil {
		return
	}
	m.DatasetRowsLoaded.Add(ctx, int64(loaded))
	for reason, n := range dropped {
		m.DatasetRowsDropped.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", reason)))
	}
}

// RecordReport counts a written report
func (m *BusinessMetrics) RecordReport(ctx context.Context, format string) {
	if m == nil {
		return
	}
	m.ReportsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}
