package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal     metric.Int64Counter
	HTTPRequestDuration   metric.Float64Histogram
	ChatRepliesTotal      metric.Int64Counter
	UpstreamRequestsTotal metric.Int64Counter
	UpstreamDuration      metric.Float64Histogram
	CalendarQueriesTotal  metric.Int64Counter
	PlacesSelectedTotal   metric.Int64Counter
	SelectionSubscribers  metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Call it after the provider is installed so the instruments are exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("juanito")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.ChatRepliesTotal, err = meter.Int64Counter(
			"chat_replies_total",
			metric.WithDescription("Guide replies by source (llm or fallback)"),
			metric.WithUnit("{reply}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_replies_total: %v", err)
		}

		m.UpstreamRequestsTotal, err = meter.Int64Counter(
			"upstream_requests_total",
			metric.WithDescription("Calls to third-party providers by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_requests_total: %v", err)
		}

		m.UpstreamDuration, err = meter.Float64Histogram(
			"upstream_request_duration_seconds",
			metric.WithDescription("Duration of third-party provider calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_request_duration_seconds: %v", err)
		}

		m.CalendarQueriesTotal, err = meter.Int64Counter(
			"calendar_queries_total",
			metric.WithDescription("Calendar month and day lookups"),
			metric.WithUnit("{query}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create calendar_queries_total: %v", err)
		}

		m.PlacesSelectedTotal, err = meter.Int64Counter(
			"places_selected_total",
			metric.WithDescription("Place selections broadcast to the map"),
			metric.WithUnit("{selection}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_selected_total: %v", err)
		}

		m.SelectionSubscribers, err = meter.Int64UpDownCounter(
			"selection_subscribers",
			metric.WithDescription("Open place-selection streams"),
			metric.WithUnit("{subscriber}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create selection_subscribers: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, creating them against whatever provider is
// installed when called first (a no-op provider in tests).
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// Upstream records one provider call.
func (m *AppMetrics) Upstream(ctx context.Context, provider, outcome string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamDuration.Record(ctx, seconds, attrs)
}
