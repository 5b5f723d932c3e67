package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "sparta-mortgage"

// InitMetrics wires an OpenTelemetry MeterProvider to a dedicated
// Prometheus registry and returns the /metrics handler for it.
func InitMetrics() (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}

// Metrics holds the application instruments.
type Metrics struct {
	requests     metric.Int64Counter
	duration     metric.Float64Histogram
	calculations metric.Int64Counter
	chatCalls    metric.Int64Counter
}

func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(meterName)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests by route and status"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	calculations, err := meter.Int64Counter("mortgage.calculations",
		metric.WithDescription("Amortization calculations by outcome"))
	if err != nil {
		return nil, err
	}
	chatCalls, err := meter.Int64Counter("chat.provider.calls",
		metric.WithDescription("Chat provider calls by provider and outcome"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requests:     requests,
		duration:     duration,
		calculations: calculations,
		chatCalls:    chatCalls,
	}, nil
}

func (m *Metrics) RecordRequest(ctx context.Context, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *Metrics) RecordCalculation(ctx context.Context, outcome string) {
	m.calculations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordChatCall(ctx context.Context, provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.chatCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	))
}
