package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	scoreCounter  otelmetric.Int64Counter
	scoreDuration otelmetric.Float64Histogram
	matchCounter  otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	scoreCounter, _ := meter.Int64Counter(
		"compliance.scores.computed",
		otelmetric.WithDescription("Number of compliance scores computed"),
	)

	scoreDuration, _ := meter.Float64Histogram(
		"compliance.scores.duration",
		otelmetric.WithDescription("Compliance scoring duration"),
		otelmetric.WithUnit("ms"),
	)

	matchCounter, _ := meter.Int64Counter(
		"matchmaking.matches.computed",
		otelmetric.WithDescription("Number of campaign match evaluations"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		scoreCounter:  scoreCounter,
		scoreDuration: scoreDuration,
		matchCounter:  matchCounter,
	}
}

// RecordScoreComputed counts one scoring run tagged with the resulting status.
func (o *Observability) RecordScoreComputed(ctx context.Context, status string) {
	if o.scoreCounter != nil {
		o.scoreCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordScoreDuration records how long one scoring run took.
func (o *Observability) RecordScoreDuration(ctx context.Context, duration time.Duration, status string) {
	if o.scoreDuration != nil {
		o.scoreDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordMatchComputed counts one matchmaking evaluation tagged with confidence.
func (o *Observability) RecordMatchComputed(ctx context.Context, confidence string) {
	if o.matchCounter != nil {
		o.matchCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("confidence", confidence),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
