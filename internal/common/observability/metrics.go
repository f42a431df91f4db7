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
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	assessmentCounter  otelmetric.Int64Counter
	assessmentDuration otelmetric.Float64Histogram
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

	assessmentCounter, _ := meter.Int64Counter(
		"assessments.processed",
		otelmetric.WithDescription("Number of assessments processed"),
	)

	assessmentDuration, _ := meter.Float64Histogram(
		"assessments.duration",
		otelmetric.WithDescription("Assessment processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		assessmentCounter:  assessmentCounter,
		assessmentDuration: assessmentDuration,
	}
}

func (o *Observability) RecordAssessment(ctx context.Context, subjectType, status string) {
	if o.assessmentCounter != nil {
		o.assessmentCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("subject_type", subjectType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordAssessmentDuration(ctx context.Context, duration time.Duration, subjectType string) {
	if o.assessmentDuration != nil {
		o.assessmentDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("subject_type", subjectType),
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
