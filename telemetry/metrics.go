package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records monitored-call outcomes.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: implementations must not panic; recording is best-effort.
type Metrics interface {
	// RecordCall records one monitored call with its duration, optional
	// memory delta, optional CPU utilization, and failure status.
	RecordCall(ctx context.Context, functionName string, duration time.Duration, memDelta *int64, cpu *float64, failed bool)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	memDeltaHist metric.Int64Histogram
	cpuHist      metric.Float64Histogram
}

// NewMetrics creates call-outcome instruments on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"call.exec.total",
		metric.WithDescription("Total number of monitored calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"call.exec.errors",
		metric.WithDescription("Total number of monitored calls that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"call.exec.duration_ms",
		metric.WithDescription("Monitored call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	memDeltaHist, err := meter.Int64Histogram(
		"call.exec.mem_delta_bytes",
		metric.WithDescription("Heap delta across a monitored call"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	cpuHist, err := meter.Float64Histogram(
		"call.exec.cpu_percent",
		metric.WithDescription("CPU utilization across a monitored call"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		memDeltaHist: memDeltaHist,
		cpuHist:      cpuHist,
	}, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, functionName string, duration time.Duration, memDelta *int64, cpu *float64, failed bool) {
	attrs := metric.WithAttributes(
		attribute.String("function.name", functionName),
		attribute.Bool("call.failed", failed),
	)

	m.totalCount.Add(ctx, 1, attrs)
	if failed {
		m.errorCount.Add(ctx, 1, attrs)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), attrs)
	if memDelta != nil {
		m.memDeltaHist.Record(ctx, *memDelta, attrs)
	}
	if cpu != nil {
		m.cpuHist.Record(ctx, *cpu, attrs)
	}
}

// NopMetrics discards all recordings.
type NopMetrics struct{}

func (NopMetrics) RecordCall(context.Context, string, time.Duration, *int64, *float64, bool) {}

var _ Metrics = NopMetrics{}
