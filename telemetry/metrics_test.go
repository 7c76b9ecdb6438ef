package telemetry

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestMetrics_RecordSuccess verifies a successful call records total and
// duration but no error count.
func TestMetrics_RecordSuccess(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	delta := int64(2048)
	cpu := 33.0
	metrics.RecordCall(context.Background(), "add", 5*time.Millisecond, &delta, &cpu, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if findMetric(rm, "call.exec.total") == nil {
		t.Error("call.exec.total metric not found")
	}
	if findMetric(rm, "call.exec.duration_ms") == nil {
		t.Error("call.exec.duration_ms metric not found")
	}
	if findMetric(rm, "call.exec.mem_delta_bytes") == nil {
		t.Error("call.exec.mem_delta_bytes metric not found")
	}
	if findMetric(rm, "call.exec.cpu_percent") == nil {
		t.Error("call.exec.cpu_percent metric not found")
	}
	if findMetric(rm, "call.exec.errors") != nil {
		t.Error("call.exec.errors must not appear for a successful call")
	}
}

// TestMetrics_RecordFailure verifies a failed call increments the error
// counter.
func TestMetrics_RecordFailure(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	metrics.RecordCall(context.Background(), "divide", time.Millisecond, nil, nil, true)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	errMetric := findMetric(rm, "call.exec.errors")
	if errMetric == nil {
		t.Fatal("call.exec.errors metric not found")
	}
	sum, ok := errMetric.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", errMetric.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 1 {
		t.Errorf("error count = %d, want 1", total)
	}

	// Nil memory/CPU must not record histograms.
	if findMetric(rm, "call.exec.mem_delta_bytes") != nil {
		t.Error("mem delta recorded despite nil reading")
	}
}

// TestConfig_Validate verifies exporter and service name validation.
func TestConfig_Validate(t *testing.T) {
	cfg := Config{ServiceName: "callmon", Exporter: "stdout"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg = Config{Exporter: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing service name")
	}

	cfg = Config{ServiceName: "callmon", Exporter: "carrier-pigeon"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

// TestProvider_Lifecycle verifies setup and shutdown with the disabled
// exporter.
func TestProvider_Lifecycle(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{ServiceName: "callmon", Exporter: "none"})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	if p.Meter() == nil {
		t.Fatal("expected non-nil meter")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}
