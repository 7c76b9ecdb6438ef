// Package telemetry records monitored-call outcomes as OpenTelemetry
// metrics. It is optional plumbing: the monitor works with no telemetry
// attached, and recording failures never affect a call's result. Tracing
// is deliberately absent; the monitor does not propagate across process
// boundaries.
package telemetry
