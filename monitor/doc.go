// Package monitor wraps callables with execution-time, memory, and CPU
// measurement, optional input/output schema validation, structured error
// capture, and structured log emission.
//
// A wrapped call never panics and never returns a Go error: every outcome
// is reported through the structured Result (or, with raw pass-through
// enabled, through the callable's own value on success). Configuration
// errors are the single exception and surface at construction time,
// before any call semantics begin.
package monitor
