package emit

import (
	"time"

	"github.com/jonwraymond/callmon/sample"
)

// Record is one call outcome headed for the sink.
type Record struct {
	InvocationID string
	FunctionName string
	Status       string
	Errors       []string
	Duration     time.Duration
	Memory       *sample.MemoryUsage
	CPU          *float64
	Timestamp    time.Time
}

// Emitter writes outcome records and secondary warnings.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: emission is best-effort; implementations never return errors
//     and never panic, so logging can never change a call's result.
type Emitter interface {
	// Emit writes a call outcome record.
	Emit(rec Record)

	// Warn reports a secondary condition (sampler failure, sink failure)
	// that must not surface as the call's status.
	Warn(functionName, msg string, err error)
}

// Nop discards everything. Used when log_execution is off and in tests.
type Nop struct{}

func (Nop) Emit(Record)                {}
func (Nop) Warn(string, string, error) {}

var _ Emitter = Nop{}
