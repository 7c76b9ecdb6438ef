package monitor

import (
	"time"

	"github.com/agilira/go-timecache"

	"github.com/jonwraymond/callmon/sample"
)

// Call statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the structured report for one monitored call. The field set
// and JSON names are stable; external consumers parse them.
type Result struct {
	Result        any                 `json:"result"`
	Status        string              `json:"status"`
	Errors        []string            `json:"errors"`
	ExecutionTime float64             `json:"execution_time"`
	MemoryUsage   *sample.MemoryUsage `json:"memory_usage"`
	CPUUsage      *float64            `json:"cpu_usage"`
	Timestamp     string              `json:"timestamp"`
	FunctionName  string              `json:"function_name"`
}

func newSuccess(value any, elapsed time.Duration, mem *sample.MemoryUsage, cpu *float64, functionName string) *Result {
	return &Result{
		Result:        value,
		Status:        StatusSuccess,
		ExecutionTime: elapsed.Seconds(),
		MemoryUsage:   mem,
		CPUUsage:      cpu,
		Timestamp:     timecache.CachedTime().UTC().Format(time.RFC3339Nano),
		FunctionName:  functionName,
	}
}

func newError(errs []string, elapsed time.Duration, mem *sample.MemoryUsage, cpu *float64, functionName string) *Result {
	return &Result{
		Status:        StatusError,
		Errors:        errs,
		ExecutionTime: elapsed.Seconds(),
		MemoryUsage:   mem,
		CPUUsage:      cpu,
		Timestamp:     timecache.CachedTime().UTC().Format(time.RFC3339Nano),
		FunctionName:  functionName,
	}
}

// build renders the public return value. With raw pass-through off the
// caller always receives the structured result. With it on, successes
// return the callable's own value while failures still return the
// structured result, so failure stays observable by shape.
func build(returnRaw bool, res *Result) any {
	if returnRaw && res.Status == StatusSuccess {
		return res.Result
	}
	return res
}
