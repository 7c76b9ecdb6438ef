package sample

import (
	"runtime"
	"time"
)

// MemoryUsage describes heap usage around one call, in bytes. Delta is
// signed: a call that frees more than it allocates goes negative.
// Peak is never below either endpoint.
type MemoryUsage struct {
	Before int64 `json:"before"`
	After  int64 `json:"after"`
	Peak   int64 `json:"peak"`
	Delta  int64 `json:"delta"`
}

// Sampler reads the shared system counters. Implementations must be safe
// for concurrent use; readings are returned by value so each caller owns
// its own snapshot.
//
// Contract:
//   - Concurrency: safe for concurrent use from independent invocations.
//   - Errors: a counter that cannot be read returns an error; callers
//     degrade the corresponding field to null rather than failing the call.
type Sampler interface {
	// MemSample returns the currently allocated heap bytes.
	MemSample() (uint64, error)

	// CPUSample returns the cumulative CPU time (user + system) consumed
	// by the process.
	CPUSample() (time.Duration, error)
}

// Memory derives the usage figures from two heap readings. The Go runtime
// exposes no per-call high-water mark, so peak falls back to the larger
// endpoint.
func Memory(before, after uint64) *MemoryUsage {
	b, a := int64(before), int64(after)
	peak := b
	if a > peak {
		peak = a
	}
	return &MemoryUsage{
		Before: b,
		After:  a,
		Peak:   peak,
		Delta:  a - b,
	}
}

// CPUPercent converts a CPU-time delta over a wall-clock window into a
// utilization percentage of one core. A non-positive window yields zero.
func CPUPercent(cpuDelta, wall time.Duration) float64 {
	if wall <= 0 || cpuDelta <= 0 {
		return 0
	}
	return float64(cpuDelta) / float64(wall) * 100
}

// RuntimeSampler reads memory from the Go runtime and CPU time from the
// operating system. The zero value is ready to use.
type RuntimeSampler struct{}

// MemSample reads currently allocated heap bytes via runtime.ReadMemStats.
func (RuntimeSampler) MemSample() (uint64, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, nil
}

// CPUSample reads cumulative process CPU time. On platforms without
// rusage accounting it returns an error and the caller degrades the CPU
// field to null.
func (RuntimeSampler) CPUSample() (time.Duration, error) {
	return processCPUTime()
}
