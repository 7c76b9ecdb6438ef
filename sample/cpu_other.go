//go:build !unix

package sample

import (
	"errors"
	"time"
)

// ErrCPUUnsupported reports that the platform exposes no process CPU-time
// counter the sampler can read.
var ErrCPUUnsupported = errors.New("sample: process CPU time not available on this platform")

func processCPUTime() (time.Duration, error) {
	return 0, ErrCPUUnsupported
}
