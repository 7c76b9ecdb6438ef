package monitor

import (
	"fmt"

	"github.com/jonwraymond/callmon/schema"
)

// Error kinds carried in Result.Errors messages. ConfigError is not here:
// it aborts at construction time instead of being captured into a result.
const (
	KindValidation = "ValidationError"
	KindExecution  = "ExecutionError"
	KindLogging    = "LoggingError"
)

func executionMessage(err error) string {
	return fmt.Sprintf("%s: %v", KindExecution, err)
}

func validationMessages(stage string, out schema.Outcome) []string {
	msgs := make([]string, len(out.Violations))
	for i, v := range out.Violations {
		msgs[i] = fmt.Sprintf("%s: %s %s", KindValidation, stage, v)
	}
	return msgs
}
