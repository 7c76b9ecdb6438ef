package config

// Error codes attached to configuration errors. The format produced by
// go-errors is "[CODE]: message".
const (
	ErrCodeInvalidConfig   = "CALLMON_INVALID_CONFIG"
	ErrCodeInvalidLogLevel = "CALLMON_INVALID_LOG_LEVEL"
	ErrCodeInvalidExporter = "CALLMON_INVALID_EXPORTER"
)

// ValidLogLevels lists recognized log level names.
var ValidLogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR"}

// ValidMetricsExporters lists recognized metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}
