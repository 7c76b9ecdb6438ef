package config

import (
	"sync"

	"github.com/agilira/go-errors"
)

// Level is a log severity recognized by the monitor.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel parses a level name. Matching is exact against the
// recognized set {DEBUG, INFO, WARNING, ERROR}.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, errors.New(ErrCodeInvalidLogLevel, "unknown log level").
			WithContext("level", s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Config is the effective monitoring configuration for one call, fully
// resolved and immutable thereafter. Values it holds:
//
//   - ValidateInput/ValidateOutput: schema validation toggles.
//   - LogExecution: whether the outcome record is emitted.
//   - LogLevel: minimum severity the emitter writes.
//   - ReturnRawResult: raw pass-through on success (failures always
//     return the structured result).
//   - MemoryMonitoring/CPUMonitoring: sampler toggles.
//   - LogToFile/LogFilePath/LogFileMaxSizeMB/LogFileBackups: sink routing.
//   - MetricsExporter: telemetry reader selection (otlp|prometheus|stdout|none).
type Config struct {
	ValidateInput    bool
	ValidateOutput   bool
	LogExecution     bool
	LogLevel         Level
	ReturnRawResult  bool
	MemoryMonitoring bool
	CPUMonitoring    bool

	LogToFile        bool
	LogFilePath      string
	LogFileMaxSizeMB int
	LogFileBackups   int

	MetricsExporter string
}

// Default returns the baseline configuration: validation and logging on,
// both samplers on, structured results returned, console sink at INFO.
func Default() Config {
	return Config{
		ValidateInput:    true,
		ValidateOutput:   true,
		LogExecution:     true,
		LogLevel:         LevelInfo,
		MemoryMonitoring: true,
		CPUMonitoring:    true,
		LogFilePath:      "callmon.log",
		LogFileMaxSizeMB: 10,
		LogFileBackups:   5,
	}
}

// Validate checks enumerated and numeric values.
func (c Config) Validate() error {
	if c.LogLevel < LevelDebug || c.LogLevel > LevelError {
		return errors.New(ErrCodeInvalidLogLevel, "unknown log level").
			WithContext("level", int(c.LogLevel))
	}
	if c.LogToFile && c.LogFilePath == "" {
		return errors.New(ErrCodeInvalidConfig, "log file path required when logging to file")
	}
	if c.LogFileMaxSizeMB < 0 {
		return errors.New(ErrCodeInvalidConfig, "log file max size cannot be negative").
			WithContext("max_size_mb", c.LogFileMaxSizeMB)
	}
	if c.LogFileBackups < 0 {
		return errors.New(ErrCodeInvalidConfig, "log file backup count cannot be negative").
			WithContext("backups", c.LogFileBackups)
	}
	if !validExporter(c.MetricsExporter) {
		return errors.New(ErrCodeInvalidExporter, "unknown metrics exporter").
			WithContext("exporter", c.MetricsExporter)
	}
	return nil
}

func validExporter(name string) bool {
	for _, v := range ValidMetricsExporters {
		if name == v {
			return true
		}
	}
	return false
}

// Process-wide defaults. Reads take a copy; writes replace wholesale and
// become visible to calls that start after the write completes.
var (
	storeMu sync.RWMutex
	store   = Default()
)

// Configure replaces the process-wide default configuration. It validates
// the new configuration first and leaves the current one untouched on error.
// In-flight calls keep the configuration they resolved at start.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	storeMu.Lock()
	store = cfg
	storeMu.Unlock()
	return nil
}

// Current returns a copy of the process-wide default configuration.
func Current() Config {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// Reset restores the built-in defaults. Intended for tests.
func Reset() {
	storeMu.Lock()
	store = Default()
	storeMu.Unlock()
}
