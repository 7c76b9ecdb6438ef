package config

import (
	"bytes"
	"os"

	"github.com/agilira/go-errors"
	"gopkg.in/yaml.v3"
)

// fileOverrides mirrors Overrides with YAML tags. Pointer fields keep the
// set/unset distinction: a key absent from the file inherits.
type fileOverrides struct {
	ValidateInput    *bool   `yaml:"validate_input"`
	ValidateOutput   *bool   `yaml:"validate_output"`
	LogExecution     *bool   `yaml:"log_execution"`
	LogLevel         *string `yaml:"log_level"`
	ReturnRawResult  *bool   `yaml:"return_raw_result"`
	MemoryMonitoring *bool   `yaml:"enable_memory_monitoring"`
	CPUMonitoring    *bool   `yaml:"enable_cpu_monitoring"`
	LogToFile        *bool   `yaml:"log_to_file"`
	LogFilePath      *string `yaml:"log_file_path"`
	LogFileMaxSizeMB *int    `yaml:"log_file_max_size"`
	LogFileBackups   *int    `yaml:"log_file_backup_count"`
	MetricsExporter  *string `yaml:"metrics_exporter"`
}

// LoadFile reads a YAML configuration file into an override layer.
// Unknown keys are rejected so typos fail fast instead of being inherited
// away.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, errors.Wrap(err, ErrCodeInvalidConfig, "failed to read config file").
			WithContext("path", path)
	}

	var f fileOverrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Overrides{}, errors.Wrap(err, ErrCodeInvalidConfig, "failed to parse config file").
			WithContext("path", path)
	}

	return Overrides{
		ValidateInput:    f.ValidateInput,
		ValidateOutput:   f.ValidateOutput,
		LogExecution:     f.LogExecution,
		LogLevel:         f.LogLevel,
		ReturnRawResult:  f.ReturnRawResult,
		MemoryMonitoring: f.MemoryMonitoring,
		CPUMonitoring:    f.CPUMonitoring,
		LogToFile:        f.LogToFile,
		LogFilePath:      f.LogFilePath,
		LogFileMaxSizeMB: f.LogFileMaxSizeMB,
		LogFileBackups:   f.LogFileBackups,
		MetricsExporter:  f.MetricsExporter,
	}, nil
}
