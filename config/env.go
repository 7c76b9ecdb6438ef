package config

import (
	"os"
	"strconv"

	"github.com/agilira/go-errors"
	"github.com/joho/godotenv"
)

// Environment variables consumed by FromEnv. The set is fixed; anything
// else belongs to explicit Configure calls.
const (
	EnvLogLevel  = "CALLMON_LOG_LEVEL"
	EnvLogToFile = "CALLMON_LOG_TO_FILE"
	EnvLogFile   = "CALLMON_LOG_FILE"
)

// FromEnv builds the environment override layer from the fixed variable
// set. Unset variables leave the corresponding key inherited. A variable
// that is set but unparseable is a configuration error, never silently
// ignored.
func FromEnv() (Overrides, error) {
	var o Overrides

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		if _, err := ParseLevel(v); err != nil {
			return Overrides{}, err
		}
		o.LogLevel = &v
	}

	if v, ok := os.LookupEnv(EnvLogToFile); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Overrides{}, errors.Wrap(err, ErrCodeInvalidConfig, "invalid boolean in environment").
				WithContext("variable", EnvLogToFile).
				WithContext("value", v)
		}
		o.LogToFile = &b
	}

	if v, ok := os.LookupEnv(EnvLogFile); ok {
		o.LogFilePath = &v
	}

	return o, nil
}

// FromEnvFile loads a dotenv file into the process environment and then
// reads the environment layer. Variables already present in the
// environment win over the file, matching godotenv semantics.
func FromEnvFile(path string) (Overrides, error) {
	if err := godotenv.Load(path); err != nil {
		return Overrides{}, errors.Wrap(err, ErrCodeInvalidConfig, "failed to load env file").
			WithContext("path", path)
	}
	return FromEnv()
}
