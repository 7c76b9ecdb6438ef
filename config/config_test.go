package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.ValidateInput)
	assert.True(t, cfg.ValidateOutput)
	assert.True(t, cfg.LogExecution)
	assert.True(t, cfg.MemoryMonitoring)
	assert.True(t, cfg.CPUMonitoring)
	assert.False(t, cfg.ReturnRawResult)
	assert.False(t, cfg.LogToFile)
	assert.Equal(t, LevelInfo, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"DEBUG", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"WARNING", LevelWarning, true},
		{"ERROR", LevelError, true},
		{"TRACE", 0, false},
		{"info", 0, false}, // matching is exact
		{"", 0, false},
	}
	for _, tc := range cases {
		lvl, err := ParseLevel(tc.in)
		if tc.ok {
			require.NoError(t, err, "level %q", tc.in)
			assert.Equal(t, tc.want, lvl)
		} else {
			require.Error(t, err, "level %q", tc.in)
			assert.True(t, strings.Contains(err.Error(), ErrCodeInvalidLogLevel))
		}
	}
}

func TestValidate_Rejections(t *testing.T) {
	cfg := Default()
	cfg.LogToFile = true
	cfg.LogFilePath = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFileMaxSizeMB = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFileBackups = -3
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MetricsExporter = "statsd"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidExporter)
}

func TestConfigure_ReplacesWholesale(t *testing.T) {
	t.Cleanup(Reset)

	cfg := Default()
	cfg.ReturnRawResult = true
	cfg.LogExecution = false
	require.NoError(t, Configure(cfg))

	got := Current()
	assert.True(t, got.ReturnRawResult)
	assert.False(t, got.LogExecution)

	// A failed Configure leaves the store untouched.
	bad := Default()
	bad.MetricsExporter = "nope"
	require.Error(t, Configure(bad))
	assert.True(t, Current().ReturnRawResult)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	t.Cleanup(Reset)

	got := Current()
	got.ValidateInput = false
	assert.True(t, Current().ValidateInput, "mutating the copy must not touch the store")
}
