package emit

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jonwraymond/callmon/config"
)

// Logger is the zerolog-backed Emitter. Console sinks go through
// zerolog.ConsoleWriter; file sinks write JSON through a size-rotated
// writer sized from the configuration.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// New builds an emitter for the resolved configuration. A file sink that
// cannot be prepared degrades to the console sink with a warning rather
// than failing: sink trouble is never allowed to abort call semantics.
func New(cfg config.Config) *Logger {
	var (
		writer io.Writer
		closer io.Closer
	)

	if cfg.LogToFile {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0o750); err != nil {
			fallbackWarn("", "failed to create log directory, using console sink", err)
			writer = consoleWriter()
		} else {
			lj := &lumberjack.Logger{
				Filename:   cfg.LogFilePath,
				MaxSize:    cfg.LogFileMaxSizeMB,
				MaxBackups: cfg.LogFileBackups,
			}
			writer = lj
			closer = lj
		}
	} else {
		writer = consoleWriter()
	}

	zl := zerolog.New(&failsafeWriter{w: writer}).Level(zerologLevel(cfg.LogLevel))
	return &Logger{zl: zl, closer: closer}
}

// NewWithWriter builds an emitter over an explicit writer, JSON-formatted.
// Used by tests and by callers with their own sink plumbing.
func NewWithWriter(w io.Writer, minLevel config.Level) *Logger {
	zl := zerolog.New(&failsafeWriter{w: w}).Level(zerologLevel(minLevel))
	return &Logger{zl: zl}
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
}

// Emit writes the record. Error outcomes log at error severity, success
// at info; records below the configured minimum are dropped.
func (l *Logger) Emit(rec Record) {
	ev := l.zl.Info()
	msg := "function execution completed"
	if rec.Status == "error" || len(rec.Errors) > 0 {
		ev = l.zl.Error()
		msg = "function execution failed"
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = timecache.CachedTime()
	}

	ev = ev.
		Str("timestamp", ts.UTC().Format(time.RFC3339Nano)).
		Str("function_name", rec.FunctionName).
		Str("status", rec.Status).
		Float64("execution_time", rec.Duration.Seconds())
	if rec.InvocationID != "" {
		ev = ev.Str("invocation_id", rec.InvocationID)
	}
	if len(rec.Errors) > 0 {
		ev = ev.Strs("errors", rec.Errors)
	}
	if rec.Memory != nil {
		ev = ev.
			Int64("memory_before", rec.Memory.Before).
			Int64("memory_after", rec.Memory.After).
			Int64("memory_peak", rec.Memory.Peak).
			Int64("memory_delta", rec.Memory.Delta)
	}
	if rec.CPU != nil {
		ev = ev.Float64("cpu_usage", *rec.CPU)
	}
	ev.Msg(msg)
}

// Warn reports a secondary condition at warning severity.
func (l *Logger) Warn(functionName, msg string, err error) {
	ev := l.zl.Warn().
		Str("timestamp", timecache.CachedTime().UTC().Format(time.RFC3339Nano))
	if functionName != "" {
		ev = ev.Str("function_name", functionName)
	}
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func zerologLevel(lvl config.Level) zerolog.Level {
	switch lvl {
	case config.LevelDebug:
		return zerolog.DebugLevel
	case config.LevelInfo:
		return zerolog.InfoLevel
	case config.LevelWarning:
		return zerolog.WarnLevel
	case config.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// failsafeWriter swallows sink write failures, reporting them once per
// burst to stderr so a broken sink cannot fail the monitored call.
type failsafeWriter struct {
	w  io.Writer
	mu sync.Mutex
}

func (f *failsafeWriter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.w.Write(p); err != nil {
		fallbackWarn("", "log sink write failed", err)
	}
	return len(p), nil
}

var fallback = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	Level(zerolog.WarnLevel)

func fallbackWarn(functionName, msg string, err error) {
	ev := fallback.Warn()
	if functionName != "" {
		ev = ev.Str("function_name", functionName)
	}
	ev.Err(err).Msg(msg)
}

var _ Emitter = (*Logger)(nil)
