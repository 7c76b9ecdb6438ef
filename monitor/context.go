package monitor

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/callmon/config"
)

// Func is the callable contract the monitor wraps. Blocking callables
// honor ctx; the measured execution time brackets the full call including
// any time spent suspended on it.
type Func func(ctx context.Context, input any) (any, error)

// Wrapped is a monitored callable. It returns either the structured
// *Result or, with raw pass-through enabled, the callable's own value on
// success. It never panics and carries no error return.
type Wrapped func(ctx context.Context, input any) any

// FuncMeta identifies the wrapped function.
type FuncMeta struct {
	// Name is the short function name.
	Name string

	// QualifiedPath is the package-qualified path, used as the schema
	// cache key.
	QualifiedPath string
}

// metaFor derives identity from the function pointer when no explicit
// name was given.
func metaFor(name string, fn Func) FuncMeta {
	qualified := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	qualified = strings.TrimSuffix(qualified, "-fm")
	if name == "" {
		name = qualified
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
	}
	if qualified == "" {
		qualified = name
	}
	return FuncMeta{Name: name, QualifiedPath: qualified}
}

// callContext is the per-invocation record. Each invocation owns its
// context exclusively; nothing here is shared or retained across calls.
type callContext struct {
	invocationID string
	meta         FuncMeta
	cfg          config.Config
	start        time.Time // monotonic reference for the whole pipeline
	input        any       // argument snapshot, kept only when validating input
}

func newCallContext(meta FuncMeta, cfg config.Config, input any) *callContext {
	cc := &callContext{
		invocationID: uuid.NewString(),
		meta:         meta,
		cfg:          cfg,
		start:        time.Now(),
	}
	if cfg.ValidateInput {
		cc.input = input
	}
	return cc
}
