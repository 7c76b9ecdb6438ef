package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonwraymond/callmon/config"
	"github.com/jonwraymond/callmon/emit"
	"github.com/jonwraymond/callmon/sample"
	"github.com/jonwraymond/callmon/schema"
	"github.com/jonwraymond/callmon/telemetry"
)

// callState tracks the interceptor pipeline for one invocation. Fan-out is
// per-invocation; no state is shared across concurrent calls.
type callState int

const (
	stateIdle callState = iota
	stateValidatingInput
	stateInvoking
	stateValidatingOutput
	stateSucceeded
	stateFailed
	stateLogged
)

// Monitor wraps callables with measurement, validation, and logging.
//
// Contract:
//   - Concurrency: Wrap returns a Wrapped safe for concurrent use; every
//     invocation owns private context/snapshot/result state.
//   - Errors: a wrapped call never panics and never propagates an error;
//     outcomes are reported through the structured result.
//   - Ownership: input and output values pass through unmodified.
type Monitor struct {
	sampler sample.Sampler
	emitter emit.Emitter // explicit emitter; nil means build from config
	metrics telemetry.Metrics

	schemas      *schema.Cache
	inputSchema  *schema.Schema
	outputSchema *schema.Schema
	inputExample any
	outputExample any

	env       config.Overrides // environment layer, captured at construction
	overrides config.Overrides // monitor/per-wrap layer

	emitters *sync.Map // sinkKey -> *emit.Logger, shared across clones
}

// Option configures a Monitor or one Wrap of it.
type Option func(*Monitor)

// WithSampler replaces the resource sampler.
func WithSampler(s sample.Sampler) Option {
	return func(m *Monitor) { m.sampler = s }
}

// WithEmitter replaces the configured log sink with an explicit emitter.
func WithEmitter(e emit.Emitter) Option {
	return func(m *Monitor) { m.emitter = e }
}

// WithMetrics attaches telemetry recording of call outcomes.
func WithMetrics(mx telemetry.Metrics) Option {
	return func(m *Monitor) { m.metrics = mx }
}

// WithInputSchema declares the input schema for the wrapped function.
func WithInputSchema(s *schema.Schema) Option {
	return func(m *Monitor) { m.inputSchema = s }
}

// WithOutputSchema declares the return schema for the wrapped function.
func WithOutputSchema(s *schema.Schema) Option {
	return func(m *Monitor) { m.outputSchema = s }
}

// WithInputExample infers the input schema once from a representative
// value at wrap time.
func WithInputExample(v any) Option {
	return func(m *Monitor) { m.inputExample = v }
}

// WithOutputExample infers the return schema once from a representative
// value at wrap time.
func WithOutputExample(v any) Option {
	return func(m *Monitor) { m.outputExample = v }
}

// WithValidateInput overrides the input-validation toggle for this
// monitor or wrap.
func WithValidateInput(v bool) Option {
	return func(m *Monitor) { m.overrides.ValidateInput = &v }
}

// WithValidateOutput overrides the output-validation toggle.
func WithValidateOutput(v bool) Option {
	return func(m *Monitor) { m.overrides.ValidateOutput = &v }
}

// WithLogExecution overrides the outcome-logging toggle.
func WithLogExecution(v bool) Option {
	return func(m *Monitor) { m.overrides.LogExecution = &v }
}

// WithLogLevel overrides the minimum emitted severity. The name must be
// one of DEBUG, INFO, WARNING, ERROR.
func WithLogLevel(level string) Option {
	return func(m *Monitor) { m.overrides.LogLevel = &level }
}

// WithReturnRawResult overrides raw pass-through.
func WithReturnRawResult(v bool) Option {
	return func(m *Monitor) { m.overrides.ReturnRawResult = &v }
}

// WithMemoryMonitoring overrides the memory sampler toggle.
func WithMemoryMonitoring(v bool) Option {
	return func(m *Monitor) { m.overrides.MemoryMonitoring = &v }
}

// WithCPUMonitoring overrides the CPU sampler toggle.
func WithCPUMonitoring(v bool) Option {
	return func(m *Monitor) { m.overrides.CPUMonitoring = &v }
}

// New creates a Monitor. The environment override layer is consumed here,
// and the monitor-level overrides are validated against the current
// process defaults, so configuration errors abort before any call
// semantics begin.
func New(opts ...Option) (*Monitor, error) {
	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		sampler:  sample.RuntimeSampler{},
		schemas:  schema.NewCache(),
		env:      env,
		emitters: &sync.Map{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if _, err := config.Resolve(config.Current(), m.env, m.overrides); err != nil {
		return nil, err
	}
	return m, nil
}

// Wrap returns a monitored version of fn. An empty name derives the
// function identity via reflection. Options apply to this wrap only and
// are validated immediately; the same Monitor can wrap any number of
// functions.
func (m *Monitor) Wrap(name string, fn Func, opts ...Option) (Wrapped, error) {
	w := m.clone()
	for _, opt := range opts {
		opt(w)
	}
	if _, err := config.Resolve(config.Current(), w.env, w.overrides); err != nil {
		return nil, err
	}

	meta := metaFor(name, fn)
	w.resolveSchemas(meta)

	return func(ctx context.Context, input any) any {
		return w.invoke(ctx, meta, fn, input)
	}, nil
}

// Invoke runs one monitored call without pre-wrapping. The per-call
// configuration is whatever the monitor was built with.
func (m *Monitor) Invoke(ctx context.Context, name string, fn Func, input any) any {
	w := m.clone()
	meta := metaFor(name, fn)
	w.resolveSchemas(meta)
	return w.invoke(ctx, meta, fn, input)
}

// Wrap wraps fn with a monitor built from the process-wide defaults.
func Wrap(name string, fn Func, opts ...Option) (Wrapped, error) {
	m, err := New()
	if err != nil {
		return nil, err
	}
	return m.Wrap(name, fn, opts...)
}

func (m *Monitor) clone() *Monitor {
	w := *m
	return &w
}

// resolveSchemas compiles declared or example-derived schemas once per
// function, deduplicated through the cache.
func (m *Monitor) resolveSchemas(meta FuncMeta) {
	if m.inputSchema == nil && m.inputExample != nil {
		m.inputSchema, _ = m.schemas.Resolve(meta.QualifiedPath+"#input", func() (*schema.Schema, error) {
			return schema.Infer(m.inputExample), nil
		})
	}
	if m.outputSchema == nil && m.outputExample != nil {
		m.outputSchema, _ = m.schemas.Resolve(meta.QualifiedPath+"#output", func() (*schema.Schema, error) {
			return schema.Infer(m.outputExample), nil
		})
	}
}

// invoke drives the pipeline: validate input, sample and call, validate
// output, build the public value, emit the record. From any state a
// failure moves to the failed state; the logged state is terminal and can
// never fail the call.
func (m *Monitor) invoke(ctx context.Context, meta FuncMeta, fn Func, input any) any {
	cfg, err := config.Resolve(config.Current(), m.env, m.overrides)
	if err != nil {
		// Unreachable when the monitor was built through New/Wrap, which
		// validate the same layers; kept as a reporting path rather than
		// a panic for reconfiguration races.
		res := newError([]string{err.Error()}, 0, nil, nil, meta.Name)
		return build(false, res)
	}

	cc := newCallContext(meta, cfg, input)
	st := stateIdle

	var (
		errs    []string
		mem     *sample.MemoryUsage
		cpu     *float64
		elapsed time.Duration
		value   any
	)

	emitter := m.emitterFor(cfg)

	// Validate input before the call; the function is never invoked on a
	// mismatch.
	if cfg.ValidateInput && m.inputSchema != nil {
		st = stateValidatingInput
		if out := schema.Validate(cc.input, m.inputSchema); !out.Passed {
			errs = validationMessages("input", out)
			st = stateFailed
		}
	}

	if st != stateFailed {
		st = stateInvoking

		memBefore, memOK := m.memBefore(cfg, emitter, meta)
		cpuBefore, cpuOK := m.cpuBefore(cfg, emitter, meta)

		callStart := time.Now()
		value, err = safeCall(ctx, fn, input)
		elapsed = time.Since(callStart)

		// Partial metrics on failure are a hard requirement: the after
		// samples run regardless of the call outcome.
		if memOK {
			mem = m.memAfter(memBefore, emitter, meta)
		}
		if cpuOK {
			cpu = m.cpuAfter(cpuBefore, elapsed, emitter, meta)
		}

		switch {
		case err != nil:
			errs = []string{executionMessage(err)}
			value = nil
			st = stateFailed

		case cfg.ValidateOutput && m.outputSchema != nil:
			st = stateValidatingOutput
			if out := schema.Validate(value, m.outputSchema); !out.Passed {
				// The function itself succeeded; the produced value is
				// discarded but its metrics remain.
				errs = validationMessages("output", out)
				value = nil
				st = stateFailed
			} else {
				st = stateSucceeded
			}

		default:
			st = stateSucceeded
		}
	}

	var res *Result
	if st == stateFailed {
		res = newError(errs, elapsed, mem, cpu, meta.Name)
	} else {
		res = newSuccess(value, elapsed, mem, cpu, meta.Name)
	}

	// Terminal logged transition.
	m.record(ctx, cc, res, emitter)

	return build(cfg.ReturnRawResult, res)
}

// record emits the outcome and telemetry. This transition cannot fail the
// call: emitters are contractually non-panicking, and a violation of that
// contract is swallowed here rather than surfacing as the call's status.
func (m *Monitor) record(ctx context.Context, cc *callContext, res *Result, emitter emit.Emitter) {
	defer func() {
		_ = recover()
	}()

	if cc.cfg.LogExecution {
		emitter.Emit(emit.Record{
			InvocationID: cc.invocationID,
			FunctionName: cc.meta.Name,
			Status:       res.Status,
			Errors:       res.Errors,
			Duration:     time.Duration(res.ExecutionTime * float64(time.Second)),
			Memory:       res.MemoryUsage,
			CPU:          res.CPUUsage,
		})
	}

	if m.metrics != nil {
		var memDelta *int64
		if res.MemoryUsage != nil {
			memDelta = &res.MemoryUsage.Delta
		}
		m.metrics.RecordCall(ctx, cc.meta.Name,
			time.Duration(res.ExecutionTime*float64(time.Second)),
			memDelta, res.CPUUsage, res.Status == StatusError)
	}
}

func (m *Monitor) memBefore(cfg config.Config, emitter emit.Emitter, meta FuncMeta) (uint64, bool) {
	if !cfg.MemoryMonitoring {
		return 0, false
	}
	before, err := m.sampler.MemSample()
	if err != nil {
		emitter.Warn(meta.Name, "memory sampling unavailable", err)
		return 0, false
	}
	return before, true
}

func (m *Monitor) memAfter(before uint64, emitter emit.Emitter, meta FuncMeta) *sample.MemoryUsage {
	after, err := m.sampler.MemSample()
	if err != nil {
		emitter.Warn(meta.Name, "memory sampling unavailable", err)
		return nil
	}
	return sample.Memory(before, after)
}

func (m *Monitor) cpuBefore(cfg config.Config, emitter emit.Emitter, meta FuncMeta) (time.Duration, bool) {
	if !cfg.CPUMonitoring {
		return 0, false
	}
	before, err := m.sampler.CPUSample()
	if err != nil {
		emitter.Warn(meta.Name, "CPU sampling unavailable", err)
		return 0, false
	}
	return before, true
}

func (m *Monitor) cpuAfter(before time.Duration, wall time.Duration, emitter emit.Emitter, meta FuncMeta) *float64 {
	after, err := m.sampler.CPUSample()
	if err != nil {
		emitter.Warn(meta.Name, "CPU sampling unavailable", err)
		return nil
	}
	pct := sample.CPUPercent(after-before, wall)
	return &pct
}

// sinkKey identifies a distinct sink configuration so emitters are built
// once per effective sink rather than once per call.
type sinkKey struct {
	toFile   bool
	path     string
	maxSize  int
	backups  int
	minLevel config.Level
}

func (m *Monitor) emitterFor(cfg config.Config) emit.Emitter {
	if m.emitter != nil {
		return m.emitter
	}
	key := sinkKey{
		toFile:   cfg.LogToFile,
		path:     cfg.LogFilePath,
		maxSize:  cfg.LogFileMaxSizeMB,
		backups:  cfg.LogFileBackups,
		minLevel: cfg.LogLevel,
	}
	if v, ok := m.emitters.Load(key); ok {
		return v.(emit.Emitter)
	}
	v, _ := m.emitters.LoadOrStore(key, emit.New(cfg))
	return v.(emit.Emitter)
}

// safeCall invokes fn, converting a panic into an error so the wrapped
// call can never re-raise.
func safeCall(ctx context.Context, fn Func, input any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &panicError{value: r}
		}
	}()
	return fn(ctx, input)
}

type panicError struct{ value any }

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
