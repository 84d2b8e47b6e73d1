package host

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-counter/errors"
)

const (
	exportIncrement  = "increment"
	exportGetCounter = "get_counter"

	wasiModuleName = "wasi_snapshot_preview1"
	initializeName = "_initialize"
)

// Config holds configuration for runtime creation
type Config struct {
	// Logger receives load, instantiate and call events.
	// nil means the package logger (see SetLogger).
	Logger *zap.Logger

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// CloseOnContextDone makes calls observe context cancellation, at some
	// cost in execution speed. A cancelled call closes its instance.
	// When false, cancellation is ignored.
	CloseOnContextDone bool
}

// Runtime hosts counter modules.
type Runtime struct {
	runtime      wazero.Runtime
	logger       *zap.Logger
	iface        []*Function
	wasiInitMu   sync.Mutex
	wasiInitDone atomic.Bool
	instanceSeq  atomic.Uint64
}

// New creates a runtime. cfg may be nil.
func New(ctx context.Context, cfg *Config) (*Runtime, error) {
	iface, err := ParseInterface(CounterWIT)
	if err != nil {
		return nil, err
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	log := Logger()
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.CloseOnContextDone {
			runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
		}
		if cfg.Logger != nil {
			log = cfg.Logger
		}
	}

	return &Runtime{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		logger:  log,
		iface:   iface,
	}, nil
}

// Close releases the runtime and every module and instance created from it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Interface returns the functions every loaded module is checked against.
func (r *Runtime) Interface() []*Function {
	return r.iface
}

// Load compiles a counter module and checks its exports against CounterWIT.
func (r *Runtime) Load(ctx context.Context, wasm []byte) (*Module, error) {
	if len(wasm) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty module")
	}

	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if err := r.validate(compiled); err != nil {
		compiled.Close(ctx)
		return nil, err
	}

	for _, def := range compiled.ImportedFunctions() {
		if mod, _, _ := def.Import(); mod == wasiModuleName {
			if err := r.initWASI(ctx); err != nil {
				compiled.Close(ctx)
				return nil, err
			}
			break
		}
	}

	var start []string
	if _, ok := compiled.ExportedFunctions()[initializeName]; ok {
		start = append(start, initializeName)
	}

	r.logger.Debug("module loaded",
		zap.Int("size", len(wasm)),
		zap.Int("imports", len(compiled.ImportedFunctions())),
		zap.Strings("start", start))

	return &Module{
		runtime:  r,
		compiled: compiled,
		start:    start,
	}, nil
}

func (r *Runtime) validate(compiled wazero.CompiledModule) error {
	defs := compiled.ExportedFunctions()
	for _, fn := range r.iface {
		name := fn.Export()
		def, ok := defs[name]
		if !ok {
			return errors.MissingExport(name)
		}
		if !slices.Equal(def.ParamTypes(), fn.coreParams) || !slices.Equal(def.ResultTypes(), fn.coreResults) {
			return errors.SignatureMismatch(name,
				coreSignature(fn.coreParams, fn.coreResults),
				coreSignature(def.ParamTypes(), def.ResultTypes()))
		}
	}
	return nil
}

// initWASI instantiates wasi_snapshot_preview1 once per runtime.
// Safe for concurrent calls from multiple loads.
func (r *Runtime) initWASI(ctx context.Context) error {
	if r.wasiInitDone.Load() {
		return nil
	}

	r.wasiInitMu.Lock()
	defer r.wasiInitMu.Unlock()

	if r.wasiInitDone.Load() {
		return nil
	}

	if r.runtime.Module(wasiModuleName) == nil {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, r.runtime); err != nil {
			return errors.Load("instantiate WASI", err)
		}
		r.logger.Debug("WASI preview1 instantiated")
	}

	r.wasiInitDone.Store(true)
	return nil
}
