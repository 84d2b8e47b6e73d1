package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-counter/errors"
)

// Module is a compiled counter module. Each Instantiate call yields an
// instance with its own counter starting from the module's initial value.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
	start    []string
}

// Exports returns the names of all exported functions, sorted.
func (m *Module) Exports() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	name := fmt.Sprintf("counter-%d", m.runtime.instanceSeq.Add(1))
	cfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions(m.start...)

	mod, err := m.runtime.runtime.InstantiateModule(ctx, m.compiled, cfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	inst := &Instance{
		module:     mod,
		increment:  mod.ExportedFunction(exportIncrement),
		getCounter: mod.ExportedFunction(exportGetCounter),
		logger:     m.runtime.logger.With(zap.String("instance", name)),
	}
	if inst.increment == nil || inst.getCounter == nil {
		mod.Close(ctx)
		return nil, errors.NotInitialized("counter exports")
	}

	inst.logger.Debug("instance created")
	return inst, nil
}

// Close releases the compiled code. Live instances keep running.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}
