package pool

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbind/errors"
)

// Compile validates and compiles the bytecode blob with r.
func (p *Pool) Compile(ctx context.Context, r wazero.Runtime) (wazero.CompiledModule, error) {
	if len(p.bytecode) == 0 {
		return nil, errors.Unsupported(errors.PhaseCompile, "pool has no bytecode")
	}
	compiled, err := r.CompileModule(ctx, p.bytecode)
	if err != nil {
		return nil, errors.Compile(err)
	}
	return compiled, nil
}

// Instantiate compiles the bytecode and instantiates it under name. An empty
// name instantiates an anonymous module.
func (p *Pool) Instantiate(ctx context.Context, r wazero.Runtime, name string) (api.Module, error) {
	compiled, err := p.Compile(ctx, r)
	if err != nil {
		return nil, err
	}

	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCompile, errors.KindInvalidData, err, "instantiate bytecode")
	}
	return mod, nil
}
