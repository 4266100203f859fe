package wasmfn

import (
	"context"
	"sort"
	"strconv"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/property"
	"github.com/wippyai/hostbind/value"
)

// Exception names raised by wrapped functions.
const (
	TypeError    = "TypeError"
	RuntimeError = "RuntimeError"
)

// Entries returns one native function entry per wrappable export of mod,
// sorted by name. Exports with non-numeric signatures or more than one
// result are skipped. ctx is used for every later call.
func Entries(ctx context.Context, rt value.API, mod api.Module) (property.Table, error) {
	if mod == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil module")
	}

	defs := mod.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	funcs := make([]property.Func, 0, len(names))
	for _, name := range names {
		def := defs[name]
		params, results := def.ParamTypes(), def.ResultTypes()
		if !numeric(params) || !numeric(results) || len(results) > 1 {
			Logger().Debug("skipping export", zap.String("name", name))
			continue
		}
		fn := mod.ExportedFunction(name)
		if fn == nil {
			return nil, errors.NotFound(errors.PhaseBind, "export", name)
		}
		funcs = append(funcs, property.Func{Name: name, Fn: wrap(ctx, name, fn, params, results)})
	}

	return property.Functions(rt, funcs...), nil
}

// Object creates an object holding every wrappable export of mod. The
// caller owns the returned handle.
func Object(ctx context.Context, rt value.API, mod api.Module) (value.Handle, error) {
	table, err := Entries(ctx, rt, mod)
	if err != nil {
		return 0, err
	}
	obj := rt.Object()
	if err := property.Install(rt, obj, table); err != nil {
		rt.Release(obj)
		return 0, errors.Wrap(errors.PhaseBind, errors.KindException, err, "install exports")
	}
	return obj, nil
}

func wrap(ctx context.Context, name string, fn api.Function, params, results []api.ValueType) value.NativeFunc {
	return func(rt value.API, _ value.Handle, args []value.Handle) value.Handle {
		stack := make([]uint64, len(params))
		for i, t := range params {
			if i >= len(args) {
				continue
			}
			f, ok := rt.ToNumber(args[i])
			if !ok {
				return rt.Error(TypeError, name+": argument "+strconv.Itoa(i)+" is not a number")
			}
			stack[i] = encode(t, f)
		}

		out, err := fn.Call(ctx, stack...)
		if err != nil {
			Logger().Debug("call failed", zap.String("name", name), zap.Error(err))
			return rt.Error(RuntimeError, name+": "+err.Error())
		}
		if len(results) == 0 {
			return rt.Undefined()
		}
		return rt.Number(decode(results[0], out[0]))
	}
}
