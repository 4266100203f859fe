package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/hostbind/config"
	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/memrt"
	"github.com/wippyai/hostbind/pool"
	"github.com/wippyai/hostbind/property"
	"github.com/wippyai/hostbind/snapshot"
	"github.com/wippyai/hostbind/value"
	"github.com/wippyai/hostbind/wasmfn"
)

// session owns a runtime with the manifest applied to its global object.
type session struct {
	ctx      context.Context
	log      *zap.Logger
	rt       *memrt.Runtime
	wasm     wazero.Runtime
	bindings *config.Bindings
	pool     *pool.Pool
	result   property.Result
	total    int
	failed   string
	failure  string
	err      error
	global   value.Handle
}

func loadPool(b *config.Bindings) (*pool.Pool, error) {
	path := b.PoolPath()
	if path == "" {
		return snapshot.Pool(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read pool "+path, err)
	}
	return pool.Unmarshal(data)
}

// open loads the manifest, prepares the global object and registers the
// manifest's properties on it. A failed registration is recorded in the
// session, not returned as an error.
func open(ctx context.Context, log *zap.Logger, manifest string) (*session, error) {
	b, err := config.LoadBindings(manifest)
	if err != nil {
		return nil, err
	}
	p, err := loadPool(b)
	if err != nil {
		return nil, err
	}

	rt := memrt.New()
	s := &session{
		ctx:      ctx,
		log:      log,
		rt:       rt,
		bindings: b,
		pool:     p,
		global:   rt.Global(),
	}

	if err := s.prepare(); err != nil {
		s.Close()
		return nil, err
	}

	table, err := b.Table(rt, p)
	if err != nil {
		s.Close()
		return nil, err
	}
	if b.WASM {
		obj, err := s.exports()
		if err != nil {
			property.ReleaseUnregistered(table, property.Result{})
			s.Close()
			return nil, err
		}
		table = append(table, property.NewEntry(rt, b.WASMObject, obj))
	}

	s.register(table)
	return s, nil
}

// prepare defines the read-only names and freezes the global object when
// the manifest asks for it.
func (s *session) prepare() error {
	for _, name := range s.bindings.ReadOnly {
		u := s.rt.Undefined()
		res := s.rt.DefineReadOnly(s.global, name, u)
		s.rt.Release(u)
		if s.rt.IsException(res) {
			msg, _ := s.rt.ToString(res)
			s.rt.Release(res)
			return errors.Exception(errors.PhaseProperty, name, -1, msg)
		}
		s.rt.Release(res)
	}
	if s.bindings.Frozen {
		s.rt.PreventExtensions(s.global)
	}
	return nil
}

func (s *session) exports() (value.Handle, error) {
	s.wasm = wazero.NewRuntime(s.ctx)
	mod, err := s.pool.Instantiate(s.ctx, s.wasm, "")
	if err != nil {
		return 0, err
	}
	obj, err := wasmfn.Object(s.ctx, s.rt, mod)
	if err != nil {
		return 0, err
	}
	s.log.Debug("bound bytecode exports", zap.Strings("keys", s.rt.Keys(obj)))
	return obj, nil
}

func (s *session) register(table property.Table) {
	s.total = table.Len()
	res := property.Register(s.rt, s.global, table)
	s.result = res

	if res.Failed() {
		if int(res.Registered) < len(table) {
			s.failed = table[res.Registered].Name
		}
		s.failure = s.rt.Describe(res.Outcome)
		s.err = res.Err(s.rt, table)
		property.ReleaseUnregistered(table, res)
		s.log.Warn("registration stopped",
			zap.String("name", s.failed),
			zap.Uint32("registered", res.Registered),
			zap.String("outcome", s.failure),
		)
	}
}

// Err returns the registration failure as an error, nil on success.
func (s *session) Err() error {
	return s.err
}

// Report writes the registration summary and the global object's properties.
func (s *session) Report(w io.Writer) {
	fmt.Fprintf(w, "Registered %d of %d properties\n", s.result.Registered, s.total)
	if s.err != nil {
		fmt.Fprintf(w, "Stopped at %q: %s\n", s.failed, s.failure)
	}
	fmt.Fprintf(w, "\nGlobal properties:\n")
	for _, key := range s.rt.Keys(s.global) {
		h := property.Get(s.rt, s.global, key)
		fmt.Fprintf(w, "  %s = %s\n", key, s.rt.Describe(h))
		s.rt.Release(h)
	}
}

func (s *session) Close() {
	s.result.Release(s.rt)
	s.result = property.Result{Registered: s.result.Registered}
	if s.global != 0 {
		s.rt.Release(s.global)
		s.global = 0
	}
	if s.wasm != nil {
		_ = s.wasm.Close(s.ctx)
		s.wasm = nil
	}
	if v := s.rt.Violations(); v > 0 {
		s.log.Warn("ownership violations", zap.Int("count", v))
	}
	_ = s.rt.Close()
}
