package config

import (
	"path/filepath"

	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/pool"
	"github.com/wippyai/hostbind/property"
	"github.com/wippyai/hostbind/value"
)

// Property kinds accepted in a bindings manifest.
const (
	KindString     = "string"
	KindNumber     = "number"
	KindBool       = "bool"
	KindObject     = "object"
	KindPoolString = "pool-string"
	KindPoolNumber = "pool-number"
)

// Bindings is the manifest read by cmd/bind.
type Bindings struct {
	// Pool is an optional CBOR pool snapshot; the embedded snapshot is used
	// when empty. Relative paths resolve against Dir.
	Pool string `toml:"pool"`

	// WASM binds the pool's bytecode exports as functions on an object
	// named WASMObject.
	WASM       bool   `toml:"wasm"`
	WASMObject string `toml:"wasm_object" validate:"required_if=WASM true"`

	// ReadOnly names are defined on the target before registration and
	// reject later writes.
	ReadOnly []string `toml:"readonly" validate:"dive,required"`

	// Frozen prevents new properties on the target after ReadOnly is applied.
	Frozen bool `toml:"frozen"`

	Properties []Property `toml:"property" validate:"dive"`

	// Dir is the directory containing the manifest (set at load time).
	Dir string `toml:"-"`
}

// Property is a single [[property]] entry.
type Property struct {
	Value any    `toml:"value"`
	ID    *int   `toml:"id" validate:"omitempty,min=0,max=255"`
	Name  string `toml:"name" validate:"required"`
	Kind  string `toml:"kind" validate:"required,oneof=string number bool object pool-string pool-number"`
}

// LoadBindings reads and validates a bindings manifest.
func LoadBindings(path string) (*Bindings, error) {
	var b Bindings
	if err := decodeFile(path, &b); err != nil {
		return nil, err
	}
	if err := b.check(path); err != nil {
		return nil, err
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Load("resolve "+path, err)
	}
	b.Dir = dir
	return &b, nil
}

// ParseBindings decodes and validates a bindings manifest from memory.
func ParseBindings(data []byte) (*Bindings, error) {
	var b Bindings
	if err := decode("bindings", data, &b); err != nil {
		return nil, err
	}
	if err := b.check("bindings"); err != nil {
		return nil, err
	}
	return &b, nil
}

// PoolPath returns the snapshot path resolved against Dir, or "".
func (b *Bindings) PoolPath() string {
	if b.Pool == "" || filepath.IsAbs(b.Pool) {
		return b.Pool
	}
	return filepath.Join(b.Dir, b.Pool)
}

func (b *Bindings) check(what string) error {
	for i, p := range b.Properties {
		switch p.Kind {
		case KindPoolString, KindPoolNumber:
			if p.ID == nil {
				return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
					Property(p.Name, i).
					Detail("%s: kind %s requires id", what, p.Kind).
					Build()
			}
		case KindString, KindNumber, KindBool:
			if p.Value == nil {
				return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
					Property(p.Name, i).
					Detail("%s: kind %s requires value", what, p.Kind).
					Build()
			}
		}
	}
	return nil
}

// Table builds the entry table described by the manifest. Every value in
// the returned table is owned by the caller. On error nothing is leaked.
func (b *Bindings) Table(rt value.API, p *pool.Pool) (property.Table, error) {
	t := make(property.Table, 0, len(b.Properties))
	for i, prop := range b.Properties {
		h, err := prop.build(rt, p, i)
		if err != nil {
			property.ReleaseUnregistered(t, property.Result{})
			return nil, err
		}
		t = append(t, property.NewEntry(rt, prop.Name, h))
	}
	return t, nil
}

func (p Property) build(rt value.API, lit *pool.Pool, idx int) (value.Handle, error) {
	mismatch := func() error {
		return errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Property(p.Name, idx).
			Value(p.Value).
			Detail("value %v does not match kind %s", p.Value, p.Kind).
			Build()
	}

	switch p.Kind {
	case KindString:
		s, ok := p.Value.(string)
		if !ok {
			return 0, mismatch()
		}
		return p.str(rt, s, idx)

	case KindNumber:
		switch n := p.Value.(type) {
		case int64:
			return rt.Number(float64(n)), nil
		case float64:
			return rt.Number(n), nil
		}
		return 0, mismatch()

	case KindBool:
		v, ok := p.Value.(bool)
		if !ok {
			return 0, mismatch()
		}
		return rt.Boolean(v), nil

	case KindObject:
		return rt.Object(), nil

	case KindPoolString:
		if lit == nil {
			return 0, noPool(p, idx)
		}
		s, err := lit.LookupString(*p.ID)
		if err != nil {
			return 0, err
		}
		return p.str(rt, s, idx)

	case KindPoolNumber:
		if lit == nil {
			return 0, noPool(p, idx)
		}
		n, err := lit.LookupNumber(*p.ID)
		if err != nil {
			return 0, err
		}
		return rt.Number(float64(n)), nil
	}

	return 0, errors.Unsupported(errors.PhaseValidate, "property kind "+p.Kind)
}

// str creates a string value, turning a runtime rejection (NUL or invalid
// UTF-8) into an error instead of an entry holding an exception.
func (p Property) str(rt value.API, s string, idx int) (value.Handle, error) {
	h := rt.String(s)
	if rt.IsException(h) {
		msg, _ := rt.ToString(h)
		rt.Release(h)
		return 0, errors.InvalidName(errors.PhaseValidate, p.Name, idx, "string value rejected: "+msg)
	}
	return h, nil
}

func noPool(p Property, idx int) error {
	return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
		Property(p.Name, idx).
		Detail("kind %s needs a constant pool", p.Kind).
		Build()
}
