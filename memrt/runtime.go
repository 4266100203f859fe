package memrt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/hostbind/resource"
	"github.com/wippyai/hostbind/value"
)

// Kind is the type tag stored with every cell.
type Kind uint32

const (
	KindInvalid Kind = iota
	KindUndefined
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindFunction
	KindException
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindException:
		return "exception"
	}
	return "invalid"
}

// Error names used for exceptions raised by the runtime itself.
const (
	TypeError      = "TypeError"
	ReferenceError = "ReferenceError"
)

type exception struct {
	name    string
	message string
}

// Runtime is a single-threaded in-memory implementation of value.API.
// It is not safe for concurrent use.
type Runtime struct {
	table      *resource.Table
	undefined  value.Handle
	trueVal    value.Handle
	falseVal   value.Handle
	global     value.Handle
	violations int
}

var _ value.API = (*Runtime)(nil)

// New creates a runtime with an empty global object.
func New() *Runtime {
	rt := &Runtime{table: resource.NewTable()}
	rt.undefined = rt.insert(KindUndefined, nil)
	rt.trueVal = rt.insert(KindBoolean, true)
	rt.falseVal = rt.insert(KindBoolean, false)
	rt.global = rt.Object()
	return rt
}

// Close frees every cell. Handles must not be used afterwards.
func (rt *Runtime) Close() error {
	return rt.table.Close()
}

// Subscribe registers an observer for cell lifecycle events.
func (rt *Runtime) Subscribe(o resource.Observer) {
	rt.table.Subscribe(o)
}

// Unsubscribe removes an observer.
func (rt *Runtime) Unsubscribe(o resource.Observer) {
	rt.table.Unsubscribe(o)
}

// Live returns the number of cells currently alive, including the
// runtime's own singletons and global object.
func (rt *Runtime) Live() int {
	return rt.table.Len()
}

// RefCount returns the outstanding references to h, 0 once it is freed.
func (rt *Runtime) RefCount(h value.Handle) uint32 {
	return rt.table.RefCount(resource.Handle(h))
}

// Violations returns how many times a dead or unknown handle was released
// or copied.
func (rt *Runtime) Violations() int {
	return rt.violations
}

// KindOf returns the kind of a live handle, KindInvalid otherwise.
func (rt *Runtime) KindOf(h value.Handle) Kind {
	id, ok := rt.table.TypeID(resource.Handle(h))
	if !ok {
		return KindInvalid
	}
	return Kind(id)
}

func (rt *Runtime) insert(k Kind, v any) value.Handle {
	return value.Handle(rt.table.Insert(uint32(k), v))
}

func (rt *Runtime) shared(h value.Handle) value.Handle {
	if err := rt.table.Retain(resource.Handle(h)); err != nil {
		rt.violation("retain", h, err)
	}
	return h
}

func (rt *Runtime) violation(op string, h value.Handle, err error) {
	rt.violations++
	Logger().Warn("handle ownership violation",
		zap.String("op", op),
		zap.Uint32("handle", uint32(h)),
		zap.Error(err),
	)
}

// Undefined returns the undefined value.
func (rt *Runtime) Undefined() value.Handle {
	return rt.shared(rt.undefined)
}

// Boolean returns a boolean value.
func (rt *Runtime) Boolean(b bool) value.Handle {
	if b {
		return rt.shared(rt.trueVal)
	}
	return rt.shared(rt.falseVal)
}

// Number returns a numeric value.
func (rt *Runtime) Number(f float64) value.Handle {
	return rt.insert(KindNumber, f)
}

// String creates a string value. Text containing NUL or invalid UTF-8
// yields a TypeError exception.
func (rt *Runtime) String(text string) value.Handle {
	if !utf8.ValidString(text) {
		return rt.Error(TypeError, "invalid UTF-8 in string")
	}
	if strings.IndexByte(text, 0) >= 0 {
		return rt.Error(TypeError, "string contains NUL")
	}
	return rt.insert(KindString, text)
}

// Error creates an exception value.
func (rt *Runtime) Error(name, message string) value.Handle {
	return rt.insert(KindException, &exception{name: name, message: message})
}

// Object creates an empty extensible object.
func (rt *Runtime) Object() value.Handle {
	return rt.insert(KindObject, newObject(rt, nil))
}

// Function wraps a native function in a function object.
func (rt *Runtime) Function(fn value.NativeFunc) value.Handle {
	return rt.insert(KindFunction, newObject(rt, fn))
}

// Global returns a new reference to the global object.
func (rt *Runtime) Global() value.Handle {
	return rt.shared(rt.global)
}

// Copy returns an additional reference to h. Copying a dead handle yields
// a ReferenceError exception.
func (rt *Runtime) Copy(h value.Handle) value.Handle {
	if err := rt.table.Retain(resource.Handle(h)); err != nil {
		rt.violation("copy", h, err)
		return rt.Error(ReferenceError, "copy of released value")
	}
	return h
}

// Release drops one reference to h.
func (rt *Runtime) Release(h value.Handle) {
	if _, err := rt.table.Release(resource.Handle(h)); err != nil {
		rt.violation("release", h, err)
	}
}

// IsException reports whether h is an exception.
func (rt *Runtime) IsException(h value.Handle) bool {
	return rt.KindOf(h) == KindException
}

// IsBoolean reports whether h is a boolean.
func (rt *Runtime) IsBoolean(h value.Handle) bool {
	return rt.KindOf(h) == KindBoolean
}

// IsTrue reports whether h is the boolean true.
func (rt *Runtime) IsTrue(h value.Handle) bool {
	v, ok := rt.table.GetTyped(resource.Handle(h), uint32(KindBoolean))
	return ok && v.(bool)
}

// ToNumber returns the value of a number or boolean.
func (rt *Runtime) ToNumber(h value.Handle) (float64, bool) {
	v, ok := rt.table.Get(resource.Handle(h))
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ToString returns the text of a string, the formatted value of a number or
// boolean, or "Name: message" for an exception.
func (rt *Runtime) ToString(h value.Handle) (string, bool) {
	v, ok := rt.table.Get(resource.Handle(h))
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return formatNumber(s), true
	case bool:
		return strconv.FormatBool(s), true
	case *exception:
		return s.name + ": " + s.message, true
	}
	return "", false
}

// Equal reports strict equality: primitives compare by value, objects and
// functions by identity.
func (rt *Runtime) Equal(a, b value.Handle) bool {
	ka, kb := rt.KindOf(a), rt.KindOf(b)
	if ka != kb || ka == KindInvalid {
		return false
	}
	switch ka {
	case KindUndefined:
		return true
	case KindObject, KindFunction, KindException:
		return a == b
	}
	va, _ := rt.table.Get(resource.Handle(a))
	vb, _ := rt.table.Get(resource.Handle(b))
	return va == vb
}

// Describe renders a handle for diagnostics.
func (rt *Runtime) Describe(h value.Handle) string {
	switch k := rt.KindOf(h); k {
	case KindInvalid:
		return fmt.Sprintf("<dead %d>", h)
	case KindUndefined:
		return "undefined"
	case KindString:
		s, _ := rt.ToString(h)
		return strconv.Quote(s)
	case KindObject:
		return fmt.Sprintf("[object %d keys]", len(rt.Keys(h)))
	case KindFunction:
		return "[function]"
	default:
		s, _ := rt.ToString(h)
		return s
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
