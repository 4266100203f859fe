package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // batch property registration
	PhaseRelease  Phase = "release"  // handle release / cleanup
	PhaseProperty Phase = "property" // single-name get/set/has
	PhasePool     Phase = "pool"     // constant-pool lookups
	PhaseCompile  Phase = "compile"  // bytecode compilation
	PhaseBind     Phase = "bind"     // wasm export binding
	PhaseLoad     Phase = "load"     // snapshot / manifest loading
	PhaseParse    Phase = "parse"    // TOML / CBOR parsing
	PhaseValidate Phase = "validate" // manifest validation
	PhaseGenerate Phase = "generate" // offline pool generation
)

// Kind categorizes the error
type Kind string

const (
	KindException    Kind = "exception"
	KindTypeMismatch Kind = "type_mismatch"
	KindOutOfRange   Kind = "out_of_range"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidUTF8  Kind = "invalid_utf8"
	KindNotFound     Kind = "not_found"
	KindStale        Kind = "stale_handle"
	KindUnsupported  Kind = "unsupported"
	KindIO           Kind = "io"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Property string
	Detail   string
	Index    int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Property != "" {
		b.WriteString(" at ")
		b.WriteString(e.Property)
		if e.Index >= 0 {
			fmt.Fprintf(&b, " (entry %d)", e.Index)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Index: -1,
		},
	}
}

// Property sets the property name and its entry index (-1 for none)
func (b *Builder) Property(name string, index int) *Builder {
	b.err.Property = name
	b.err.Index = index
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Exception wraps a runtime-reported exception raised while handling name.
func Exception(phase Phase, name string, index int, message string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindException,
		Property: name,
		Index:    index,
		Detail:   message,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Index:  -1,
	}
}

// InvalidName reports a property name the runtime cannot represent.
func InvalidName(phase Phase, name string, index int, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidInput,
		Property: name,
		Index:    index,
		Detail:   detail,
	}
}

// OutOfRange creates an out of range error for pool ids
func OutOfRange(phase Phase, what string, id, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf("%s id %d out of range (length %d)", what, id, length),
		Value:  id,
		Index:  -1,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Index:  -1,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Index:  -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}

// Load creates a loading error
func Load(detail string, cause error) *Error {
	return Wrap(PhaseLoad, KindIO, cause, detail)
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return New(PhaseParse, KindInvalidData).Cause(cause).Detail("parse %s", what).Build()
}

// Compile creates a bytecode compilation error
func Compile(cause error) *Error {
	return Wrap(PhaseCompile, KindInvalidData, cause, "compile bytecode")
}
