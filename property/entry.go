package property

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/value"
)

// Entry is a single (name, value) pair to install. The name is borrowed for
// lookup only; the value is owned until Register consumes it.
type Entry struct {
	Value *value.Owned
	Name  string
}

// NewEntry takes ownership of h for the entry.
func NewEntry(rt value.API, name string, h value.Handle) Entry {
	return Entry{Name: name, Value: value.Own(rt, h)}
}

// Sentinel reports whether e is the zero entry that terminates a
// sentinel-style table.
func (e Entry) Sentinel() bool {
	return e.Name == "" && e.Value == nil
}

// Table is an ordered sequence of entries. A nil Table means "nothing to
// register" and is not an error.
type Table []Entry

// Terminated converts a sentinel-terminated slice into a Table ending before
// the first sentinel entry. A nil slice stays nil.
func Terminated(entries []Entry) Table {
	if entries == nil {
		return nil
	}
	for i, e := range entries {
		if e.Sentinel() {
			return Table(entries[:i])
		}
	}
	return Table(entries)
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t)
}

// Names returns the entry names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

// Validate checks that every name can be turned into a runtime string and
// every entry carries a value. It does not touch the runtime.
func (t Table) Validate() error {
	for i, e := range t {
		if !utf8.ValidString(e.Name) {
			return errors.InvalidName(errors.PhaseRegister, e.Name, i, "name is not valid UTF-8")
		}
		if strings.IndexByte(e.Name, 0) >= 0 {
			return errors.InvalidName(errors.PhaseRegister, e.Name, i, "name contains NUL")
		}
		if !e.Value.Held() {
			return errors.InvalidName(errors.PhaseRegister, e.Name, i, "entry has no value")
		}
	}
	return nil
}

// Func is a named native function.
type Func struct {
	Fn   value.NativeFunc
	Name string
}

// Functions builds a table of native function entries in the given order.
func Functions(rt value.API, funcs ...Func) Table {
	t := make(Table, len(funcs))
	for i, f := range funcs {
		t[i] = NewEntry(rt, f.Name, rt.Function(f.Fn))
	}
	return t
}
