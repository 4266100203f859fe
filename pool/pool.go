package pool

import (
	"github.com/wippyai/hostbind/errors"
)

// MaxEntries is the number of ids addressable per table.
const MaxEntries = 256

// Pool is an immutable table of literals plus one bytecode blob.
type Pool struct {
	strings  []string
	numbers  []int32
	bytecode []byte
}

// New builds a pool. The slices are retained and must not be modified
// afterwards.
func New(strings []string, numbers []int32, bytecode []byte) (*Pool, error) {
	if len(strings) > MaxEntries {
		return nil, errors.OutOfRange(errors.PhasePool, "string table size", len(strings), MaxEntries)
	}
	if len(numbers) > MaxEntries {
		return nil, errors.OutOfRange(errors.PhasePool, "number table size", len(numbers), MaxEntries)
	}
	return &Pool{
		strings:  strings,
		numbers:  numbers,
		bytecode: bytecode,
	}, nil
}

// MustNew is like New but panics on error. Intended for generated code.
func MustNew(strings []string, numbers []int32, bytecode []byte) *Pool {
	p, err := New(strings, numbers, bytecode)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the literal string with the given id.
// Panics if id is outside the generated range.
func (p *Pool) String(id uint8) string {
	if int(id) >= len(p.strings) {
		panic(errors.OutOfRange(errors.PhasePool, "string", int(id), len(p.strings)))
	}
	return p.strings[id]
}

// Number returns the literal number with the given id.
// Panics if id is outside the generated range.
func (p *Pool) Number(id uint8) int32 {
	if int(id) >= len(p.numbers) {
		panic(errors.OutOfRange(errors.PhasePool, "number", int(id), len(p.numbers)))
	}
	return p.numbers[id]
}

// Bytecode returns the shared bytecode blob. Callers must not modify it.
func (p *Pool) Bytecode() []byte {
	return p.bytecode
}

// LookupString returns the string with the given id or an error.
func (p *Pool) LookupString(id int) (string, error) {
	if id < 0 || id >= len(p.strings) {
		return "", errors.OutOfRange(errors.PhasePool, "string", id, len(p.strings))
	}
	return p.strings[id], nil
}

// LookupNumber returns the number with the given id or an error.
func (p *Pool) LookupNumber(id int) (int32, error) {
	if id < 0 || id >= len(p.numbers) {
		return 0, errors.OutOfRange(errors.PhasePool, "number", id, len(p.numbers))
	}
	return p.numbers[id], nil
}

// Strings returns the size of the string table.
func (p *Pool) Strings() int {
	return len(p.strings)
}

// Numbers returns the size of the number table.
func (p *Pool) Numbers() int {
	return len(p.numbers)
}
