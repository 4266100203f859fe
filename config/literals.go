package config

import (
	"path/filepath"

	"github.com/wippyai/hostbind/errors"
)

// Literals is the manifest read by cmd/poolgen. Ids are assigned in
// declaration order within each table.
type Literals struct {
	Bytecode string          `toml:"bytecode" validate:"required"`
	Strings  []StringLiteral `toml:"string" validate:"max=256,unique=Name,dive"`
	Numbers  []NumberLiteral `toml:"number" validate:"max=256,unique=Name,dive"`

	// Dir is the directory containing the manifest (set at load time).
	Dir string `toml:"-"`
}

// StringLiteral is a named string table entry.
type StringLiteral struct {
	Name  string `toml:"name" validate:"required"`
	Value string `toml:"value"`
}

// NumberLiteral is a named number table entry.
type NumberLiteral struct {
	Name  string `toml:"name" validate:"required"`
	Value int32  `toml:"value"`
}

// LoadLiterals reads and validates a literals manifest.
func LoadLiterals(path string) (*Literals, error) {
	var l Literals
	if err := decodeFile(path, &l); err != nil {
		return nil, err
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Load("resolve "+path, err)
	}
	l.Dir = dir
	return &l, nil
}

// ParseLiterals decodes and validates a literals manifest from memory.
func ParseLiterals(data []byte) (*Literals, error) {
	var l Literals
	if err := decode("literals", data, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// BytecodePath returns the bytecode path resolved against Dir.
func (l *Literals) BytecodePath() string {
	if filepath.IsAbs(l.Bytecode) {
		return l.Bytecode
	}
	return filepath.Join(l.Dir, l.Bytecode)
}

// StringValues returns the string table in id order.
func (l *Literals) StringValues() []string {
	out := make([]string, len(l.Strings))
	for i, s := range l.Strings {
		out[i] = s.Value
	}
	return out
}

// NumberValues returns the number table in id order.
func (l *Literals) NumberValues() []int32 {
	out := make([]int32, len(l.Numbers))
	for i, n := range l.Numbers {
		out[i] = n.Value
	}
	return out
}
