// Package snapshot is the constant pool compiled into the hostbind binary.
//
// The tables and ids in snapshot_gen.go are produced by cmd/poolgen from
// literals.toml; bytecode.wasm is embedded as-is.
package snapshot

//go:generate go run ../cmd/poolgen -manifest literals.toml -out snapshot_gen.go -pkg snapshot

import "github.com/wippyai/hostbind/pool"

// Pool returns the embedded pool.
func Pool() *pool.Pool {
	return literals
}

// StringByID returns the literal string with the given generated id.
func StringByID(id uint8) string {
	return literals.String(id)
}

// NumberByID returns the literal number with the given generated id.
func NumberByID(id uint8) int32 {
	return literals.Number(id)
}

// Bytecode returns the embedded bytecode blob. Callers must not modify it.
func Bytecode() []byte {
	return literals.Bytecode()
}
