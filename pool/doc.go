// Package pool provides read-only access to a precompiled constant pool.
//
// A pool is produced offline by cmd/poolgen: the literal strings and numbers
// referenced by a script are collected into two tables addressed by small
// integer ids, and the compiled module is carried alongside as a single
// immutable bytecode blob.
//
//	p := snapshot.Pool()
//
//	name := p.String(snapshot.StrGreeting)
//	limit := p.Number(snapshot.NumLimit)
//	code := p.Bytecode()
//
// Ids are generated in lockstep with the tables, so String and Number treat
// an out-of-range id as a programming error and panic. LookupString and
// LookupNumber return an error instead, for tools that read ids from
// untrusted input.
//
// A pool never changes after construction and is safe for concurrent use.
//
// # Snapshots
//
// Marshal and Unmarshal encode a pool as a canonical CBOR snapshot, for
// embeddings that load the artifact at run time instead of compiling it in.
//
// # Bytecode
//
// The bytecode blob is a WebAssembly module. Compile validates and compiles it
// with wazero; Instantiate also instantiates it so its exports can be bound as
// native functions (see package wasmfn).
package pool
