// Package hostbind installs host-provided properties onto script runtime
// objects with explicit ownership of every runtime value.
//
// A host embedding a script engine typically builds a table of (name, value)
// pairs and sets each one on a target object, usually the global object.
// Each value handle is reference counted by the runtime, so the host must
// know exactly which handles a partial failure left it owning. The packages
// here make that bookkeeping explicit.
//
// # Architecture Overview
//
//	hostbind/
//	├── value/       Handle type, the consumed runtime API, owned handles
//	├── property/    Batch registration, cleanup and named-property accessors
//	├── pool/        Read-only constant pool of strings, numbers and bytecode
//	├── snapshot/    Pool generated by cmd/poolgen and embedded in the binary
//	├── resource/    Reference-counted handle table
//	├── memrt/       In-memory runtime implementing value.API
//	├── wasmfn/      Bytecode exports wrapped as native functions
//	├── config/      TOML manifests for cmd/bind and cmd/poolgen
//	├── errors/      Structured error types for debugging
//	└── cmd/         poolgen and bind tools
//
// # Quick Start
//
// Register a table on the global object:
//
//	rt := memrt.New()
//	defer rt.Close()
//
//	global := rt.Global()
//	defer rt.Release(global)
//
//	entries := property.Table{
//	    property.NewEntry(rt, "version", rt.Number(1)),
//	    property.NewEntry(rt, "name", rt.String("demo")),
//	}
//
//	res := property.Register(rt, global, entries)
//	if res.Failed() {
//	    property.ReleaseUnregistered(entries, res)
//	}
//	res.Release(rt)
//
// property.Install does the same and returns an error naming the entry that
// failed.
//
// # Ownership
//
// Register consumes the value of every entry it installs. When a set fails,
// the failing entry and every later one still belong to the caller, and
// Result.Registered says where that range starts. Entry values are
// value.Owned, so releasing them twice is a no-op rather than a double free.
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. A runtime and the tables built
// for it belong to a single goroutine.
package hostbind
