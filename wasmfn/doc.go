// Package wasmfn exposes the exports of a WebAssembly module as native
// functions of a value.API runtime.
//
// Only exports whose parameters and results are numeric (i32, i64, f32,
// f64) with at most one result are wrapped. Arguments are converted with
// ToNumber and results come back as numbers; a trap or an argument that is
// not a number yields an exception instead of a result.
package wasmfn
