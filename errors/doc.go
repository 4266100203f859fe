// Package errors provides structured error types for the hostbind module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Runtime-reported failures travel as value handles; this package is used where a
// failure has to leave the handle world, for example when a Registration Result is
// reported to an embedding application or when a pool snapshot fails to load.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindException).
//		Property("print", 2).
//		Detail("TypeError: object is not extensible").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhasePool, "string", 12, 4)
//	err := errors.ParseFailed("literals.toml", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
