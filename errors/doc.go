// Package errors provides structured error types for the cil-metadata library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: a field path, the offending
// value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Path("method", "param[2]").
//		Value(b).
//		Detail("unsupported element type 0x%02x", b).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Malformed(errors.PhaseDecode, "field signature", b)
//	err := errors.RecursionLimit(errors.PhaseDecode, 50)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
