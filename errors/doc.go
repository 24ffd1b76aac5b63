// Package errors provides structured error types for the class-file decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the structural path, the byte offset in the input and the
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownOpcode).
//		Path("methods[1]", "Code").
//		Offset(42).
//		Value(0xcb).
//		Detail("unassigned opcode").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BufferUnderrun(off, 4, 1)
//	err := errors.TagMismatch(7, "Utf8", "Class")
//
// Two errors with the same Phase and Kind match under errors.Is, so packages
// export sentinels built with Sentinel and callers test against them.
package errors
