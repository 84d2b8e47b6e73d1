// Package errors provides structured error types for the counter host.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). An Error may name the export it concerns and carry the expected
// and actual signatures when an export does not match the counter interface.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
//		Export("get_counter").
//		Signature("() -> (i32)", "() -> (i64)").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingExport("increment")
//	err := errors.CallFailed("get_counter", cause)
//
// Two errors match under errors.Is when their Phase and Kind are equal, so
// callers can test for a category without caring about the details:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindNotFound}) {
//		// module lacks a counter export
//	}
package errors
