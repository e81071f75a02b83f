// Package errors provides structured error types for clipboard transcoding.
//
// Errors are categorized by Phase (which step failed) and Kind (error category).
// The Error type carries the numeric status code of the failing facility, the
// codepage and clipboard format involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindConversionFailed).
//		Code(uconv.CodeBufferFull).
//		Codepage(850).
//		Detail("to wide").
//		Build()
//
// Or use the constructors named after the failure taxonomy:
//
//	err := errors.ResolverFailed(cp)
//	err := errors.ClipboardPublishFailed("text/unicode", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match any error of the same Phase and Kind.
package errors
