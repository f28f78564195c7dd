// Package errors provides structured error types for sysgrab components.
//
// StructuredError carries a classification code, a human-readable message,
// an optional wrapped cause, and optional key/value context. Codes allow the
// CLI layer to distinguish fatal step failures (COMMAND_FAILED, with command
// and exit status in the context) from environment problems
// (SERVICE_UNAVAILABLE) without parsing message text.
package errors
