// Package logging provides structured logging setup shared by all sysgrab
// components.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, module and version attributes on every record, and
// source location tracking when the level is debug. The LOG_LEVEL
// environment variable controls verbosity when no explicit level is given
// (debug, info, warn, error; default info).
//
// Typical use in main:
//
//	logging.SetDefaultStructuredLoggerWithLevel("sysgrab", version, logLevel)
//	slog.Info("starting", "version", version)
//
// Note that slog output is the diagnostics stream: operator-facing run
// notices are written to stdout by the collection pipeline, not through
// this package.
package logging
