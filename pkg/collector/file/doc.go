// Package file resolves configured log path patterns into a concrete file
// set and verifies the result against the live filesystem.
//
// Pattern expansion and existence checking are deliberately separate steps:
// expansion happens first and produces only concrete paths, so the checker
// never sees unexpanded wildcard strings. Both report problems as warnings
// on the diagnostics stream rather than failing the run.
package file
