// Package bundler orchestrates the diagnostics collection pipeline.
//
// A run moves through a fixed sequence: validate preconditions, create the
// temporary workspace, execute the configured diagnostic steps in order
// (first failure aborts), render the system report, expand and verify log
// path patterns, write the checksum manifest, and assemble the final
// archive. The workspace is removed on every exit path; failure to remove
// it is a warning, never an error.
//
// The pipeline is strictly sequential. Each diagnostic command is itself a
// synchronous snapshot of system state, and predictable operator-facing
// output matters more than throughput in an interactive support session.
package bundler
