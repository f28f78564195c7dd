// Package runner executes external diagnostic commands with per-step failure
// handling.
//
// The Executor interface isolates command execution so the pipeline and its
// tests never depend on the process-wide search path. ShellExecutor is the
// production implementation, running each configured command line through
// `sh -c` with combined stdout/stderr capture.
//
// StepRunner implements the per-step contract: announce the step, capture
// its output to the workspace, and treat any nonzero exit as fatal for the
// entire run. In interactive mode a Prompter pauses after each successful
// step for operator review.
package runner
