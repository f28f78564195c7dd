// Package cli implements the command-line interface for the sysgrab
// diagnostics collection tool.
//
// # Commands
//
// collect - Run the diagnostics collection pipeline:
//
//	sysgrab collect [--dest DIR] [--config FILE] [--yes]
//
// Executes the configured diagnostic commands, renders the system report,
// gathers matching log files, and packages everything into one compressed
// archive under the destination directory (system temp by default).
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (default info)
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL               Logging verbosity
//	SYSGRAB_DEST            Archive destination directory
//	SYSGRAB_CONFIG          Configuration file path
//	SYSGRAB_NON_INTERACTIVE Skip the per-step operator pause
//
// # Exit Codes
//
//	0  Success
//	1  Any fatal failure: a diagnostic command exited nonzero, the workspace
//	   or destination could not be created, or archive assembly failed
//
// The CLI uses the urfave/cli/v3 framework and delegates to pkg/bundler for
// the collection pipeline. Version information is embedded at build time
// using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/sysgrab/pkg/cli.version=1.0.0'"
package cli
