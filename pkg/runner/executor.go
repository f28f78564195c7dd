/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package runner

import (
	"context"
	"fmt"
	"os/exec"
)

// Executor runs one external command line and returns its combined
// stdout/stderr output and exit status. Implementations must return a nil
// error for commands that ran but exited nonzero; a non-nil error means the
// command could not be executed at all.
//
// The pipeline depends on this interface rather than on os/exec directly so
// tests can substitute a fake executor instead of manipulating the process
// search path.
type Executor interface {
	Run(ctx context.Context, command string) (output []byte, exitCode int, err error)
}

// ShellExecutor executes command lines through the system shell, allowing
// configured steps to use pipes and redirection within the command itself.
type ShellExecutor struct {
	// Shell is the shell binary to invoke. Defaults to "sh".
	Shell string
}

// Run executes command via `sh -c` and captures combined output.
func (e *ShellExecutor) Run(ctx context.Context, command string) ([]byte, int, error) {
	shell := e.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, fmt.Errorf("failed to execute %q: %w", command, err)
	}

	return out, 0, nil
}
