/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mchmarny/sysgrab/pkg/config"
	"github.com/mchmarny/sysgrab/pkg/errors"
)

const outputFilePerm = 0o600

// StepRunner executes configured diagnostic steps one at a time, capturing
// each step's combined output into a file inside the workspace directory.
// A nonzero exit from any step is fatal to the whole run.
type StepRunner struct {
	// Executor runs the external command. Required.
	Executor Executor

	// Prompter pauses after each successful step. If nil, no pause occurs.
	Prompter Prompter

	// Out receives operator-facing notices. Required.
	Out io.Writer

	// Dir is the workspace directory that receives output files. Required.
	Dir string
}

// Run executes one diagnostic step. The step's combined output is written to
// its configured file regardless of exit status, so a failing command still
// leaves its output on disk for the abort message to reference.
//
// Returns a COMMAND_FAILED error when the command exits nonzero; the caller
// is expected to abort the run.
func (r *StepRunner) Run(ctx context.Context, step config.Step) error {
	fmt.Fprintf(r.Out, "Running: %s\n", step.Description)
	slog.Debug("executing diagnostic step",
		"description", step.Description,
		"command", step.Command,
		"output", step.Output)

	out, exitCode, err := r.Executor.Run(ctx, step.Command)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeUnavailable,
			"failed to execute diagnostic command", err,
			map[string]any{"command": step.Command})
	}

	dest := filepath.Join(r.Dir, step.Output)
	if werr := os.WriteFile(dest, out, outputFilePerm); werr != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to write step output", werr,
			map[string]any{"path": dest})
	}

	if exitCode != 0 {
		fmt.Fprintf(r.Out, "Command failed: %s (exit status %d)\n", step.Command, exitCode)
		return errors.NewWithContext(errors.ErrCodeCommandFailed,
			fmt.Sprintf("command %q failed with exit status %d", step.Command, exitCode),
			map[string]any{"command": step.Command, "exit": exitCode})
	}

	fmt.Fprintf(r.Out, "Completed: %s\n", step.Description)

	if r.Prompter != nil {
		if perr := r.Prompter.Wait(); perr != nil {
			return errors.Wrap(errors.ErrCodeInternal,
				"failed waiting for operator acknowledgment", perr)
		}
	}

	return nil
}
