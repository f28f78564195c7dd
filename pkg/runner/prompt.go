/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package runner

import (
	"bufio"
	"fmt"
	"io"
)

// Prompter pauses the run until the operator acknowledges, so output from
// each diagnostic step can be reviewed before the next one starts.
type Prompter interface {
	Wait() error
}

// NoopPrompter never pauses. Used in non-interactive (automation) mode.
type NoopPrompter struct{}

// Wait returns immediately.
func (NoopPrompter) Wait() error { return nil }

// StdinPrompter prints a prompt and blocks until the operator presses Enter.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Wait blocks until a line is read from In. EOF is treated as
// acknowledgment so piped input does not hang the run.
func (p *StdinPrompter) Wait() error {
	fmt.Fprint(p.Out, "Press Enter to continue...")
	reader := bufio.NewReader(p.In)
	if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read acknowledgment: %w", err)
	}
	fmt.Fprintln(p.Out)
	return nil
}
