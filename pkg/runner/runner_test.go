/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sysgrab/pkg/config"
	sgerrors "github.com/mchmarny/sysgrab/pkg/errors"
)

// fakeExecutor returns canned results keyed by command line.
type fakeExecutor struct {
	results map[string]fakeResult
	calls   []string
}

type fakeResult struct {
	output   string
	exitCode int
	err      error
}

func (f *fakeExecutor) Run(_ context.Context, command string) ([]byte, int, error) {
	f.calls = append(f.calls, command)
	res, ok := f.results[command]
	if !ok {
		return nil, 0, errors.New("unexpected command: " + command)
	}
	return []byte(res.output), res.exitCode, res.err
}

func TestStepRunner(t *testing.T) {
	t.Parallel()

	step := config.Step{
		Description: "Load average",
		Command:     "uptime",
		Output:      "uptime_output.txt",
	}

	t.Run("success writes output and notices", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var out bytes.Buffer
		r := &StepRunner{
			Executor: &fakeExecutor{results: map[string]fakeResult{
				"uptime": {output: "up 4 days\n"},
			}},
			Out: &out,
			Dir: dir,
		}

		require.NoError(t, r.Run(t.Context(), step))

		data, err := os.ReadFile(filepath.Join(dir, "uptime_output.txt"))
		require.NoError(t, err)
		assert.Equal(t, "up 4 days\n", string(data))

		assert.Contains(t, out.String(), "Running: Load average")
		assert.Contains(t, out.String(), "Completed: Load average")
	})

	t.Run("nonzero exit is fatal with command and status", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var out bytes.Buffer
		r := &StepRunner{
			Executor: &fakeExecutor{results: map[string]fakeResult{
				"uptime": {output: "uptime: command error\n", exitCode: 3},
			}},
			Out: &out,
			Dir: dir,
		}

		err := r.Run(t.Context(), step)
		require.Error(t, err)
		assert.Equal(t, sgerrors.ErrCodeCommandFailed, sgerrors.CodeOf(err))
		assert.Contains(t, err.Error(), `"uptime"`)
		assert.Contains(t, err.Error(), "exit status 3")
		assert.Contains(t, out.String(), "Command failed: uptime (exit status 3)")

		// Output is still captured for post-mortem of the abort message.
		data, rerr := os.ReadFile(filepath.Join(dir, "uptime_output.txt"))
		require.NoError(t, rerr)
		assert.Equal(t, "uptime: command error\n", string(data))
	})

	t.Run("execution failure is unavailable not command failed", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		r := &StepRunner{
			Executor: &fakeExecutor{results: map[string]fakeResult{
				"uptime": {err: errors.New("sh: not found")},
			}},
			Out: &out,
			Dir: t.TempDir(),
		}

		err := r.Run(t.Context(), step)
		require.Error(t, err)
		assert.Equal(t, sgerrors.ErrCodeUnavailable, sgerrors.CodeOf(err))
	})

	t.Run("prompter runs after success only", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		prompt := &countingPrompter{}
		r := &StepRunner{
			Executor: &fakeExecutor{results: map[string]fakeResult{
				"uptime": {output: "ok\n"},
			}},
			Prompter: prompt,
			Out:      &out,
			Dir:      t.TempDir(),
		}

		require.NoError(t, r.Run(t.Context(), step))
		assert.Equal(t, 1, prompt.waits)

		r.Executor = &fakeExecutor{results: map[string]fakeResult{
			"uptime": {exitCode: 1},
		}}
		require.Error(t, r.Run(t.Context(), step))
		assert.Equal(t, 1, prompt.waits)
	})
}

type countingPrompter struct{ waits int }

func (p *countingPrompter) Wait() error {
	p.waits++
	return nil
}

func TestStdinPrompter(t *testing.T) {
	t.Parallel()

	t.Run("reads enter", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		p := &StdinPrompter{In: strings.NewReader("\n"), Out: &out}
		require.NoError(t, p.Wait())
		assert.Contains(t, out.String(), "Press Enter to continue")
	})

	t.Run("eof acknowledges", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		p := &StdinPrompter{In: strings.NewReader(""), Out: &out}
		require.NoError(t, p.Wait())
	})
}

func TestShellExecutor(t *testing.T) {
	t.Parallel()

	t.Run("captures combined output", func(t *testing.T) {
		t.Parallel()
		e := &ShellExecutor{}
		out, code, err := e.Run(t.Context(), "echo stdout; echo stderr 1>&2")
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Contains(t, string(out), "stdout")
		assert.Contains(t, string(out), "stderr")
	})

	t.Run("reports nonzero exit without error", func(t *testing.T) {
		t.Parallel()
		e := &ShellExecutor{}
		_, code, err := e.Run(t.Context(), "exit 42")
		require.NoError(t, err)
		assert.Equal(t, 42, code)
	})

	t.Run("missing shell is an error", func(t *testing.T) {
		t.Parallel()
		e := &ShellExecutor{Shell: "definitely-not-a-shell"}
		_, _, err := e.Run(t.Context(), "true")
		require.Error(t, err)
	})
}
