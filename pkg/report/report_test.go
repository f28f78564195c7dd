/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sysgrab/pkg/collector/systemd"
)

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
	res := f.results[command]
	return []byte(res.output), res.exitCode, res.err
}

func defaultResults() map[string]fakeResult {
	return map[string]fakeResult{
		"uptime":      {output: "up 4 days\n"},
		"lscpu":       {output: "Architecture: x86_64\n"},
		"free -h":     {output: "Mem: 32Gi\n"},
		"df -h":       {output: "/dev/sda1 50% /\n"},
		"ip -br link": {output: "eth0 UP\n"},
		"systemctl list-units --type=service --state=running": {output: "sshd.service running\n"},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("renders all sections in order", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "system_report.txt")
		var notices bytes.Buffer
		b := &Builder{
			Executor: &fakeExecutor{results: defaultResults()},
			Out:      &notices,
			RunID:    "run-123",
			Now:      func() time.Time { return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC) },
		}

		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		content := string(data)

		// Preamble first.
		assert.True(t, strings.HasPrefix(content, "System Diagnostics Report\n"))
		assert.Contains(t, content, "Generated: 2026-08-23T10:00:00Z")
		assert.Contains(t, content, "Run ID: run-123")

		// Exact framing, verbatim bodies.
		wantOrder := []string{
			"\n--- Uptime ---\nup 4 days\n",
			"\n--- CPU Information ---\nArchitecture: x86_64\n",
			"\n--- Memory Information ---\nMem: 32Gi\n",
			"\n--- Disk Information ---\n/dev/sda1 50% /\n",
			"\n--- Network Interfaces ---\neth0 UP\n",
			"\n--- Running Services ---\nsshd.service running\n",
			"\n--- End of Report ---\n",
		}
		pos := 0
		for _, fragment := range wantOrder {
			idx := strings.Index(content[pos:], fragment)
			require.GreaterOrEqual(t, idx, 0, "missing fragment %q", fragment)
			pos += idx + len(fragment)
		}

		assert.Contains(t, notices.String(), "Generating system report...")
		assert.Contains(t, notices.String(), "System report written to")
	})

	t.Run("failing section command is absorbed", func(t *testing.T) {
		t.Parallel()

		results := defaultResults()
		results["lscpu"] = fakeResult{output: "lscpu: cannot read topology\n", exitCode: 1}

		dest := filepath.Join(t.TempDir(), "report.txt")
		b := &Builder{
			Executor: &fakeExecutor{results: results},
			Out:      &bytes.Buffer{},
		}

		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n--- CPU Information ---\nlscpu: cannot read topology\n")
		assert.Contains(t, string(data), "--- End of Report ---")
	})

	t.Run("unrunnable section command becomes body text", func(t *testing.T) {
		t.Parallel()

		results := defaultResults()
		results["uptime"] = fakeResult{err: errors.New("sh: not found")}

		dest := filepath.Join(t.TempDir(), "report.txt")
		b := &Builder{
			Executor: &fakeExecutor{results: results},
			Out:      &bytes.Buffer{},
		}

		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), `command "uptime" could not run`)
	})

	t.Run("appends to existing file", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, os.WriteFile(dest, []byte("existing header\n"), 0600))

		b := &Builder{
			Executor: &fakeExecutor{results: defaultResults()},
			Out:      &bytes.Buffer{},
		}
		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "existing header\n"))
	})
}

type fakeLister struct {
	units []systemd.UnitStatus
	err   error
}

func (f *fakeLister) ListRunning(context.Context) ([]systemd.UnitStatus, error) {
	return f.units, f.err
}

func TestBuildServiceManagerSection(t *testing.T) {
	t.Parallel()

	t.Run("prefers service manager query", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{results: defaultResults()}
		dest := filepath.Join(t.TempDir(), "report.txt")
		b := &Builder{
			Executor: exec,
			Out:      &bytes.Buffer{},
			Services: &fakeLister{units: []systemd.UnitStatus{
				{Name: "cron.service", ActiveState: "active", SubState: "running", Description: "cron"},
			}},
		}

		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cron.service")
		assert.NotContains(t, exec.calls, "systemctl list-units --type=service --state=running")
	})

	t.Run("falls back to command on bus error", func(t *testing.T) {
		t.Parallel()

		exec := &fakeExecutor{results: defaultResults()}
		dest := filepath.Join(t.TempDir(), "report.txt")
		b := &Builder{
			Executor: exec,
			Out:      &bytes.Buffer{},
			Services: &fakeLister{err: errors.New("no bus")},
		}

		require.NoError(t, b.Build(t.Context(), dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "sshd.service running")
		assert.Contains(t, exec.calls, "systemctl list-units --type=service --state=running")
	})
}
