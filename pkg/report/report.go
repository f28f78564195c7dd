/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mchmarny/sysgrab/pkg/collector/systemd"
	"github.com/mchmarny/sysgrab/pkg/errors"
	"github.com/mchmarny/sysgrab/pkg/runner"
)

const (
	reportFilePerm = 0o600

	// endMarker closes every report.
	endMarker = "End of Report"
)

// Section is one labeled report section backed by a producing command.
type Section struct {
	// Header is the section label, framed as `--- {Header} ---` in the
	// rendered report.
	Header string

	// Command produces the section body. The body is the command's combined
	// output, included verbatim.
	Command string

	// ViaServiceManager marks the section as answerable by a direct service
	// manager query when one is available, with Command as the fallback.
	ViaServiceManager bool
}

// DefaultSections returns the fixed report section sequence.
func DefaultSections() []Section {
	return []Section{
		{Header: "Uptime", Command: "uptime"},
		{Header: "CPU Information", Command: "lscpu"},
		{Header: "Memory Information", Command: "free -h"},
		{Header: "Disk Information", Command: "df -h"},
		{Header: "Network Interfaces", Command: "ip -br link"},
		{
			Header:            "Running Services",
			Command:           "systemctl list-units --type=service --state=running",
			ViaServiceManager: true,
		},
	}
}

// ServiceLister answers the running-services section without shelling out.
type ServiceLister interface {
	ListRunning(ctx context.Context) ([]systemd.UnitStatus, error)
}

// Builder renders the multi-section system report. Section command failures
// are absorbed into the report body rather than aborting: the report favors
// completeness over strictness, unlike the fatal-on-failure step pipeline.
type Builder struct {
	// Executor runs section commands. Required.
	Executor runner.Executor

	// Out receives operator-facing notices. Required.
	Out io.Writer

	// Sections is the ordered section list. If nil, DefaultSections is used.
	Sections []Section

	// Services, when set, answers ViaServiceManager sections over D-Bus,
	// falling back to the section command on error.
	Services ServiceLister

	// RunID identifies this collection run in the report preamble.
	RunID string

	// Now supplies the preamble timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Build renders the report and appends it to the file at dest, creating the
// file if needed. Only the inability to write the report itself is an error.
func (b *Builder) Build(ctx context.Context, dest string) error {
	fmt.Fprintln(b.Out, "Generating system report...")
	slog.Debug("building system report", "dest", dest)

	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, reportFilePerm)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to open report file", err, map[string]any{"path": dest})
	}
	defer f.Close()

	if err := b.writePreamble(f); err != nil {
		return err
	}

	sections := b.Sections
	if sections == nil {
		sections = DefaultSections()
	}

	for _, s := range sections {
		body := b.sectionBody(ctx, s)
		if _, err := fmt.Fprintf(f, "\n--- %s ---\n%s", s.Header, body); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to write report section", err, map[string]any{"section": s.Header})
		}
	}

	if _, err := fmt.Fprintf(f, "\n--- %s ---\n", endMarker); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write report end marker", err)
	}

	fmt.Fprintf(b.Out, "System report written to %s\n", dest)
	return nil
}

func (b *Builder) writePreamble(w io.Writer) error {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	host, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to resolve hostname", "error", err)
		host = "unknown"
	}

	_, err = fmt.Fprintf(w, "System Diagnostics Report\nGenerated: %s\nHost: %s\nRun ID: %s\n",
		now().Format(time.RFC3339), host, b.RunID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write report preamble", err)
	}
	return nil
}

// sectionBody produces the section body, absorbing command failures: the
// captured output (including any error text the command emitted) is used
// as-is, and executor-level failures become body text.
func (b *Builder) sectionBody(ctx context.Context, s Section) string {
	if s.ViaServiceManager && b.Services != nil {
		units, err := b.Services.ListRunning(ctx)
		if err == nil {
			return systemd.Render(units)
		}
		slog.Warn("service manager query failed, falling back to command",
			"section", s.Header, "error", err)
	}

	out, exitCode, err := b.Executor.Run(ctx, s.Command)
	if err != nil {
		slog.Warn("report section command could not run",
			"section", s.Header, "command", s.Command, "error", err)
		return fmt.Sprintf("command %q could not run: %v\n", s.Command, err)
	}
	if exitCode != 0 {
		slog.Warn("report section command exited nonzero",
			"section", s.Header, "command", s.Command, "exit", exitCode)
	}
	return string(out)
}
