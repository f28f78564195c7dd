/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package bundler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/sysgrab/pkg/archiver"
	"github.com/mchmarny/sysgrab/pkg/collector/file"
	"github.com/mchmarny/sysgrab/pkg/collector/systemd"
	"github.com/mchmarny/sysgrab/pkg/config"
	"github.com/mchmarny/sysgrab/pkg/errors"
	"github.com/mchmarny/sysgrab/pkg/report"
	"github.com/mchmarny/sysgrab/pkg/runner"
)

const (
	// ReportFileName is the fixed report file name inside the workspace.
	ReportFileName = "system_report.txt"

	archiveTimeFormat = "20060102_150405"
)

// Bundler orchestrates one collection run: diagnostic steps in configured
// order, report rendering, log pattern expansion and verification, checksum
// manifest, and final archive assembly. It owns the workspace lifecycle; the
// workspace is removed on every exit path.
type Bundler struct {
	// Config is the collection configuration. Required.
	Config *config.Config

	// Executor runs external commands. Defaults to the system shell.
	Executor runner.Executor

	// Prompter overrides the interactivity decision made from Config.
	Prompter runner.Prompter

	// Services answers the report's running-services section over D-Bus.
	// Defaults to the systemd collector; the report falls back to the
	// section command when the bus is unavailable.
	Services report.ServiceLister

	// Out receives operator-facing notices. Defaults to stdout.
	Out io.Writer

	// In supplies operator acknowledgments in interactive mode.
	// Defaults to stdin.
	In io.Reader

	// Now supplies timestamps for archive naming. Defaults to time.Now.
	Now func() time.Time
}

// Run executes the full collection pipeline and returns the run result.
// Any step failure, workspace failure, or archive failure aborts the run;
// the workspace is removed regardless of outcome.
func (b *Bundler) Run(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			runTotal.WithLabelValues("error").Inc()
		} else {
			runTotal.WithLabelValues("success").Inc()
		}
	}()

	if b.Config == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "configuration is required")
	}
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}

	out := b.Out
	if out == nil {
		out = os.Stdout
	}

	// Preconditions before any workspace exists: the destination directory
	// must be usable, and the archive path is chosen up front so it can
	// never end up under the workspace scheduled for removal.
	if err := os.MkdirAll(b.Config.Destination, 0o755); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"archive destination is not usable", err,
			map[string]any{"destination": b.Config.Destination})
	}
	archivePath := b.archivePath()

	ws, err := NewWorkspace()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			slog.Warn("failed to remove workspace", "dir", ws.Dir, "error", cerr)
			fmt.Fprintf(out, "Warning: failed to remove workspace %s\n", ws.Dir)
		}
	}()

	if err := archiver.ValidateDestination(ws.Dir, archivePath); err != nil {
		return nil, err
	}

	slog.Info("collection run starting",
		"run_id", ws.ID,
		"steps", len(b.Config.Steps),
		"archive", archivePath)

	executor := b.Executor
	if executor == nil {
		executor = &runner.ShellExecutor{}
	}

	steps := &runner.StepRunner{
		Executor: executor,
		Prompter: b.prompter(out),
		Out:      out,
		Dir:      ws.Dir,
	}
	for _, step := range b.Config.Steps {
		stepStart := time.Now()
		serr := steps.Run(ctx, step)
		stepDuration.WithLabelValues(step.Output).Observe(time.Since(stepStart).Seconds())
		if serr != nil {
			return nil, serr
		}
	}

	services := b.Services
	if services == nil {
		services = &systemd.Collector{}
	}
	rb := &report.Builder{
		Executor: executor,
		Out:      out,
		Services: services,
		RunID:    ws.ID,
	}
	if err := rb.Build(ctx, ws.Path(ReportFileName)); err != nil {
		return nil, err
	}

	resolved := file.ExpandPatterns(b.Config.LogPatterns)
	missing := file.Verify(resolved)
	resolvedLogFiles.Set(float64(len(resolved)))

	wsFiles, err := ws.Files()
	if err != nil {
		return nil, err
	}
	if err := archiver.GenerateChecksums(ctx, ws.Dir, wsFiles); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			"failed to generate checksum manifest", err)
	}

	fmt.Fprintf(out, "Creating archive %s\n", archivePath)
	if err := archiver.Archive(ctx, ws.Dir, resolved, archivePath); err != nil {
		return nil, err
	}

	res = &Result{
		ArchivePath:     archivePath,
		RunID:           ws.ID,
		Steps:           len(b.Config.Steps),
		LogFiles:        len(resolved),
		MissingLogFiles: len(missing.Missing),
		Duration:        time.Since(start),
	}
	if info, serr := os.Stat(archivePath); serr == nil {
		res.ArchiveSize = info.Size()
	}

	slog.Info("collection run complete",
		"run_id", res.RunID,
		"archive", res.ArchivePath,
		"log_files", res.LogFiles,
		"duration", res.Duration)

	return res, nil
}

// archivePath builds the deterministic archive file name from the host
// identifier and the current timestamp.
func (b *Bundler) archivePath() string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	// Hostname ends up in a file name; strip anything path-like.
	host = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, host)

	name := fmt.Sprintf("sysgrab_%s_%s.tar.gz", host, now().Format(archiveTimeFormat))
	return filepath.Join(b.Config.Destination, name)
}

func (b *Bundler) prompter(out io.Writer) runner.Prompter {
	if b.Prompter != nil {
		return b.Prompter
	}
	if b.Config.NonInteractive {
		return runner.NoopPrompter{}
	}
	in := b.In
	if in == nil {
		in = os.Stdin
	}
	return &runner.StdinPrompter{In: in, Out: out}
}
