/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/sysgrab/pkg/bundler"
	"github.com/mchmarny/sysgrab/pkg/config"
	"github.com/mchmarny/sysgrab/pkg/serializer"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Run the diagnostics collection and package the results",
		Description: `Run the configured sequence of diagnostic commands, render a multi-section
system report, gather matching log files, and package everything into a
single compressed archive for offline analysis.

The run is interactive by default: after each diagnostic step the tool
pauses so the operator can review the output. Use --yes for unattended
operation.

A failing diagnostic command aborts the whole run; missing log files and
log patterns that match nothing are warnings only.

# Examples

Collect with the built-in defaults, archive into the system temp directory:
  sysgrab collect

Unattended run with a custom destination:
  sysgrab collect --yes --dest /data/bundles

Use a custom step and log pattern configuration:
  sysgrab collect --config support.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dest",
				Aliases: []string{"d"},
				Usage:   "Destination directory for the archive",
				Sources: cli.EnvVars("SYSGRAB_DEST"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML file overriding the built-in step and log pattern lists",
				Sources: cli.EnvVars("SYSGRAB_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Non-interactive mode: skip the per-step operator pause",
				Sources: cli.EnvVars("SYSGRAB_NON_INTERACTIVE"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("Result output format (supported values: %s)", serializer.SupportedFormats()),
				Value:   string(serializer.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if dest := cmd.String("dest"); dest != "" {
				cfg.Destination = dest
			}
			if cmd.Bool("yes") {
				cfg.NonInteractive = true
			}

			b := &bundler.Bundler{
				Config: cfg,
				Out:    os.Stdout,
				In:     os.Stdin,
			}

			res, err := b.Run(ctx)
			if err != nil {
				return fmt.Errorf("collection failed: %w", err)
			}

			return serializer.NewWriter(outFormat, os.Stdout).Serialize(res)
		},
	}
}
