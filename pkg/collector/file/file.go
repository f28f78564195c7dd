/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package file

import (
	"log/slog"
	"os"
	"path/filepath"
)

// MissingReport summarizes an existence check over a resolved file set.
type MissingReport struct {
	// Checked is the number of paths examined.
	Checked int

	// Missing holds the paths that did not exist at check time, in the
	// original input order.
	Missing []string
}

// AnyMissing reports whether at least one checked path was absent.
func (r *MissingReport) AnyMissing() bool {
	return len(r.Missing) > 0
}

// ExpandPatterns expands glob patterns against the live filesystem and
// returns the union of all matches, deduplicated while preserving first-seen
// order. A pattern that matches nothing contributes no entries and produces
// one warning. Malformed patterns are treated the same as empty matches.
func ExpandPatterns(patterns []string) []string {
	resolved := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			slog.Warn("invalid log pattern", "pattern", pattern, "error", err)
			continue
		}
		if len(matches) == 0 {
			slog.Warn("log pattern matched nothing", "pattern", pattern)
			continue
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			resolved = append(resolved, m)
		}
	}

	return resolved
}

// Verify checks each path for existence (file or directory) on the current
// filesystem. Missing paths are warnings, never errors: the report lists
// them in input order and a single summary line is emitted when any are
// absent. An empty input produces an empty report and no output.
func Verify(paths []string) *MissingReport {
	report := &MissingReport{Checked: len(paths)}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			slog.Warn("log file not found", "path", p)
			report.Missing = append(report.Missing, p)
		}
	}

	if report.AnyMissing() {
		slog.Warn("some log files were not found",
			"missing", len(report.Missing),
			"checked", report.Checked)
	}

	return report
}
