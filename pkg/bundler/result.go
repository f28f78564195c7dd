/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package bundler

import (
	"fmt"
	"time"
)

// Result summarizes one completed collection run.
type Result struct {
	// ArchivePath is the final archive location.
	ArchivePath string `json:"archive_path" yaml:"archive_path"`

	// RunID uniquely identifies the run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Steps is the number of diagnostic steps executed.
	Steps int `json:"steps" yaml:"steps"`

	// LogFiles is the number of resolved log paths included in the archive.
	LogFiles int `json:"log_files" yaml:"log_files"`

	// MissingLogFiles is the number of resolved paths that were reported
	// missing at verification time.
	MissingLogFiles int `json:"missing_log_files" yaml:"missing_log_files"`

	// ArchiveSize is the archive size in bytes.
	ArchiveSize int64 `json:"archive_size_bytes" yaml:"archive_size_bytes"`

	// Duration is the total run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary returns a one-line human-readable account of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"Collected %d diagnostic outputs and %d log files (%s) in %v. Archive: %s",
		r.Steps,
		r.LogFiles,
		formatBytes(r.ArchiveSize),
		r.Duration.Round(time.Millisecond),
		r.ArchivePath,
	)
}

// formatBytes formats bytes into human-readable format.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
