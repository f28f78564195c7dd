/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/sysgrab/pkg/errors"
)

// Step describes one configured diagnostic command: a human-readable label,
// the shell command line to run, and the file name (inside the workspace)
// that receives the combined output.
type Step struct {
	Description string `json:"description" yaml:"description"`
	Command     string `json:"command" yaml:"command"`
	Output      string `json:"output" yaml:"output"`
}

// Config holds the full collection configuration: where the archive goes,
// whether the run pauses between steps, the diagnostic step sequence, and
// the log path patterns to gather.
type Config struct {
	// Destination is the directory that receives the final archive.
	// Defaults to the system temporary directory.
	Destination string `json:"destination" yaml:"destination"`

	// NonInteractive disables the per-step operator pause.
	NonInteractive bool `json:"nonInteractive" yaml:"nonInteractive"`

	// Steps is the ordered diagnostic command sequence. Order is preserved
	// at run time and the first failing step aborts the run.
	Steps []Step `json:"steps" yaml:"steps"`

	// LogPatterns is the list of path patterns (glob syntax) expanded
	// against the live filesystem at collection time.
	LogPatterns []string `json:"logPatterns" yaml:"logPatterns"`
}

// Default returns the built-in collection configuration.
func Default() *Config {
	return &Config{
		Destination: os.TempDir(),
		Steps: []Step{
			{Description: "CPU usage snapshot", Command: "top -bn1", Output: "top_output.txt"},
			{Description: "Memory usage", Command: "free -h", Output: "memory_output.txt"},
			{Description: "Disk I/O statistics", Command: "iostat -x 1 5", Output: "iostat_output.txt"},
			{Description: "Network utilization", Command: "sar -n DEV 1 5", Output: "network_output.txt"},
			{Description: "Load average", Command: "uptime", Output: "uptime_output.txt"},
			{Description: "CPU and memory over time", Command: "vmstat 1 10", Output: "vmstat_detailed_output.txt"},
			{Description: "System activity over time", Command: "sar -u 1 10", Output: "sar_detailed_output.txt"},
			{Description: "Per-process usage over time", Command: "pidstat 1 10", Output: "pidstat_detailed_output.txt"},
			{Description: "Running services", Command: "systemctl list-units --type=service --state=running", Output: "running_services.txt"},
			{Description: "Disk space usage", Command: "df -h", Output: "disk_space.txt"},
		},
		LogPatterns: []string{
			"/var/log/syslog*",
			"/var/log/messages*",
			"/var/log/kern.log*",
			"/var/log/auth.log*",
			"/var/log/dmesg*",
			"/var/log/boot.log*",
			"/var/log/nginx/*.log",
			"/var/log/httpd/*log",
			"/var/log/mysql/*.log",
		},
	}
}

// Load reads a YAML configuration file and overlays it on the defaults.
// Empty or omitted fields keep their default values. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	var overlay Config
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse config file %q", path), err)
	}

	if strings.TrimSpace(overlay.Destination) != "" {
		cfg.Destination = overlay.Destination
	}
	if overlay.NonInteractive {
		cfg.NonInteractive = true
	}
	if len(overlay.Steps) > 0 {
		cfg.Steps = overlay.Steps
	}
	if len(overlay.LogPatterns) > 0 {
		cfg.LogPatterns = overlay.LogPatterns
	}

	return cfg, nil
}

// Validate checks the configuration for internal consistency: every step
// needs a description, a command, and a unique bare output file name, and
// the destination must not be empty.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Destination) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "destination directory cannot be empty")
	}

	seen := make(map[string]int, len(c.Steps))
	for i, s := range c.Steps {
		if strings.TrimSpace(s.Description) == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"step description cannot be empty", map[string]any{"step": i})
		}
		if strings.TrimSpace(s.Command) == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"step command cannot be empty", map[string]any{"step": i, "description": s.Description})
		}
		out := strings.TrimSpace(s.Output)
		if out == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"step output file name cannot be empty", map[string]any{"step": i, "description": s.Description})
		}
		if strings.ContainsAny(out, `/\`) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"step output must be a bare file name", map[string]any{"step": i, "output": out})
		}
		if prev, ok := seen[out]; ok {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"duplicate step output file name", map[string]any{"output": out, "steps": []int{prev, i}})
		}
		seen[out] = i
	}

	for i, p := range c.LogPatterns {
		if strings.TrimSpace(p) == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"log pattern cannot be empty", map[string]any{"pattern": i})
		}
	}

	return nil
}
