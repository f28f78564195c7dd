/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package archiver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateChecksums(t *testing.T) {
	t.Parallel()

	t.Run("generates manifest for files", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		file1 := filepath.Join(tmpDir, "report.txt")
		file2 := filepath.Join(tmpDir, "top_output.txt")
		if err := os.WriteFile(file1, []byte("report"), 0644); err != nil {
			t.Fatalf("failed to create file1: %v", err)
		}
		if err := os.WriteFile(file2, []byte("top"), 0644); err != nil {
			t.Fatalf("failed to create file2: %v", err)
		}

		if err := GenerateChecksums(context.Background(), tmpDir, []string{file1, file2}); err != nil {
			t.Fatalf("GenerateChecksums() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(tmpDir, ChecksumFileName))
		if err != nil {
			t.Fatalf("failed to read %s: %v", ChecksumFileName, err)
		}
		content := string(data)

		if !strings.Contains(content, "report.txt") {
			t.Error("manifest should contain report.txt")
		}
		if !strings.Contains(content, "top_output.txt") {
			t.Error("manifest should contain top_output.txt")
		}

		lines := strings.Split(strings.TrimSpace(content), "\n")
		if len(lines) != 2 {
			t.Errorf("expected 2 lines, got %d", len(lines))
		}
		for _, line := range lines {
			parts := strings.Split(line, "  ")
			if len(parts) != 2 {
				t.Errorf("invalid manifest format: %s", line)
			}
			if len(parts[0]) != 64 {
				t.Errorf("expected 64 character hash, got %d: %s", len(parts[0]), parts[0])
			}
			if strings.HasPrefix(parts[1], "/") {
				t.Errorf("expected relative path, got %s", parts[1])
			}
		}
	})

	t.Run("returns error on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := GenerateChecksums(ctx, t.TempDir(), []string{}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		missing := filepath.Join(tmpDir, "does-not-exist.txt")
		if err := GenerateChecksums(context.Background(), tmpDir, []string{missing}); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
