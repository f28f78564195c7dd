/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package archiver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumFileName is the standard name for the checksum manifest written
// into the workspace before archiving.
const ChecksumFileName = "checksums.txt"

// GenerateChecksums writes a checksum manifest for the given files into
// workspaceDir. Each line is `{sha256}  {path}` with paths relative to the
// workspace, so the manifest verifies cleanly after extraction.
func GenerateChecksums(ctx context.Context, workspaceDir string, files []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		sum, err := hashFile(file)
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", file, err)
		}

		relPath, err := filepath.Rel(workspaceDir, file)
		if err != nil {
			relPath = file
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, relPath))
	}

	manifestPath := filepath.Join(workspaceDir, ChecksumFileName)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(manifestPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated",
		"file_count", len(lines),
		"path", manifestPath,
	)

	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
