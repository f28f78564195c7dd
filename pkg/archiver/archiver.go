/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package archiver

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/sysgrab/pkg/errors"
)

const archiveFilePerm = 0o600

// Archive packages the full recursive contents of sourceDir plus every path
// in extraPaths into a gzip-compressed tar archive at destPath.
//
// Workspace files are stored by their path relative to sourceDir. Extra
// paths (which may lie anywhere on the filesystem) are stored under their
// absolute path with the leading separator trimmed, so entries never collide
// and extract into a faithful directory layout. Extra paths that vanished
// since resolution are skipped with a warning: that is a race with the live
// system, not an error.
//
// destPath must not be a descendant of sourceDir; that arrangement would
// archive the archive into itself and is rejected loudly.
func Archive(ctx context.Context, sourceDir string, extraPaths []string, destPath string) error {
	if err := ValidateDestination(sourceDir, destPath); err != nil {
		return err
	}

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, archiveFilePerm)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create archive", err, map[string]any{"destination": destPath})
	}

	gzw := gzip.NewWriter(f)
	tw := tar.NewWriter(gzw)

	werr := writeEntries(ctx, tw, sourceDir, extraPaths)

	// Close in order; the first failure wins but all three run.
	if cerr := tw.Close(); werr == nil && cerr != nil {
		werr = cerr
	}
	if cerr := gzw.Close(); werr == nil && cerr != nil {
		werr = cerr
	}
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = cerr
	}

	if werr != nil {
		// Best effort: do not leave a truncated archive behind.
		if rmErr := os.Remove(destPath); rmErr != nil {
			slog.Warn("failed to remove partial archive", "path", destPath, "error", rmErr)
		}
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to write archive", werr, map[string]any{"destination": destPath})
	}

	slog.Debug("archive created", "path", destPath)
	return nil
}

// ValidateDestination rejects archive destinations that live inside the
// directory being archived.
func ValidateDestination(sourceDir, destPath string) error {
	absSrc, err := filepath.Abs(sourceDir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid source directory", err)
	}
	absDst, err := filepath.Abs(destPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid destination path", err)
	}

	rel, err := filepath.Rel(absSrc, absDst)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"archive destination must not be inside the directory being archived",
			map[string]any{"source": absSrc, "destination": absDst})
	}
	return nil
}

func writeEntries(ctx context.Context, tw *tar.Writer, sourceDir string, extraPaths []string) error {
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(sourceDir, path)
		if rerr != nil {
			return rerr
		}
		return addFile(tw, path, rel)
	})
	if err != nil {
		return fmt.Errorf("failed to archive workspace: %w", err)
	}

	for _, p := range extraPaths {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		info, serr := os.Stat(p)
		if serr != nil {
			slog.Warn("resolved path vanished before archiving", "path", p, "error", serr)
			continue
		}

		if !info.IsDir() {
			if aerr := addFile(tw, p, entryName(p)); aerr != nil {
				return aerr
			}
			continue
		}

		derr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Warn("skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			return addFile(tw, path, entryName(path))
		})
		if derr != nil {
			return fmt.Errorf("failed to archive %q: %w", p, derr)
		}
	}

	return nil
}

// entryName converts a filesystem path to its in-archive name: the absolute
// path with volume and leading separators stripped.
func entryName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = strings.TrimPrefix(abs, filepath.VolumeName(abs))
	return filepath.ToSlash(strings.TrimLeft(abs, string(filepath.Separator)))
}

func addFile(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		// The file existed moments ago; treat disappearance as a race.
		slog.Warn("file vanished before archiving", "path", path, "error", err)
		return nil
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build header for %q: %w", path, err)
	}
	hdr.Name = filepath.ToSlash(name)

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write header for %q: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := io.CopyN(tw, f, info.Size()); err != nil && err != io.EOF {
		return fmt.Errorf("failed to copy %q: %w", path, err)
	}
	return nil
}
