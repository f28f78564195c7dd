/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package bundler

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mchmarny/sysgrab/pkg/errors"
)

// Workspace is the process-private temporary directory that owns all
// collected artifacts for one run. It is created at run start and removed
// exactly once on every exit path via Close.
type Workspace struct {
	// Dir is the workspace directory path.
	Dir string

	// ID uniquely identifies the run that owns this workspace.
	ID string

	closeOnce sync.Once
	closeErr  error
}

// NewWorkspace creates a uniquely named temporary directory under the
// system temporary location (TMPDIR respected).
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "sysgrab-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable,
			"failed to create workspace directory", err)
	}

	ws := &Workspace{
		Dir: dir,
		ID:  uuid.NewString(),
	}
	slog.Debug("workspace created", "dir", dir, "run_id", ws.ID)
	return ws, nil
}

// Path returns the absolute path of a file name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Files returns all regular files currently in the workspace, recursively.
func (w *Workspace) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to list workspace files", err)
	}
	return files, nil
}

// Close removes the workspace directory. It is safe to call multiple times;
// removal happens at most once. A removal failure is returned so the caller
// can log it, but by contract it never escalates past a warning.
func (w *Workspace) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = os.RemoveAll(w.Dir)
		if w.closeErr == nil {
			slog.Debug("workspace removed", "dir", w.Dir)
		}
	})
	return w.closeErr
}
