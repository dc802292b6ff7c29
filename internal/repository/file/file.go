// Package file implements domain.SnapshotBacking on a single flat JSON
// file: {"users":[...],"boards":[...],"tasks":[...]}. The whole document
// is rewritten on every save.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/msomdec/taskboard/internal/domain"
)

// Backing is a flat-file snapshot backing.
type Backing struct {
	path string
}

// New creates a file backing at the given path, creating the parent
// directory if needed.
func New(path string) (*Backing, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &Backing{path: path}, nil
}

// Load reads and decodes the snapshot file. A missing file reports
// domain.ErrNotFound. A file that exists but does not decode is treated
// as absent after logging a warning, so a corrupted snapshot degrades to
// an empty store instead of blocking startup.
func (b *Backing) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("snapshot file is corrupted, starting empty", "path", b.path, "error", err)
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

// Save serializes the snapshot and replaces the file. The write goes
// through a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a torn snapshot behind.
func (b *Backing) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}
