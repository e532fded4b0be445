// Package store persists match state snapshots as JSON files. It is a
// collaborator of the match core: it consumes encoded snapshots and
// never reaches into live engine state.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/sidelined/internal/match"
)

// Store reads and writes match snapshots under a directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, logger: logger.WithPrefix("store")}, nil
}

// Path returns the file path for a named match.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes a snapshot atomically. Live stints are saved as-is so a
// reloaded match resumes mid-stint rather than losing the open interval.
func (s *Store) Save(name string, state *match.State) error {
	data, err := match.MarshalState(state)
	if err != nil {
		return fmt.Errorf("encode match %q: %w", name, err)
	}
	path := s.Path(name)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save match %q: %w", name, err)
	}
	s.logger.Debug("Saved match", "name", name, "path", path, "bytes", len(data))
	return nil
}

// Load reads a snapshot. The decoded state has already been normalized
// by the codec, so callers can hand it straight to a new engine.
func (s *Store) Load(name string) (*match.State, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("load match %q: %w", name, err)
	}
	state, err := match.UnmarshalState(data)
	if err != nil {
		return nil, fmt.Errorf("load match %q: %w", name, err)
	}
	s.logger.Debug("Loaded match", "name", name, "players", len(state.Roster))
	return state, nil
}

// writeFileAtomic writes data via a temp file and rename so readers see
// either the old complete file or the new complete file, never a partial
// write. The temp file lives in the target directory because
// cross-filesystem renames are not atomic.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Rename succeeded; disarm the cleanup.
	tmpFile = nil
	return nil
}
