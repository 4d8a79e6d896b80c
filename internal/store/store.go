// Package store persists workspace layouts on disk.
//
// Each workspace is stored as two files keyed by its name: an executable
// setup script (<name>.sh in the scripts directory) and a JSON descriptor
// (<name>.json in the layouts directory). The script is the authoritative
// half — every operation that touches both treats a descriptor-side failure
// as non-fatal.
//
// Both directories are injected at construction. Nothing in this package
// reads ambient global state, so tests run against t.TempDir.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/txmux/tx/internal/layout"
)

// Sentinel errors matched with errors.Is at the command boundary.
var (
	// ErrNotFound means no workspace with that name is stored.
	ErrNotFound = errors.New("workspace not found")
	// ErrExists means the target name is already taken.
	ErrExists = errors.New("workspace already exists")
)

// Store reads and writes workspace scripts and descriptors.
type Store struct {
	scriptsDir string
	layoutsDir string
}

// New returns a Store rooted at the two given directories, creating them if
// needed. A creation failure is returned but the Store is still usable —
// operations against a truly unusable directory fail on their own later.
func New(scriptsDir, layoutsDir string) (*Store, error) {
	s := &Store{scriptsDir: scriptsDir, layoutsDir: layoutsDir}
	var err error
	for _, dir := range []string{scriptsDir, layoutsDir} {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil && err == nil {
			err = fmt.Errorf("creating %s: %w", dir, mkErr)
		}
	}
	return s, err
}

// ScriptPath returns the path of the stored script for name.
func (s *Store) ScriptPath(name string) string {
	return filepath.Join(s.scriptsDir, name+".sh")
}

// LayoutPath returns the path of the stored JSON descriptor for name.
func (s *Store) LayoutPath(name string) string {
	return filepath.Join(s.layoutsDir, name+".json")
}

// Exists reports whether a workspace with the given name is stored.
// Either file counts — a descriptor-less script is still loadable by tmux,
// and a script-less descriptor is still editable.
func (s *Store) Exists(name string) bool {
	if _, err := os.Stat(s.ScriptPath(name)); err == nil {
		return true
	}
	if _, err := os.Stat(s.LayoutPath(name)); err == nil {
		return true
	}
	return false
}

// Load reads the JSON descriptor for name.
func (s *Store) Load(name string) (layout.Layout, error) {
	data, err := os.ReadFile(s.LayoutPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return layout.Layout{}, fmt.Errorf("reading descriptor for %s: %w", name, err)
	}
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("parsing descriptor for %s: %w", name, err)
	}
	return l, nil
}

// Save writes the compiled script and the JSON descriptor for l.
// The script is written first and executable; a descriptor write failure
// after a successful script write is returned but leaves the script behind.
func (s *Store) Save(l layout.Layout, script string) error {
	if err := os.WriteFile(s.ScriptPath(l.Name), []byte(script), 0o755); err != nil {
		return fmt.Errorf("writing script for %s: %w", l.Name, err)
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding descriptor for %s: %w", l.Name, err)
	}
	if err := os.WriteFile(s.LayoutPath(l.Name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing descriptor for %s: %w", l.Name, err)
	}
	return nil
}

// Delete removes the stored script and descriptor. The script removal is
// authoritative; a missing or stubborn descriptor is ignored. Deleting a
// workspace that does not exist returns ErrNotFound without touching disk.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := os.Remove(s.ScriptPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting script for %s: %w", name, err)
	}
	_ = os.Remove(s.LayoutPath(name))
	return nil
}

// Rename moves both files from oldName to newName as one logical operation
// and rewrites the descriptor's name field. The script move is the
// authoritative half; everything on the descriptor side is best-effort.
func (s *Store) Rename(oldName, newName string) error {
	if !s.Exists(oldName) {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if s.Exists(newName) {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}

	if err := os.Rename(s.ScriptPath(oldName), s.ScriptPath(newName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("moving script %s -> %s: %w", oldName, newName, err)
	}

	// Best-effort descriptor move: rewrite the name field on the way.
	if l, err := s.Load(oldName); err == nil {
		l.Name = newName
		if data, err := json.MarshalIndent(l, "", "  "); err == nil {
			if err := os.WriteFile(s.LayoutPath(newName), append(data, '\n'), 0o644); err == nil {
				_ = os.Remove(s.LayoutPath(oldName))
			}
		}
	}
	return nil
}

// List returns the names of all stored workspaces, sorted. A workspace
// counts if either of its files exists.
func (s *Store) List() ([]string, error) {
	seen := map[string]bool{}

	scripts, err := os.ReadDir(s.scriptsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing %s: %w", s.scriptsDir, err)
	}
	for _, e := range scripts {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sh" {
			seen[e.Name()[:len(e.Name())-3]] = true
		}
	}

	layouts, err := os.ReadDir(s.layoutsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing %s: %w", s.layoutsDir, err)
	}
	for _, e := range layouts {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			seen[e.Name()[:len(e.Name())-5]] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
