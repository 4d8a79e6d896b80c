// Package layout defines the workspace layout model and the pure editor
// state machine that mutates it.
//
// A Layout describes a named tmux workspace: a base directory and an ordered
// list of panes. Pane order is significant — it is both the tmux pane index
// and the split order. Pane 0 is the root pane: it is created with the
// session, never carries a split, and can never be removed.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Split is the orientation of the tmux split that creates a pane.
type Split string

const (
	// SplitHorizontal places the new pane beside the active one (tmux -h).
	SplitHorizontal Split = "horizontal"
	// SplitVertical places the new pane below the active one (tmux -v).
	SplitVertical Split = "vertical"
)

// Valid reports whether s is a known split orientation.
func (s Split) Valid() bool {
	return s == SplitHorizontal || s == SplitVertical
}

// Dimension selects which axis a resize applies to.
type Dimension string

const (
	DimWidth  Dimension = "width"
	DimHeight Dimension = "height"
)

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	return d == DimWidth || d == DimHeight
}

// Resize is an explicit pane resize applied after all panes are created.
type Resize struct {
	// Dim is the axis to resize: "width" or "height".
	Dim Dimension `json:"type"`
	// Amount is the new size in cells. Always positive.
	Amount int `json:"value"`
}

// Pane is one rectangular region of the workspace.
// Its index is implicit: position in Layout.Panes, 0-based.
type Pane struct {
	// Split is the orientation of the split that creates this pane.
	// Empty on pane 0, required on every other pane.
	Split Split `json:"split,omitempty"`
	// Dir is the pane's working directory. When empty the pane inherits
	// the layout base directory at script-run time.
	Dir string `json:"directory,omitempty"`
	// Command is an optional shell command typed into the pane once created.
	Command string `json:"command,omitempty"`
	// Resize is an optional explicit resize applied after all splits.
	Resize *Resize `json:"resize,omitempty"`
}

// Layout is a named, persistable description of a multi-pane tmux session.
type Layout struct {
	// Name identifies the workspace. It doubles as the tmux session name
	// and the file-system key for the stored script and descriptor.
	Name string `json:"name"`
	// BaseDir is the default working directory for every pane that does
	// not set its own.
	BaseDir string `json:"baseDir"`
	// Panes is the ordered pane list. Order defines both the tmux pane
	// index and the split order. Always at least one entry.
	Panes []Pane `json:"panes"`
}

// New returns a Layout with the root pane in place.
func New(name, baseDir string) Layout {
	return Layout{
		Name:    name,
		BaseDir: baseDir,
		Panes:   []Pane{{}},
	}
}

// Model invariant violations.
var (
	ErrEmptyName    = errors.New("layout name is empty")
	ErrNoPanes      = errors.New("layout has no panes")
	ErrRootSplit    = errors.New("pane 0 must not have a split")
	ErrRootRemove   = errors.New("pane 0 cannot be removed")
	ErrMissingSplit = errors.New("pane requires a split orientation")
)

// Validate checks the model invariants: non-empty name, at least one pane,
// no split on pane 0, a valid split on every other pane, and well-formed
// resize rules.
func (l Layout) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if len(l.Panes) == 0 {
		return ErrNoPanes
	}
	if l.Panes[0].Split != "" {
		return ErrRootSplit
	}
	for i, p := range l.Panes {
		if i > 0 && !p.Split.Valid() {
			return fmt.Errorf("pane %d: %w", i, ErrMissingSplit)
		}
		if p.Resize != nil {
			if !p.Resize.Dim.Valid() {
				return fmt.Errorf("pane %d: invalid resize dimension %q", i, p.Resize.Dim)
			}
			if p.Resize.Amount <= 0 {
				return fmt.Errorf("pane %d: resize amount must be positive, got %d", i, p.Resize.Amount)
			}
		}
	}
	return nil
}

// AddPane appends a pane. Every appended pane needs a valid split —
// it is created by splitting the previously active pane.
func (l *Layout) AddPane(p Pane) error {
	if !p.Split.Valid() {
		return ErrMissingSplit
	}
	l.Panes = append(l.Panes, p)
	return nil
}

// RemovePane deletes the pane at index i and shifts all higher panes down.
// The compiler derives tmux addressing from position, so no reindexing
// beyond the removal is needed. Pane 0 is never removable.
func (l *Layout) RemovePane(i int) error {
	if i == 0 {
		return ErrRootRemove
	}
	if i < 0 || i >= len(l.Panes) {
		return fmt.Errorf("pane index %d out of range [1,%d]", i, len(l.Panes)-1)
	}
	l.Panes = append(l.Panes[:i], l.Panes[i+1:]...)
	return nil
}

// Clone returns a deep copy of l. The editor works on a copy so that
// cancel discards every mutation.
func (l Layout) Clone() Layout {
	out := l
	out.Panes = make([]Pane, len(l.Panes))
	copy(out.Panes, l.Panes)
	for i, p := range l.Panes {
		if p.Resize != nil {
			r := *p.Resize
			out.Panes[i].Resize = &r
		}
	}
	return out
}

// Equal reports whether two layouts describe the same workspace.
func (l Layout) Equal(o Layout) bool {
	if l.Name != o.Name || l.BaseDir != o.BaseDir || len(l.Panes) != len(o.Panes) {
		return false
	}
	for i := range l.Panes {
		a, b := l.Panes[i], o.Panes[i]
		if a.Split != b.Split || a.Dir != b.Dir || a.Command != b.Command {
			return false
		}
		switch {
		case a.Resize == nil && b.Resize == nil:
		case a.Resize == nil || b.Resize == nil:
			return false
		case *a.Resize != *b.Resize:
			return false
		}
	}
	return true
}
