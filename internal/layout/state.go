package layout

import (
	"fmt"
	"strings"
)

// Mode is the top-level editor mode.
type Mode int

const (
	// Collecting builds a brand-new layout that has never been persisted.
	Collecting Mode = iota
	// Editing mutates a layout loaded from storage.
	Editing
)

// State is the editor state: the layout being built or changed, which pane
// (if any) is open for field editing, and whether the session has ended.
// Transitions are pure — the TUI renders states and feeds actions, nothing
// else mutates a State.
type State struct {
	Mode   Mode
	Layout Layout

	// Pane is the index currently open for editing, or -1 at the top menu.
	Pane int

	// Done is set by Save and Cancel. Saved distinguishes the two.
	Done  bool
	Saved bool
}

// NewState returns the initial editor state for the given mode.
// The layout is cloned so a cancelled session leaves the original untouched.
func NewState(mode Mode, l Layout) State {
	return State{Mode: mode, Layout: l.Clone(), Pane: -1}
}

// Action is an editor state transition.
type Action interface{ isAction() }

// SetName changes the workspace name.
type SetName struct{ Name string }

// SetBaseDir changes the base directory.
type SetBaseDir struct{ Dir string }

// AddPane appends a new pane and opens it for editing.
type AddPane struct{ Pane Pane }

// RemovePane deletes a non-root pane. The caller is expected to have
// confirmed the removal with the user first.
type RemovePane struct{ Index int }

// EditPane opens the pane at Index for field editing.
type EditPane struct{ Index int }

// ClosePane returns from pane editing to the top menu.
type ClosePane struct{}

// SetPaneSplit changes the split orientation of the open pane.
type SetPaneSplit struct{ Split Split }

// SetPaneDir changes the working directory of the open pane.
// An empty value means "inherit the base directory".
type SetPaneDir struct{ Dir string }

// SetPaneCommand changes the startup command of the open pane.
type SetPaneCommand struct{ Command string }

// SetPaneResize sets or clears the resize rule of the open pane.
type SetPaneResize struct{ Resize *Resize }

// Save validates the layout and ends the session with Saved set.
type Save struct{}

// Cancel ends the session discarding the in-memory layout.
type Cancel struct{}

func (SetName) isAction()        {}
func (SetBaseDir) isAction()     {}
func (AddPane) isAction()        {}
func (RemovePane) isAction()     {}
func (EditPane) isAction()       {}
func (ClosePane) isAction()      {}
func (SetPaneSplit) isAction()   {}
func (SetPaneDir) isAction()     {}
func (SetPaneCommand) isAction() {}
func (SetPaneResize) isAction()  {}
func (Save) isAction()           {}
func (Cancel) isAction()         {}

// Apply executes one transition and returns the new state. The input state
// is never mutated. A failed transition returns the input state unchanged
// together with the error, so the caller can surface it and keep going.
func Apply(s State, a Action) (State, error) {
	if s.Done {
		return s, fmt.Errorf("editor session already ended")
	}

	next := s
	next.Layout = s.Layout.Clone()

	switch act := a.(type) {
	case SetName:
		name := strings.TrimSpace(act.Name)
		if name == "" {
			return s, ErrEmptyName
		}
		next.Layout.Name = name

	case SetBaseDir:
		next.Layout.BaseDir = strings.TrimSpace(act.Dir)

	case AddPane:
		if err := next.Layout.AddPane(act.Pane); err != nil {
			return s, err
		}
		next.Pane = len(next.Layout.Panes) - 1

	case RemovePane:
		if err := next.Layout.RemovePane(act.Index); err != nil {
			return s, err
		}
		if next.Pane >= len(next.Layout.Panes) {
			next.Pane = -1
		}

	case EditPane:
		if act.Index < 0 || act.Index >= len(next.Layout.Panes) {
			return s, fmt.Errorf("pane index %d out of range", act.Index)
		}
		next.Pane = act.Index

	case ClosePane:
		next.Pane = -1

	case SetPaneSplit:
		p, err := openPane(&next)
		if err != nil {
			return s, err
		}
		if next.Pane == 0 {
			return s, ErrRootSplit
		}
		if !act.Split.Valid() {
			return s, fmt.Errorf("invalid split %q", act.Split)
		}
		p.Split = act.Split

	case SetPaneDir:
		p, err := openPane(&next)
		if err != nil {
			return s, err
		}
		p.Dir = strings.TrimSpace(act.Dir)

	case SetPaneCommand:
		p, err := openPane(&next)
		if err != nil {
			return s, err
		}
		p.Command = act.Command

	case SetPaneResize:
		p, err := openPane(&next)
		if err != nil {
			return s, err
		}
		if act.Resize != nil {
			if !act.Resize.Dim.Valid() {
				return s, fmt.Errorf("invalid resize dimension %q", act.Resize.Dim)
			}
			if act.Resize.Amount <= 0 {
				return s, fmt.Errorf("resize amount must be positive, got %d", act.Resize.Amount)
			}
			r := *act.Resize
			p.Resize = &r
		} else {
			p.Resize = nil
		}

	case Save:
		if err := next.Layout.Validate(); err != nil {
			return s, err
		}
		next.Done = true
		next.Saved = true

	case Cancel:
		next.Done = true
		next.Saved = false

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}

	return next, nil
}

// openPane returns the pane currently open for editing.
func openPane(s *State) (*Pane, error) {
	if s.Pane < 0 || s.Pane >= len(s.Layout.Panes) {
		return nil, fmt.Errorf("no pane open for editing")
	}
	return &s.Layout.Panes[s.Pane], nil
}
