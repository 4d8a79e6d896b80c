package layout

import (
	"errors"
	"testing"
)

func collecting(t *testing.T) State {
	t.Helper()
	return NewState(Collecting, New("dev", "/proj"))
}

// applyAll folds a sequence of actions, failing the test on any error.
func applyAll(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = Apply(s, a)
		if err != nil {
			t.Fatalf("Apply(%T): %v", a, err)
		}
	}
	return s
}

func TestApplyScalarFields(t *testing.T) {
	s := applyAll(t, collecting(t),
		SetName{Name: "  web  "},
		SetBaseDir{Dir: "/srv/web"},
	)

	if s.Layout.Name != "web" {
		t.Errorf("name: got %q, want %q", s.Layout.Name, "web")
	}
	if s.Layout.BaseDir != "/srv/web" {
		t.Errorf("base dir: got %q, want %q", s.Layout.BaseDir, "/srv/web")
	}
}

func TestApplyEmptyNameRejected(t *testing.T) {
	s := collecting(t)
	next, err := Apply(s, SetName{Name: "   "})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("SetName(blank): got %v, want ErrEmptyName", err)
	}
	if next.Layout.Name != s.Layout.Name {
		t.Error("failed transition changed the state")
	}
}

func TestApplyAddPaneOpensIt(t *testing.T) {
	s := applyAll(t, collecting(t), AddPane{Pane: Pane{Split: SplitHorizontal}})

	if len(s.Layout.Panes) != 2 {
		t.Fatalf("pane count: got %d, want 2", len(s.Layout.Panes))
	}
	if s.Pane != 1 {
		t.Errorf("open pane: got %d, want 1", s.Pane)
	}
}

func TestApplyPaneFieldEdits(t *testing.T) {
	s := applyAll(t, collecting(t),
		AddPane{Pane: Pane{Split: SplitVertical}},
		SetPaneDir{Dir: "/proj/api"},
		SetPaneCommand{Command: "make serve"},
		SetPaneResize{Resize: &Resize{Dim: DimHeight, Amount: 20}},
		SetPaneSplit{Split: SplitHorizontal},
		ClosePane{},
	)

	p := s.Layout.Panes[1]
	if p.Dir != "/proj/api" {
		t.Errorf("dir: got %q", p.Dir)
	}
	if p.Command != "make serve" {
		t.Errorf("command: got %q", p.Command)
	}
	if p.Resize == nil || p.Resize.Dim != DimHeight || p.Resize.Amount != 20 {
		t.Errorf("resize: got %+v", p.Resize)
	}
	if p.Split != SplitHorizontal {
		t.Errorf("split: got %q", p.Split)
	}
	if s.Pane != -1 {
		t.Errorf("open pane after ClosePane: got %d, want -1", s.Pane)
	}
}

func TestApplyRootPaneProtections(t *testing.T) {
	s := applyAll(t, collecting(t), EditPane{Index: 0})

	if _, err := Apply(s, SetPaneSplit{Split: SplitVertical}); !errors.Is(err, ErrRootSplit) {
		t.Errorf("SetPaneSplit on pane 0: got %v, want ErrRootSplit", err)
	}
	if _, err := Apply(s, RemovePane{Index: 0}); !errors.Is(err, ErrRootRemove) {
		t.Errorf("RemovePane(0): got %v, want ErrRootRemove", err)
	}

	// Pane 0 takes directory and command edits like any other pane.
	s = applyAll(t, s, SetPaneCommand{Command: "vim"})
	if s.Layout.Panes[0].Command != "vim" {
		t.Errorf("pane 0 command: got %q", s.Layout.Panes[0].Command)
	}
}

func TestApplyRemovePaneClampsOpenIndex(t *testing.T) {
	s := applyAll(t, collecting(t),
		AddPane{Pane: Pane{Split: SplitVertical}},
		AddPane{Pane: Pane{Split: SplitVertical}},
	)
	// Pane 2 is open; removing it must not leave a dangling open index.
	s = applyAll(t, s, RemovePane{Index: 2})

	if s.Pane != -1 {
		t.Errorf("open pane after removing it: got %d, want -1", s.Pane)
	}
	if len(s.Layout.Panes) != 2 {
		t.Errorf("pane count: got %d, want 2", len(s.Layout.Panes))
	}
}

func TestApplySaveValidates(t *testing.T) {
	s := NewState(Collecting, New("", "/proj"))

	if _, err := Apply(s, Save{}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("Save with empty name: got %v, want ErrEmptyName", err)
	}

	s = applyAll(t, s, SetName{Name: "dev"}, Save{})
	if !s.Done || !s.Saved {
		t.Errorf("after Save: Done=%v Saved=%v, want true/true", s.Done, s.Saved)
	}
}

func TestApplyCancelDiscards(t *testing.T) {
	s := applyAll(t, collecting(t), Cancel{})
	if !s.Done || s.Saved {
		t.Errorf("after Cancel: Done=%v Saved=%v, want true/false", s.Done, s.Saved)
	}

	if _, err := Apply(s, SetName{Name: "late"}); err == nil {
		t.Error("Apply after session end: want error, got nil")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := collecting(t)
	applyAll(t, s,
		AddPane{Pane: Pane{Split: SplitVertical}},
		SetPaneCommand{Command: "htop"},
	)

	if len(s.Layout.Panes) != 1 {
		t.Errorf("input state mutated: pane count %d, want 1", len(s.Layout.Panes))
	}
}
