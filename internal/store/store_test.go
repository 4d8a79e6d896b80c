package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/txmux/tx/internal/layout"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "scripts"), filepath.Join(t.TempDir(), "layouts"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func sample(name string) layout.Layout {
	return layout.Layout{
		Name:    name,
		BaseDir: "/proj",
		Panes: []layout.Pane{
			{Command: "vim"},
			{Split: layout.SplitVertical, Command: "make watch"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	l := sample("dev")

	if err := s.Save(l, "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("dev")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip: got %+v, want %+v", got, l)
	}
}

func TestSaveWritesExecutableScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not meaningful on windows")
	}
	s := newTestStore(t)

	if err := s.Save(sample("dev"), "#!/bin/sh\nexit 0\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(s.ScriptPath("dev"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("script mode %v is not owner-executable", info.Mode())
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)

	if s.Exists("dev") {
		t.Error("Exists before save: got true")
	}

	if err := s.Save(sample("dev"), "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists("dev") {
		t.Error("Exists after save: got false")
	}

	// A workspace with only one of its two files still exists.
	if err := os.Remove(s.LayoutPath("dev")); err != nil {
		t.Fatalf("Remove descriptor: %v", err)
	}
	if !s.Exists("dev") {
		t.Error("Exists with script only: got false")
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing: got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing: got %v, want ErrNotFound", err)
	}

	if err := s.Save(sample("dev"), "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("dev"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("dev") {
		t.Error("workspace still exists after Delete")
	}
	if _, err := os.Stat(s.ScriptPath("dev")); !os.IsNotExist(err) {
		t.Errorf("script still on disk: %v", err)
	}
}

func TestRename(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(sample("old"), "#!/bin/sh\n# old\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Rename("old", "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if s.Exists("old") {
		t.Error("old name still exists after rename")
	}
	if !s.Exists("new") {
		t.Fatal("new name missing after rename")
	}

	// The descriptor carries the new name.
	l, err := s.Load("new")
	if err != nil {
		t.Fatalf("Load(new): %v", err)
	}
	if l.Name != "new" {
		t.Errorf("descriptor name after rename: got %q, want %q", l.Name, "new")
	}
}

func TestRenameErrors(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(sample("a"), "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(sample("b"), "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Rename("missing", "c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename missing source: got %v, want ErrNotFound", err)
	}
	if err := s.Rename("a", "b"); !errors.Is(err, ErrExists) {
		t.Errorf("Rename onto taken name: got %v, want ErrExists", err)
	}

	// Both workspaces untouched after the failed renames.
	if !s.Exists("a") || !s.Exists("b") {
		t.Error("failed rename removed a workspace")
	}
}

func TestRenameScriptOnly(t *testing.T) {
	s := newTestStore(t)

	// A workspace can exist as a bare script, e.g. hand-written.
	if err := os.WriteFile(s.ScriptPath("bare"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := s.Rename("bare", "moved"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(s.ScriptPath("moved")); err != nil {
		t.Errorf("moved script missing: %v", err)
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	names, err := s.List()
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List empty: got %v", names)
	}

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.Save(sample(name), "#!/bin/sh\n"); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	// Descriptor-only workspaces count too.
	if err := os.WriteFile(s.LayoutPath("orphan"), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(s.scriptsDir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	names, err = s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "orphan", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List: got %v, want %v", names, want)
	}
}

func TestDescriptorFormat(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(sample("dev"), "#!/bin/sh\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.LayoutPath("dev"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		t.Error("descriptor missing trailing newline")
	}
	for _, key := range []string{`"name"`, `"baseDir"`, `"panes"`} {
		if !strings.Contains(text, key) {
			t.Errorf("descriptor missing key %s:\n%s", key, text)
		}
	}
}
