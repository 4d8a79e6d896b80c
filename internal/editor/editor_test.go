package editor

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/txmux/tx/internal/layout"
)

func newTestEditor(l layout.Layout) *editorModel {
	return &editorModel{
		state:     layout.NewState(layout.Collecting, l),
		textInput: textinput.New(),
		width:     120,
		height:    40,
	}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEscape} }

// typeText feeds a string into the focused text input rune by rune.
func typeText(m *editorModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestMenuNavigationStaysInBounds(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))

	m.Update(keyRune("k"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}

	n := len(m.menuItems())
	for i := 0; i < n+3; i++ {
		m.Update(keyRune("j"))
	}
	if m.cursor != n-1 {
		t.Errorf("cursor: got %d, want last item %d", m.cursor, n-1)
	}
}

func TestMenuAddPaneOpensSubmenu(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))

	// Menu: Name, Base directory, Pane 0, Add pane, ...
	for i := 0; i < 3; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter())

	if len(m.state.Layout.Panes) != 2 {
		t.Fatalf("pane count: got %d, want 2", len(m.state.Layout.Panes))
	}
	if m.mode != modePane {
		t.Errorf("mode: got %d, want pane submenu", m.mode)
	}
	if m.state.Pane != 1 {
		t.Errorf("open pane: got %d, want 1", m.state.Pane)
	}
	if m.state.Layout.Panes[1].Split != layout.SplitVertical {
		t.Errorf("new pane split: got %q, want vertical default", m.state.Layout.Panes[1].Split)
	}
}

func TestNameInputFlow(t *testing.T) {
	m := newTestEditor(layout.New("", "/proj"))

	m.Update(keyEnter()) // Name row
	if m.mode != modeInput {
		t.Fatalf("mode after selecting Name: got %d, want input", m.mode)
	}

	typeText(m, "web")
	m.Update(keyEnter())

	if m.state.Layout.Name != "web" {
		t.Errorf("name: got %q, want %q", m.state.Layout.Name, "web")
	}
	if m.mode != modeMenu {
		t.Errorf("mode after apply: got %d, want menu", m.mode)
	}
}

func TestInputEscDiscards(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))

	m.Update(keyEnter()) // Name row
	typeText(m, "scratch")
	m.Update(keyEsc())

	if m.state.Layout.Name != "dev" {
		t.Errorf("name after esc: got %q, want unchanged %q", m.state.Layout.Name, "dev")
	}
}

func TestPaneSplitToggle(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))
	for i := 0; i < 3; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter()) // Add pane, submenu open on Split row

	m.Update(keyEnter())
	if got := m.state.Layout.Panes[1].Split; got != layout.SplitHorizontal {
		t.Errorf("split after toggle: got %q, want horizontal", got)
	}
	m.Update(keyEnter())
	if got := m.state.Layout.Panes[1].Split; got != layout.SplitVertical {
		t.Errorf("split after second toggle: got %q, want vertical", got)
	}
}

func TestPaneResizeCycle(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))
	for i := 0; i < 3; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter()) // Add pane

	// Submenu: Split, Directory, Command, Resize, ...
	for i := 0; i < 3; i++ {
		m.Update(keyRune("j"))
	}

	m.Update(keyEnter())
	p := m.state.Layout.Panes[1]
	if p.Resize == nil || p.Resize.Dim != layout.DimWidth {
		t.Fatalf("resize after first cycle: got %+v, want width", p.Resize)
	}

	m.Update(keyEnter())
	p = m.state.Layout.Panes[1]
	if p.Resize == nil || p.Resize.Dim != layout.DimHeight {
		t.Fatalf("resize after second cycle: got %+v, want height", p.Resize)
	}

	m.Update(keyEnter())
	if p = m.state.Layout.Panes[1]; p.Resize != nil {
		t.Errorf("resize after third cycle: got %+v, want none", p.Resize)
	}
}

func TestRemovePaneNeedsConfirmation(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))
	for i := 0; i < 3; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter()) // Add pane

	// Submenu rows for pane 1: Split, Directory, Command, Resize, Remove, Back.
	for i := 0; i < 4; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter())
	if m.mode != modeConfirmRemove {
		t.Fatalf("mode: got %d, want confirm", m.mode)
	}

	m.Update(keyRune("n"))
	if len(m.state.Layout.Panes) != 2 {
		t.Fatalf("pane removed despite n: got %d panes", len(m.state.Layout.Panes))
	}
	if m.mode != modePane {
		t.Errorf("mode after n: got %d, want pane submenu", m.mode)
	}

	m.Update(keyEnter()) // Remove row again (cursor unchanged)
	m.Update(keyRune("y"))
	if len(m.state.Layout.Panes) != 1 {
		t.Errorf("pane count after y: got %d, want 1", len(m.state.Layout.Panes))
	}
	if m.mode != modeMenu {
		t.Errorf("mode after removal: got %d, want menu", m.mode)
	}
}

func TestSaveInvalidShowsError(t *testing.T) {
	m := newTestEditor(layout.New("", "/proj"))

	// Menu: Name, Base directory, Pane 0, Add pane, Save.
	for i := 0; i < 4; i++ {
		m.Update(keyRune("j"))
	}
	m.Update(keyEnter())

	if m.state.Done {
		t.Error("invalid layout saved")
	}
	if m.errMsg == "" {
		t.Error("no error shown for invalid save")
	}
}

func TestCancelFromMenu(t *testing.T) {
	m := newTestEditor(layout.New("dev", "/proj"))
	m.Update(keyRune("q"))

	if !m.state.Done || m.state.Saved {
		t.Errorf("after q: Done=%v Saved=%v, want true/false", m.state.Done, m.state.Saved)
	}
}

// --- Picker ---

func newTestPicker(names ...string) *pickerModel {
	return &pickerModel{names: names, running: map[string]bool{}, width: 120, height: 40}
}

func TestPickerLoad(t *testing.T) {
	m := newTestPicker("alpha", "beta")
	m.Update(keyRune("j"))
	m.Update(keyEnter())

	want := PickerResult{Action: PickLoad, Name: "beta"}
	if m.result != want {
		t.Errorf("result: got %+v, want %+v", m.result, want)
	}
}

func TestPickerEdit(t *testing.T) {
	m := newTestPicker("alpha")
	m.Update(keyRune("e"))

	want := PickerResult{Action: PickEdit, Name: "alpha"}
	if m.result != want {
		t.Errorf("result: got %+v, want %+v", m.result, want)
	}
}

func TestPickerDeleteConfirms(t *testing.T) {
	m := newTestPicker("alpha")

	m.Update(keyRune("d"))
	if m.result.Action != PickNone {
		t.Fatalf("delete fired without confirmation: %+v", m.result)
	}

	m.Update(keyRune("n"))
	if m.result.Action != PickNone {
		t.Fatalf("delete fired despite n: %+v", m.result)
	}

	m.Update(keyRune("d"))
	m.Update(keyRune("y"))
	want := PickerResult{Action: PickDelete, Name: "alpha"}
	if m.result != want {
		t.Errorf("result: got %+v, want %+v", m.result, want)
	}
}

func TestPickerEmptyListIgnoresActions(t *testing.T) {
	m := newTestPicker()
	for _, msg := range []tea.KeyMsg{keyEnter(), keyRune("e"), keyRune("d")} {
		m.Update(msg)
	}
	if m.result.Action != PickNone {
		t.Errorf("empty picker produced %+v", m.result)
	}
}
