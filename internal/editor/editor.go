// Package editor is the interactive front-end for building and changing
// workspace layouts.
//
// The bubbletea models here only render state and translate keystrokes into
// layout.Action values — every mutation goes through layout.Apply, so the
// editing rules live in one testable place and the TUI stays dumb.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/txmux/tx/internal/layout"
)

// view mode
type viewMode int

const (
	modeMenu viewMode = iota
	modePane
	modeInput
	modeConfirmRemove
)

// inputTarget identifies which field a text input edit applies to.
type inputTarget int

const (
	inputName inputTarget = iota
	inputBaseDir
	inputPaneDir
	inputPaneCommand
	inputResizeAmount
)

// Editor runs the interactive layout editor.
type Editor struct {
	// Mode selects Collecting (new layout) or Editing (loaded layout).
	Mode layout.Mode
	// Layout is the starting layout. It is never mutated; the editor
	// works on a clone via the state machine.
	Layout layout.Layout
}

// Result is the outcome of an editor session.
type Result struct {
	// Layout is the final layout. Only meaningful when Saved is true.
	Layout layout.Layout
	// Saved is true when the user saved, false on cancel.
	Saved bool
}

// Run starts the editor and blocks until the user saves or cancels.
func (e *Editor) Run() (Result, error) {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60

	m := &editorModel{
		state:     layout.NewState(e.Mode, e.Layout),
		textInput: ti,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	fm := final.(*editorModel)
	return Result{Layout: fm.state.Layout, Saved: fm.state.Saved}, nil
}

// menu entry kinds for the top-level menu
type menuEntry int

const (
	entryName menuEntry = iota
	entryBaseDir
	entryPane // one per pane, paneIdx set
	entryAddPane
	entrySave
	entryCancel
)

type menuItem struct {
	entry   menuEntry
	paneIdx int
}

// pane submenu rows
type paneEntry int

const (
	paneSplit paneEntry = iota
	paneDir
	paneCommand
	paneResizeDim
	paneResizeAmount
	paneRemove
	paneBack
)

// editorModel implements tea.Model.
type editorModel struct {
	state layout.State

	mode   viewMode
	cursor int

	// pane submenu
	paneCursor int

	// text input
	textInput textinput.Model
	target    inputTarget

	// pending removal awaiting confirmation
	removeIdx int

	errMsg string
	width  int
	height int
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

// apply runs one transition and stores any error for display.
func (m *editorModel) apply(a layout.Action) {
	next, err := layout.Apply(m.state, a)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.state = next
}

// menuItems builds the visible top-level menu for the current state.
func (m *editorModel) menuItems() []menuItem {
	items := []menuItem{{entry: entryName}, {entry: entryBaseDir}}
	for i := range m.state.Layout.Panes {
		items = append(items, menuItem{entry: entryPane, paneIdx: i})
	}
	items = append(items, menuItem{entry: entryAddPane}, menuItem{entry: entrySave}, menuItem{entry: entryCancel})
	return items
}

// paneEntries returns the submenu rows for the open pane. Pane 0 has no
// split row and no remove row.
func (m *editorModel) paneEntries() []paneEntry {
	entries := []paneEntry{}
	if m.state.Pane > 0 {
		entries = append(entries, paneSplit)
	}
	entries = append(entries, paneDir, paneCommand, paneResizeDim)
	if p := m.state.Layout.Panes[m.state.Pane]; p.Resize != nil {
		entries = append(entries, paneResizeAmount)
	}
	if m.state.Pane > 0 {
		entries = append(entries, paneRemove)
	}
	return append(entries, paneBack)
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmRemove:
			return m.updateConfirmRemove(msg)
		case modePane:
			return m.updatePane(msg)
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m *editorModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.apply(layout.Cancel{})
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case "enter":
		switch it := items[m.cursor]; it.entry {
		case entryName:
			m.startInput(inputName, m.state.Layout.Name)
		case entryBaseDir:
			m.startInput(inputBaseDir, m.state.Layout.BaseDir)
		case entryPane:
			m.apply(layout.EditPane{Index: it.paneIdx})
			if m.errMsg == "" {
				m.mode = modePane
				m.paneCursor = 0
			}
		case entryAddPane:
			// New panes default to a vertical split; the submenu opens
			// immediately so the user can adjust everything.
			m.apply(layout.AddPane{Pane: layout.Pane{Split: layout.SplitVertical}})
			if m.errMsg == "" {
				m.mode = modePane
				m.paneCursor = 0
			}
		case entrySave:
			m.apply(layout.Save{})
			if m.state.Done {
				return m, tea.Quit
			}
		case entryCancel:
			m.apply(layout.Cancel{})
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *editorModel) updatePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.paneEntries()
	pane := m.state.Layout.Panes[m.state.Pane]

	switch msg.String() {
	case "ctrl+c":
		m.apply(layout.Cancel{})
		return m, tea.Quit

	case "esc", "q":
		m.apply(layout.ClosePane{})
		m.mode = modeMenu
		return m, nil

	case "up", "k":
		if m.paneCursor > 0 {
			m.paneCursor--
		}

	case "down", "j":
		if m.paneCursor < len(entries)-1 {
			m.paneCursor++
		}

	case "enter":
		switch entries[m.paneCursor] {
		case paneSplit:
			// Toggle orientation.
			next := layout.SplitHorizontal
			if pane.Split == layout.SplitHorizontal {
				next = layout.SplitVertical
			}
			m.apply(layout.SetPaneSplit{Split: next})
		case paneDir:
			m.startInput(inputPaneDir, pane.Dir)
		case paneCommand:
			m.startInput(inputPaneCommand, pane.Command)
		case paneResizeDim:
			// Cycle none -> width -> height -> none.
			switch {
			case pane.Resize == nil:
				m.apply(layout.SetPaneResize{Resize: &layout.Resize{Dim: layout.DimWidth, Amount: 80}})
			case pane.Resize.Dim == layout.DimWidth:
				m.apply(layout.SetPaneResize{Resize: &layout.Resize{Dim: layout.DimHeight, Amount: pane.Resize.Amount}})
			default:
				m.apply(layout.SetPaneResize{Resize: nil})
			}
		case paneResizeAmount:
			m.startInput(inputResizeAmount, strconv.Itoa(pane.Resize.Amount))
		case paneRemove:
			m.removeIdx = m.state.Pane
			m.mode = modeConfirmRemove
		case paneBack:
			m.apply(layout.ClosePane{})
			m.mode = modeMenu
		}
	}
	return m, nil
}

func (m *editorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.apply(layout.Cancel{})
		return m, tea.Quit

	case "esc":
		m.endInput()
		return m, nil

	case "enter":
		value := m.textInput.Value()
		switch m.target {
		case inputName:
			m.apply(layout.SetName{Name: value})
		case inputBaseDir:
			m.apply(layout.SetBaseDir{Dir: value})
		case inputPaneDir:
			m.apply(layout.SetPaneDir{Dir: value})
		case inputPaneCommand:
			m.apply(layout.SetPaneCommand{Command: value})
		case inputResizeAmount:
			amount, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				m.errMsg = fmt.Sprintf("not a number: %q", value)
				return m, nil
			}
			pane := m.state.Layout.Panes[m.state.Pane]
			dim := layout.DimWidth
			if pane.Resize != nil {
				dim = pane.Resize.Dim
			}
			m.apply(layout.SetPaneResize{Resize: &layout.Resize{Dim: dim, Amount: amount}})
		}
		if m.errMsg == "" {
			m.endInput()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *editorModel) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.apply(layout.RemovePane{Index: m.removeIdx})
		m.mode = modeMenu
		m.cursor = 0
	case "n", "N", "esc", "q":
		m.mode = modePane
	case "ctrl+c":
		m.apply(layout.Cancel{})
		return m, tea.Quit
	}
	return m, nil
}

func (m *editorModel) startInput(target inputTarget, current string) {
	m.target = target
	m.textInput.SetValue(current)
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.mode = modeInput
}

func (m *editorModel) endInput() {
	m.textInput.Blur()
	if m.state.Pane >= 0 {
		m.mode = modePane
	} else {
		m.mode = modeMenu
	}
}

func (m *editorModel) View() string {
	var b strings.Builder

	title := "New workspace"
	if m.state.Mode == layout.Editing {
		title = "Edit workspace"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch m.mode {
	case modeInput:
		b.WriteString(m.viewInput())
	case modeConfirmRemove:
		fmt.Fprintf(&b, "Remove pane %d? This shifts every later pane down by one.\n\n", m.removeIdx)
		b.WriteString(warnStyle.Render("y: remove    n: keep"))
	case modePane:
		b.WriteString(m.viewPane())
	default:
		b.WriteString(m.viewMenu())
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.helpLine()))
	return b.String()
}

func (m *editorModel) helpLine() string {
	switch m.mode {
	case modeInput:
		return "enter: apply    esc: discard"
	case modeConfirmRemove:
		return "y/n"
	case modePane:
		return "j/k: move    enter: change    esc: back"
	default:
		return "j/k: move    enter: select    q: cancel"
	}
}

func (m *editorModel) viewMenu() string {
	var b strings.Builder
	for i, it := range m.menuItems() {
		line := m.menuLine(it)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *editorModel) menuLine(it menuItem) string {
	l := m.state.Layout
	switch it.entry {
	case entryName:
		return "Name           " + valueStyle.Render(orPlaceholder(l.Name, "(unset)"))
	case entryBaseDir:
		return "Base directory " + valueStyle.Render(orPlaceholder(l.BaseDir, "(current directory)"))
	case entryPane:
		return fmt.Sprintf("Pane %d         %s", it.paneIdx, dimStyle.Render(summarizePane(l.Panes[it.paneIdx], it.paneIdx)))
	case entryAddPane:
		return "Add pane"
	case entrySave:
		return "Save"
	case entryCancel:
		return "Cancel"
	}
	return ""
}

func (m *editorModel) viewPane() string {
	i := m.state.Pane
	pane := m.state.Layout.Panes[i]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Pane %d", i)))

	for row, e := range m.paneEntries() {
		var line string
		switch e {
		case paneSplit:
			line = "Split          " + valueStyle.Render(string(pane.Split))
		case paneDir:
			line = "Directory      " + valueStyle.Render(orPlaceholder(pane.Dir, "(inherit base)"))
		case paneCommand:
			line = "Command        " + valueStyle.Render(orPlaceholder(pane.Command, "(none)"))
		case paneResizeDim:
			if pane.Resize == nil {
				line = "Resize         " + dimStyle.Render("(none)")
			} else {
				line = "Resize         " + valueStyle.Render(string(pane.Resize.Dim))
			}
		case paneResizeAmount:
			line = "Resize amount  " + valueStyle.Render(strconv.Itoa(pane.Resize.Amount))
		case paneRemove:
			line = "Remove pane"
		case paneBack:
			line = "Back"
		}
		if row == m.paneCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *editorModel) viewInput() string {
	label := map[inputTarget]string{
		inputName:         "Workspace name",
		inputBaseDir:      "Base directory",
		inputPaneDir:      "Pane directory (empty inherits base)",
		inputPaneCommand:  "Startup command",
		inputResizeAmount: "Resize amount (cells)",
	}[m.target]
	return headerStyle.Render(label) + "\n\n" + m.textInput.View()
}

// summarizePane renders a one-line description of a pane for the menu.
func summarizePane(p layout.Pane, idx int) string {
	parts := []string{}
	if idx == 0 {
		parts = append(parts, "root")
	} else {
		parts = append(parts, string(p.Split))
	}
	if p.Dir != "" {
		parts = append(parts, p.Dir)
	}
	if p.Command != "" {
		parts = append(parts, p.Command)
	}
	if p.Resize != nil {
		parts = append(parts, fmt.Sprintf("%s=%d", p.Resize.Dim, p.Resize.Amount))
	}
	return strings.Join(parts, " · ")
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
