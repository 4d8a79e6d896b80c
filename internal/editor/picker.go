package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerAction is what the user chose to do with the selected workspace.
type PickerAction int

const (
	// PickNone means the picker was dismissed without a choice.
	PickNone PickerAction = iota
	// PickLoad loads the selected workspace.
	PickLoad
	// PickEdit opens the selected workspace in the editor.
	PickEdit
	// PickDelete deletes the selected workspace.
	PickDelete
)

// PickerResult is the outcome of an interactive list session.
type PickerResult struct {
	Action PickerAction
	Name   string
}

// RunPicker shows the interactive workspace list and returns the chosen
// action. Workspaces whose tmux session is currently running are marked.
// The caller executes the action after the TUI has released the terminal.
func RunPicker(names []string, running map[string]bool) (PickerResult, error) {
	m := &pickerModel{names: names, running: running}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}
	return final.(*pickerModel).result, nil
}

type pickerModel struct {
	names   []string
	running map[string]bool
	cursor  int
	confirm bool // delete confirmation pending
	result  PickerResult
	width   int
	height  int
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirm {
			switch msg.String() {
			case "y", "Y":
				m.result = PickerResult{Action: PickDelete, Name: m.names[m.cursor]}
				return m, tea.Quit
			default:
				m.confirm = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}

		case "enter":
			if len(m.names) > 0 {
				m.result = PickerResult{Action: PickLoad, Name: m.names[m.cursor]}
				return m, tea.Quit
			}

		case "e":
			if len(m.names) > 0 {
				m.result = PickerResult{Action: PickEdit, Name: m.names[m.cursor]}
				return m, tea.Quit
			}

		case "d":
			if len(m.names) > 0 {
				m.confirm = true
			}
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Workspaces"))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(dimStyle.Render("No workspaces yet. Run `tx create` to make one."))
	}

	for i, name := range m.names {
		marker := "  "
		if m.running[name] {
			marker = runningStyle.Render("● ")
		}
		line := marker + name
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirm {
		b.WriteString(warnStyle.Render("Delete " + m.names[m.cursor] + "? y/n"))
	} else {
		b.WriteString(statusStyle.Render("enter: load    e: edit    d: delete    q: quit    ● running"))
	}
	return b.String()
}
