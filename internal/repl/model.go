package repl

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxHistory bounds the results kept on screen.
const maxHistory = 100

// Model is the bubbletea model of the terminal UI.
type Model struct {
	settings Settings
	input    textinput.Model
	history  []outcome
	quitting bool
}

// NewModel returns a focused model ready to read expressions.
func NewModel(s Settings) Model {
	ti := textinput.New()
	ti.Prompt = s.Prompt
	ti.Placeholder = "2+5*9/3^2"
	ti.CharLimit = 1024
	ti.Focus()
	return Model{settings: s, input: ti}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.history = nil
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	if isExit(line) {
		m.quitting = true
		return m, tea.Quit
	}
	m.history = append(m.history, m.settings.evaluate(line))
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.settings.Banner != "" {
		b.WriteString(titleStyle.Render(m.settings.Banner))
		b.WriteString("\n")
	}
	for _, o := range m.history {
		b.WriteString(expressionStyle.Render(o.input))
		b.WriteString("\n")
		if o.err != nil {
			b.WriteString(errorStyle.Render(o.text))
		} else {
			b.WriteString("Result: " + resultStyle.Render(o.text))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: evaluate • ctrl+l: clear • esc: quit"))
	return b.String()
}
