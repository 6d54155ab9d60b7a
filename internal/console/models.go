package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	questionStyle = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// selectModel is a single-choice list.
type selectModel struct {
	header   string
	question string
	options  []string
	keys     keyMap

	cursor  int
	chosen  string
	aborted bool
}

func newSelectModel(header, question string, options []string) selectModel {
	return selectModel{
		header:   header,
		question: question,
		options:  options,
		keys:     defaultKeyMap,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	message, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(message, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(message, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(message, m.keys.Down):
		m.cursor++
		if m.cursor >= len(m.options) {
			m.cursor = 0
		}
	case key.Matches(message, m.keys.Submit):
		if len(m.options) > 0 {
			m.chosen = m.options[m.cursor]
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	// the final frame stays on screen, keep only the answer
	if m.chosen != "" {
		return questionStyle.Render(m.question) + " " + m.chosen + "\n"
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	if m.header != "" {
		b.WriteString(headerStyle.Render(m.header))
		b.WriteString("\n\n")
	}
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString("\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + option))
		} else {
			b.WriteString("  " + option)
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Quit)))
	b.WriteString("\n")
	return b.String()
}

// inputModel reads one line of text, masked when it is a password.
type inputModel struct {
	question string
	input    textinput.Model
	keys     keyMap

	submitted bool
	aborted   bool
}

func newInputModel(question string, masked bool) inputModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 128
	if masked {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	input.Focus()
	return inputModel{question: question, input: input, keys: defaultKeyMap}
}

func (m inputModel) Value() string {
	return m.input.Value()
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if message, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(message, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(message, m.keys.Submit):
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.aborted {
		return questionStyle.Render(m.question) + "\n"
	}
	return questionStyle.Render(m.question) + "\n" + m.input.View() + "\n"
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		help := b.Help()
		parts[i] = help.Key + " " + help.Desc
	}
	return strings.Join(parts, " • ")
}
