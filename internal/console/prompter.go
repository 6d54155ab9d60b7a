package console

import (
	"context"
	"errors"
	"io"

	"front-auditor/internal/menu"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// TerminalPrompter implements menu.Prompter and the login prompts on an
// interactive terminal.
type TerminalPrompter struct {
	in     io.Reader
	out    io.Writer
	output *termenv.Output
}

func NewTerminalPrompter(in io.Reader, out io.Writer) TerminalPrompter {
	return TerminalPrompter{
		in:     in,
		out:    out,
		output: termenv.NewOutput(out),
	}
}

func (p TerminalPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil, menu.ErrAborted
	}
	if err != nil {
		return nil, err
	}
	return final, nil
}

func (p TerminalPrompter) Select(ctx context.Context, header, question string, options []string) (string, error) {
	final, err := p.run(ctx, newSelectModel(header, question, options))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.aborted || m.chosen == "" {
		return "", menu.ErrAborted
	}
	return m.chosen, nil
}

func (p TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	choice, err := p.Select(ctx, "", question, []string{menu.ChoiceYes, menu.ChoiceNo})
	if err != nil {
		return false, err
	}
	return choice == menu.ChoiceYes, nil
}

func (p TerminalPrompter) Input(ctx context.Context, question string) (string, error) {
	return p.readLine(ctx, question, false)
}

// Password reads a line without echoing it.
func (p TerminalPrompter) Password(ctx context.Context, question string) (string, error) {
	return p.readLine(ctx, question, true)
}

func (p TerminalPrompter) readLine(ctx context.Context, question string, masked bool) (string, error) {
	final, err := p.run(ctx, newInputModel(question, masked))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", menu.ErrAborted
	}
	return m.Value(), nil
}

func (p TerminalPrompter) ClearScreen() {
	p.output.ClearScreen()
}
