package console

import (
	"fmt"
	"io"
	"strconv"

	"front-auditor/internal/outcome"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Reporter prints action results, colored by status, with a table of the
// failed steps when there are any.
type Reporter struct {
	out    io.Writer
	styles map[outcome.Status]lipgloss.Style
}

var statusIcons = map[outcome.Status]string{
	outcome.StatusSuccess:     "✔",
	outcome.StatusError:       "✘",
	outcome.StatusInformative: "ℹ",
}

func NewReporter(out io.Writer) Reporter {
	renderer := lipgloss.NewRenderer(out)
	return Reporter{
		out: out,
		styles: map[outcome.Status]lipgloss.Style{
			outcome.StatusSuccess:     renderer.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			outcome.StatusError:       renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			outcome.StatusInformative: renderer.NewStyle().Foreground(lipgloss.Color("11")),
		},
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func (r Reporter) Report(result outcome.Result) {
	line := statusIcons[result.Status] + " " + result.Message
	if result.ErrorCode != 0 {
		line += fmt.Sprintf(" (código %d)", result.ErrorCode)
	}
	fmt.Fprintln(r.out, r.styles[result.Status].Render(line))

	if result.Payload == nil {
		return
	}
	for _, file := range result.Payload.Files {
		fmt.Fprintln(r.out, "  "+file)
	}
	if len(result.Payload.Errors) == 0 {
		return
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"Estado", "Código", "Detalle"})
	for _, e := range result.Payload.Errors {
		t.AppendRow(table.Row{string(e.Status), strconv.Itoa(e.ErrorCode), e.Message})
	}
	t.Render()
}
