package console

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendKeys(model tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		model, cmd = model.Update(k)
	}
	return model, cmd
}

func TestSelectModel(t *testing.T) {
	options := []string{"Iniciar Sesion", "Revisar PIT", "Exit"}

	testCases := []struct {
		name    string
		keys    []tea.KeyMsg
		chosen  string
		aborted bool
	}{
		{
			name:   "first option",
			keys:   []tea.KeyMsg{{Type: tea.KeyEnter}},
			chosen: "Iniciar Sesion",
		},
		{
			name:   "arrow down",
			keys:   []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			chosen: "Revisar PIT",
		},
		{
			name:   "wraps upwards",
			keys:   []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}},
			chosen: "Exit",
		},
		{
			name:   "vim keys",
			keys:   []tea.KeyMsg{keyRunes("j"), keyRunes("j"), keyRunes("k"), {Type: tea.KeyEnter}},
			chosen: "Revisar PIT",
		},
		{
			name:    "escape",
			keys:    []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEsc}},
			aborted: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			final, cmd := sendKeys(newSelectModel("Front 2 Go TOOLS (Sin sesión)", "Elije una opcion:", options), tc.keys...)
			require.NotNil(t, cmd)

			m := final.(selectModel)
			require.Equal(t, tc.chosen, m.chosen)
			require.Equal(t, tc.aborted, m.aborted)
		})
	}
}

func TestSelectModelView(t *testing.T) {
	m := newSelectModel("Front 2 Go TOOLS (alice)", "Elije una opcion:", []string{"Corte", "Volver"})
	view := m.View()
	require.Contains(t, view, "Front 2 Go TOOLS (alice)")
	require.Contains(t, view, "> Corte")
	require.Contains(t, view, "  Volver")

	final, _ := sendKeys(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Elije una opcion: Volver", strings.TrimSpace(final.View()))
}

func TestInputModel(t *testing.T) {
	m := newInputModel("Ingresa tu contraseña:", true)
	require.Equal(t, textinput.EchoPassword, m.input.EchoMode)

	final, _ := sendKeys(m, keyRunes("s3cret"))
	require.NotContains(t, final.View(), "s3cret")

	final, _ = sendKeys(final, tea.KeyMsg{Type: tea.KeyEnter})
	input := final.(inputModel)
	require.True(t, input.submitted)
	require.Equal(t, "s3cret", input.Value())
	require.NotContains(t, input.View(), "s3cret")
}

func TestInputModelAbort(t *testing.T) {
	final, _ := sendKeys(newInputModel("Ingresa tu nombre de usuario:", false), keyRunes("ali"), tea.KeyMsg{Type: tea.KeyCtrlC})
	input := final.(inputModel)
	require.True(t, input.aborted)
	require.False(t, input.submitted)
}
