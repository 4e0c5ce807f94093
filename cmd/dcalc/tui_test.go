package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/danielgtaylor/dcalc"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Keep rendered cells free of escape codes.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testModel(options ...dcalc.Option) model {
	return newModel(options, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func typed(s string) []tea.KeyMsg {
	var msgs []tea.KeyMsg
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var backspace = tea.KeyMsg{Type: tea.KeyBackspace}

func TestModelComputesAsYouType(t *testing.T) {
	m := press(t, testModel(), typed("2+3")...)
	assert.Equal(t, "2+3", m.input)
	assert.Equal(t, "5", m.result)

	m = press(t, m, typed("*4")...)
	assert.Equal(t, "14", m.result)

	m = press(t, m, typed("+")...)
	assert.True(t, strings.HasPrefix(m.result, "Error: "))

	m = press(t, m, backspace)
	assert.Equal(t, "2+3*4", m.input)
	assert.Equal(t, "14", m.result)
}

func TestModelShortcuts(t *testing.T) {
	m := press(t, testModel(), typed("s16)")...)
	assert.Equal(t, "sqrt(16)", m.input)
	assert.Equal(t, "4", m.result)

	m = press(t, m, typed("+a")...)
	m = press(t, m, typed("-2)")...)
	assert.Equal(t, "sqrt(16)+abs(-2)", m.input)
	assert.Equal(t, "6", m.result)

	m = press(t, m, typed("c")...)
	assert.Empty(t, m.input)
	assert.Empty(t, m.result)
}

func TestModelClearEntry(t *testing.T) {
	m := press(t, testModel(), typed("12 + 345")...)
	assert.Equal(t, "357", m.result)

	m = press(t, m, typed("e")...)
	assert.Equal(t, "12 + ", m.input)
	assert.True(t, strings.HasPrefix(m.result, "Error: "))

	m = press(t, m, typed("e")...)
	assert.Equal(t, "12 + ", m.input)

	m = press(t, testModel(), typed("12+3e")...)
	assert.Empty(t, m.input)
	assert.Empty(t, m.result)
}

func TestModelIgnoresOtherKeys(t *testing.T) {
	m := press(t, testModel(), typed("1x&+1")...)
	assert.Equal(t, "1+1", m.input)
	assert.Equal(t, "2", m.result)

	m = press(t, testModel(), backspace)
	assert.Empty(t, m.input)
}

func TestModelInputTooLong(t *testing.T) {
	m := press(t, testModel(), typed(strings.Repeat("1", maxInputLength))...)
	assert.Len(t, m.input, maxInputLength)

	m = press(t, m, typed("1")...)
	assert.Len(t, m.input, maxInputLength)
	assert.Equal(t, "Error: Input too long", m.result)

	m = press(t, testModel(), typed(strings.Repeat("1", maxInputLength-2)+"s")...)
	assert.Equal(t, "Error: Input too long", m.result)
}

func TestModelQuit(t *testing.T) {
	m := press(t, testModel(), typed("1")...)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Nil(t, cmd)

	m = press(t, m, backspace)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, testModel(), typed("12")...).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelOptions(t *testing.T) {
	m := press(t, testModel(dcalc.Precision(2)), typed("2/3")...)
	assert.Equal(t, "0.67", m.result)
}

func TestModelView(t *testing.T) {
	m := press(t, testModel(), typed("1/0")...)
	view := m.View()
	assert.Contains(t, view, "Input (3/50)")
	assert.Contains(t, view, "1/0")
	assert.Contains(t, view, "Error: division by zero")
	assert.Contains(t, view, "sqrt")
}

// click presses the left mouse button over a grid button, checking that the
// label is drawn in the cell being clicked.
func click(t *testing.T, m model, label string) model {
	t.Helper()
	const cellWidth, cellHeight = 8, 3
	top := lipgloss.Height(m.headerView())
	for r, row := range buttons {
		for c, l := range row {
			if l != label {
				continue
			}
			x, y := c*cellWidth+1, top+r*cellHeight+1
			lines := strings.Split(m.View(), "\n")
			require.Greater(t, len(lines), y)
			line := []rune(lines[y])
			require.GreaterOrEqual(t, len(line), (c+1)*cellWidth)
			assert.Contains(t, string(line[c*cellWidth:(c+1)*cellWidth]), label)

			next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			return next.(model)
		}
	}
	t.Fatalf("no button %q", label)
	return m
}

func TestModelMouse(t *testing.T) {
	m := testModel()
	for _, label := range []string{"7", "+", "2", "*", "3"} {
		m = click(t, m, label)
	}
	assert.Equal(t, "7+2*3", m.input)
	assert.Equal(t, "13", m.result)

	m = click(t, m, "C")
	assert.Empty(t, m.input)
	assert.Empty(t, m.result)

	m = click(t, m, "sqrt")
	m = click(t, m, "9")
	m = click(t, m, ")")
	assert.Equal(t, "sqrt(9)", m.input)
	assert.Equal(t, "3", m.result)

	m = press(t, testModel(), typed("12 + 34")...)
	m = click(t, m, "CE")
	assert.Equal(t, "12 + ", m.input)
}

func TestModelMouseIgnored(t *testing.T) {
	m := press(t, testModel(), typed("1")...)

	// Input box, right button, release and motion events do nothing.
	for _, msg := range []tea.MouseMsg{
		{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: 1, Y: lipgloss.Height(m.headerView()) + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
		{X: 1, Y: lipgloss.Height(m.headerView()) + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		{X: 1, Y: lipgloss.Height(m.headerView()) + 1, Action: tea.MouseActionMotion},
		{X: 200, Y: lipgloss.Height(m.headerView()) + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: 1, Y: 500, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
	} {
		next, cmd := m.Update(msg)
		assert.Nil(t, cmd)
		assert.Equal(t, "1", next.(model).input)
	}
}
