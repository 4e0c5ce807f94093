package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/danielgtaylor/dcalc"
)

const maxInputLength = 50

// inputChars can be typed directly into the buffer.
const inputChars = "0123456789.+-*/%^!() "

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(maxInputLength + 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Width(6).
			Align(lipgloss.Center)
)

// buttons mirror the keys that insert text or edit the buffer.
var buttons = [][]string{
	{"C", "CE", "(", ")"},
	{"sqrt", "abs", "^", "%"},
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "!", "+"},
}

type keyMap struct {
	Sqrt       key.Binding
	Abs        key.Binding
	Clear      key.Binding
	ClearEntry key.Binding
	Backspace  key.Binding
	Submit     key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sqrt, k.Abs, k.Clear, k.ClearEntry, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sqrt, k.Abs},
		{k.Clear, k.ClearEntry, k.Backspace},
		{k.Submit, k.Quit},
	}
}

var keys = keyMap{
	Sqrt:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sqrt(")),
	Abs:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "abs(")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	ClearEntry: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "clear entry")),
	Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("q/ctrl+c", "quit")),
}

// model is the interactive calculator. It only edits the buffer and shows
// whatever dcalc.Compute returns for it.
type model struct {
	input   string
	result  string
	options []dcalc.Option
	logger  *slog.Logger
	keys    keyMap
	help    help.Model
}

func newModel(options []dcalc.Option, logger *slog.Logger) model {
	return model{
		options: options,
		logger:  logger,
		keys:    keys,
		help:    help.New(),
	}
}

func runTUI(m model) error {
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("run interactive mode: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if label, ok := m.buttonAt(msg.X, msg.Y); ok {
			m.logger.Debug("click", "button", label)
			return m.press(label)
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "q":
		if m.input == "" {
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		return m.press("C")
	case key.Matches(msg, m.keys.ClearEntry):
		return m.press("CE")
	case key.Matches(msg, m.keys.Sqrt):
		return m.press("sqrt")
	case key.Matches(msg, m.keys.Abs):
		return m.press("abs")
	case key.Matches(msg, m.keys.Backspace):
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
		m.evaluate()
	case key.Matches(msg, m.keys.Submit):
		m.logger.Debug("submit", "input", m.input)
		m.evaluate()
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		for _, r := range text {
			if !strings.ContainsRune(inputChars, r) {
				return m, nil
			}
		}
		return m.insert(text)
	}
	return m, nil
}

// press applies a button, whether clicked or reached through its key.
func (m model) press(label string) (tea.Model, tea.Cmd) {
	switch label {
	case "C":
		m.input = ""
	case "CE":
		// Drop everything typed since the last space.
		m.input = m.input[:strings.LastIndexByte(m.input, ' ')+1]
	case "sqrt", "abs":
		return m.insert(label + "(")
	default:
		return m.insert(label)
	}
	m.evaluate()
	return m, nil
}

func (m model) insert(text string) (tea.Model, tea.Cmd) {
	if len(m.input)+len(text) > maxInputLength {
		m.result = "Error: Input too long"
		return m, nil
	}
	m.input += text
	m.evaluate()
	return m, nil
}

func (m *model) evaluate() {
	if m.input == "" {
		m.result = ""
		return
	}
	m.result = dcalc.Compute(m.input, m.options...)
	m.logger.Debug("computed", "input", m.input, "result", m.result)
}

// buttonAt returns the grid button drawn at the given screen cell.
func (m model) buttonAt(x, y int) (string, bool) {
	cell := buttonStyle.Render(buttons[0][0])
	width, height := lipgloss.Width(cell), lipgloss.Height(cell)

	y -= lipgloss.Height(m.headerView())
	if x < 0 || y < 0 {
		return "", false
	}
	row, col := y/height, x/width
	if row >= len(buttons) || col >= len(buttons[row]) {
		return "", false
	}
	return buttons[row][col], true
}

// headerView renders the input and result boxes above the button grid.
func (m model) headerView() string {
	result := m.result
	if strings.HasPrefix(result, "Error: ") {
		result = errorStyle.Render(result)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Input (%d/%d)", len(m.input), maxInputLength)),
		boxStyle.Render(m.input),
		titleStyle.Render("Result"),
		boxStyle.Render(result),
	)
}

func (m model) gridView() string {
	rows := make([]string, len(buttons))
	for r, row := range buttons {
		cells := make([]string, len(row))
		for n, label := range row {
			cells[n] = buttonStyle.Render(label)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.gridView(),
		m.help.View(m.keys),
	)
}
