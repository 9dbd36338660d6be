// Package tui is the terminal keypad: a bubbletea program around keypad.State.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/keypad"
)

var (
	exprStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	displayStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	resultStyle   = displayStyle.BorderForeground(lipgloss.Color("42"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const help = "0-9 y m w d + - · enter = · esc clear · tab/space shortcuts · ctrl+c quit"

// Model is the bubbletea model. The calculator state itself is immutable;
// every key replaces it.
type Model struct {
	state  keypad.State
	clock  calc.Clock
	cursor int // index into the current shortcuts, -1 when none is focused
}

// NewModel starts from the empty state.
func NewModel(clock calc.Clock) Model {
	return Model{state: keypad.Empty(), clock: clock, cursor: -1}
}

// Run launches the keypad and blocks until the user quits.
func Run(clock calc.Clock) error {
	p := tea.NewProgram(NewModel(clock))
	_, err := p.Run()
	return err
}

// State returns the current calculator state.
func (m Model) State() keypad.State { return m.state }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "ctrl+d":
		return m, tea.Quit
	case "tab":
		m.cursor = m.moveCursor(1)
		return m, nil
	case "shift+tab":
		m.cursor = m.moveCursor(-1)
		return m, nil
	case " ":
		return m.pressShortcut(), nil
	}

	if key, ok := KeyFor(keyMsg); ok {
		m.state = keypad.HandleKey(m.state, key)
		m.cursor = -1
	}
	return m, nil
}

// KeyFor maps a terminal key onto a keypad key token.
func KeyFor(msg tea.KeyMsg) (string, bool) {
	switch msg.String() {
	case "enter", "=":
		return keypad.KeyEvaluate, true
	case "esc", "c", "C":
		return keypad.KeyClear, true
	case "backspace":
		return keypad.KeyBackspace, true
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return "", false
	}
	switch r := msg.Runes[0]; {
	case r >= '0' && r <= '9':
		return string(r), true
	case strings.ContainsRune("+-ymwd", r):
		return string(r), true
	}
	return "", false
}

func (m Model) shortcuts() []keypad.Shortcut {
	return keypad.Shortcuts(keypad.Project(m.state, m.clock), m.clock)
}

// moveCursor steps over enabled shortcuts, wrapping around.
func (m Model) moveCursor(step int) int {
	scs := m.shortcuts()
	if len(scs) == 0 {
		return -1
	}
	i := m.cursor
	if i < 0 && step < 0 {
		i = 0
	}
	for range scs {
		i = (i + step + len(scs)) % len(scs)
		if !scs[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Model) pressShortcut() Model {
	scs := m.shortcuts()
	if m.cursor < 0 || m.cursor >= len(scs) || scs[m.cursor].Key == "" {
		return m
	}
	m.state = keypad.HandleKey(m.state, scs[m.cursor].Key)
	m.cursor = -1
	return m
}

func (m Model) View() string {
	v := keypad.Project(m.state, m.clock)
	var b strings.Builder

	b.WriteString(exprStyle.Render(expressionLine(v.Expression, v.Mode)))
	b.WriteString("\n")

	text := v.Display
	if v.Output != nil {
		text = v.Output.DisplayText()
	}
	if text == "" {
		text = "0"
	}
	style := displayStyle
	if v.Mode == keypad.ModeResult {
		style = resultStyle
	}
	b.WriteString(style.Render(text))
	b.WriteString("\n")

	if v.Info != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf("%s · %s · %s", v.Info.Value, v.Info.Weekday, v.Info.Week)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderShortcuts(v))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func expressionLine(expr *keypad.Expression, mode keypad.Mode) string {
	if expr == nil {
		return ""
	}
	line := expr.Left.DisplayText() + " " + string(expr.Operator)
	if expr.Right != nil {
		line += " " + expr.Right.DisplayText()
	}
	if mode == keypad.ModeResult {
		line += " ="
	}
	return line
}

func (m Model) renderShortcuts(v keypad.View) string {
	scs := keypad.Shortcuts(v, m.clock)
	cells := make([]string, 0, len(scs))
	for i, sc := range scs {
		label := sc.Label
		if sc.Hint != "" && v.InputMode != keypad.InputMonthEntered {
			label += " " + sc.Hint
		}
		switch {
		case i == m.cursor:
			label = cursorStyle.Render(label)
		case sc.Disabled:
			label = disabledStyle.Render(label)
		case sc.Current:
			label = currentStyle.Render(label)
		}
		cells = append(cells, label)
	}

	if v.InputMode != keypad.InputMonthEntered {
		return strings.Join(cells, "  ")
	}

	// Month grid: one row per week.
	rows := []string{helpStyle.Render("Mo Tu We Th Fr Sa Su")}
	for w := 0; w+7 <= len(cells); w += 7 {
		rows = append(rows, strings.Join(cells[w:w+7], " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
