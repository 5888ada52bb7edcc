package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/envsync/internal/model"
)

// OverwriteAction represents the outcome of the overwrite interaction.
type OverwriteAction int

const (
	// OverwriteActionNone means no decision was made (user quit).
	OverwriteActionNone OverwriteAction = iota
	// OverwriteActionApply means the user confirmed a selection.
	OverwriteActionApply
	// OverwriteActionCancel means the user cancelled; nothing is applied.
	OverwriteActionCancel
)

// ConflictEntry pairs a conflicting key with its current and incoming
// values for display.
type ConflictEntry struct {
	Key      string
	Current  string
	Incoming string
}

// OverwriteListResult contains the keys the user selected for overwrite.
type OverwriteListResult struct {
	Action OverwriteAction
	Keys   []string
}

// overwriteKeyMap defines the key bindings for the overwrite picker.
type overwriteKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
}

func defaultOverwriteKeyMap() overwriteKeyMap {
	return overwriteKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle overwrite"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "apply selection"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Styles for the overwrite picker.
var overwriteStyles = struct {
	Title  lipgloss.Style
	Info   lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
	Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// OverwriteListModel is the BubbleTea model for choosing which existing
// variables to overwrite.
type OverwriteListModel struct {
	entries  []ConflictEntry
	selected map[string]bool
	table    table.Model
	keys     overwriteKeyMap
	result   OverwriteListResult
	scope    model.Scope
	showHelp bool
	quitting bool
}

// NewOverwriteListModel creates a picker over the given conflicting entries.
func NewOverwriteListModel(entries []ConflictEntry, scope model.Scope) OverwriteListModel {
	selected := make(map[string]bool, len(entries))

	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Variable", Width: 24},
		{Title: "Current Value", Width: 28},
		{Title: "New Value", Width: 28},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = buildOverwriteRow(e, false)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(entries)+1, 15)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return OverwriteListModel{
		entries:  entries,
		selected: selected,
		table:    t,
		keys:     defaultOverwriteKeyMap(),
		scope:    scope,
	}
}

func buildOverwriteRow(e ConflictEntry, selected bool) table.Row {
	mark := "○"
	if selected {
		mark = "✓"
	}
	return table.Row{mark, e.Key, truncate(e.Current, 28), truncate(e.Incoming, 28)}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

// Init implements tea.Model.
func (m OverwriteListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m OverwriteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		newHeight := max(msg.Height-8, 3)
		if newHeight > len(m.entries)+1 {
			newHeight = len(m.entries) + 1
		}
		m.table.SetHeight(newHeight)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.result = OverwriteListResult{Action: OverwriteActionCancel}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.toggleCurrent()
			return m, nil

		case key.Matches(msg, m.keys.All):
			m.setAll(true)
			return m, nil

		case key.Matches(msg, m.keys.None):
			m.setAll(false)
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			m.result = OverwriteListResult{
				Action: OverwriteActionApply,
				Keys:   m.selectedKeys(),
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *OverwriteListModel) toggleCurrent() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return
	}
	e := m.entries[idx]
	m.selected[e.Key] = !m.selected[e.Key]
	m.refreshRow(idx)
}

func (m *OverwriteListModel) setAll(selected bool) {
	for i, e := range m.entries {
		m.selected[e.Key] = selected
		m.refreshRow(i)
	}
}

func (m *OverwriteListModel) refreshRow(idx int) {
	rows := m.table.Rows()
	if idx < len(rows) {
		rows[idx] = buildOverwriteRow(m.entries[idx], m.selected[m.entries[idx].Key])
		m.table.SetRows(rows)
	}
}

func (m OverwriteListModel) selectedKeys() []string {
	var keys []string
	for _, e := range m.entries {
		if m.selected[e.Key] {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// View implements tea.Model.
func (m OverwriteListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	scopeLabel := cases.Title(language.English).String(string(m.scope))
	b.WriteString(overwriteStyles.Title.Render(
		fmt.Sprintf("Existing Variables — %s Scope", scopeLabel)))
	b.WriteString("\n\n")

	b.WriteString(overwriteStyles.Info.Render(
		"These variables already exist. Select the ones to overwrite; unselected variables are left untouched."))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d/%d selected for overwrite", len(m.selectedKeys()), len(m.entries))
	b.WriteString(overwriteStyles.Status.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m OverwriteListModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"space toggle",
		"a all",
		"n none",
		"y apply",
		"q cancel",
		"? help",
	}
	return overwriteStyles.Help.Render(strings.Join(keys, " • "))
}

func (m OverwriteListModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Selection:
  space    Toggle overwrite for the highlighted variable
  a        Select all
  n        Select none

Actions:
  y        Apply the current selection
  q/Esc    Cancel without changing anything

General:
  ?        Toggle full help`
	return overwriteStyles.Help.Render(help)
}

// Result returns the outcome of the user interaction.
func (m OverwriteListModel) Result() OverwriteListResult {
	return m.result
}

// RunOverwriteList runs the interactive overwrite picker and returns the
// selected keys.
func RunOverwriteList(entries []ConflictEntry, scope model.Scope) (OverwriteListResult, error) {
	if len(entries) == 0 {
		return OverwriteListResult{}, nil
	}

	mdl := NewOverwriteListModel(entries, scope)
	finalModel, err := Run(mdl, tea.WithAltScreen())
	if err != nil {
		return OverwriteListResult{}, err
	}

	if m, ok := finalModel.(OverwriteListModel); ok {
		return m.Result(), nil
	}

	return OverwriteListResult{}, nil
}
