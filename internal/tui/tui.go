// Package tui is a small interactive demo: a single-line SQL prompt with a
// completion dropdown fed by the complete package.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sourcetable/lang-sql/complete"
	"github.com/sourcetable/lang-sql/dialect"
)

const maxVisible = 5

var (
	popupStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the demo application state.
type Model struct {
	input    textinput.Model
	cfg      complete.Config
	filtered []complete.Candidate
	selected int
	visible  bool
}

// New builds the demo model around a completion config.
func New(cfg complete.Config) Model {
	if cfg.Dialect == nil {
		cfg.Dialect = dialect.StandardSQL()
	}
	ti := textinput.New()
	ti.Prompt = "sql> "
	ti.Focus()
	return Model{input: ti, cfg: cfg}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && m.visible {
		switch key.String() {
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.filtered)-1 {
				m.selected++
			}
			return m, nil
		case "tab", "enter":
			m.accept()
			return m, nil
		case "esc":
			m.visible = false
			return m, nil
		}
	}
	if isKey {
		switch key.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if isKey {
		m.refresh()
	}
	return m, cmd
}

// refresh recomputes the dropdown for the current text and cursor.
func (m *Model) refresh() {
	text := m.input.Value()
	cursor := m.input.Position()

	_, prefix := complete.PathBeforeCursor(text, cursor, m.cfg)
	candidates := complete.Complete(text, cursor, m.cfg)
	m.filtered = complete.Filter(prefix, candidates)
	m.selected = 0
	m.visible = len(m.filtered) > 0 && (prefix != "" || endsWithDot(text, cursor))
}

// accept replaces the word under the cursor with the selected candidate.
func (m *Model) accept() {
	if m.selected >= len(m.filtered) {
		return
	}
	text := m.input.Value()
	cursor := m.input.Position()
	from, _ := complete.WordAt(text, cursor)
	label := m.filtered[m.selected].Label

	m.input.SetValue(text[:from] + label + text[cursor:])
	m.input.SetCursor(from + len(label))
	m.visible = false
	m.filtered = nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(Highlight(m.input.Value(), m.cfg.Dialect))
	b.WriteByte('\n')

	if m.visible {
		visible, offset := window(m.filtered, m.selected)
		for i, c := range visible {
			line := " " + c.Label
			if c.Detail != "" {
				line += "  " + c.Detail
			} else if c.Type != "" {
				line += "  " + c.Type
			}
			if offset+i == m.selected {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(popupStyle.Render(line))
			}
			b.WriteByte('\n')
		}
	}
	b.WriteString(hintStyle.Render("tab/enter accept · esc dismiss · ctrl+c quit"))
	return b.String()
}

// window slices the candidate list around the selection.
func window(items []complete.Candidate, selected int) ([]complete.Candidate, int) {
	if len(items) <= maxVisible {
		return items, 0
	}
	offset := 0
	if selected >= maxVisible {
		offset = selected - maxVisible + 1
	}
	end := offset + maxVisible
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], offset
}

func endsWithDot(text string, cursor int) bool {
	return cursor > 0 && cursor <= len(text) && text[cursor-1] == '.'
}
