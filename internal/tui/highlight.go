package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sourcetable/lang-sql/dialect"
	"github.com/sourcetable/lang-sql/lexer"
)

var kindStyles = map[lexer.Kind]lipgloss.Style{
	lexer.Keyword:          lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	lexer.Builtin:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lexer.TypeName:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	lexer.String:           lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lexer.Bits:             lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lexer.Number:           lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	lexer.LineComment:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	lexer.BlockComment:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	lexer.Operator:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	lexer.SpecialVar:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	lexer.QuotedIdentifier: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

// Highlight renders src with a lipgloss style per token kind. Newlines pass
// through unstyled so multi-line SQL keeps its shape.
func Highlight(src string, d *dialect.Dialect) string {
	var b strings.Builder
	b.Grow(len(src) * 2)

	for _, tok := range lexer.Tokenize(src, d) {
		style, ok := kindStyles[tok.Kind]
		if !ok {
			b.WriteString(tok.Text)
			continue
		}
		lines := strings.Split(tok.Text, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i < len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
