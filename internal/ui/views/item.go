package views

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"palette/internal/domain"
)

// ItemRenderer handles rendering of palette items
type ItemRenderer struct {
	styles *Styles
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{
		styles: styles,
	}
}

// RenderItem renders one item row, marking the selection and the query matches
func (r *ItemRenderer) RenderItem(row domain.Row, query string, indent bool, width int) string {
	prefix := "  "
	if row.Selected {
		prefix = "> "
	}
	if indent {
		prefix += "  "
	}

	var text string
	if row.Disabled {
		text = r.styles.Disabled.Render(row.Value)
	} else {
		text = highlightMatch(row.Value, query, r.styles.Highlight)
	}
	line := prefix + text

	if row.Selected {
		if width > 0 {
			if w := lipgloss.Width(line); w < width {
				line += strings.Repeat(" ", width-w)
			}
		}
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

// highlightMatch styles the characters of text that the query picks out,
// matching in order and ignoring case
func highlightMatch(text, query string, highlight lipgloss.Style) string {
	if query == "" {
		return text
	}
	q := []rune(strings.ToLower(query))
	qi := 0

	var b strings.Builder
	for _, ch := range text {
		if qi < len(q) && unicode.ToLower(ch) == q[qi] {
			b.WriteString(highlight.Render(string(ch)))
			qi++
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
