package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palette/internal/domain"
)

func sampleRows() []domain.Row {
	return []domain.Row{
		{ID: "u", Value: "loose", Selected: true},
		{ID: "a", Value: "apple", GroupID: "fruit"},
		{ID: "b", Value: "banana", GroupID: "fruit"},
		{ID: "p", Value: "profile", GroupID: "settings", Disabled: true},
	}
}

func TestLayoutInsertsHeadings(t *testing.T) {
	lines := Layout(sampleRows(), map[string]string{"fruit": "Fruits"})
	require.Len(t, lines, 6)

	kinds := make([]LineKind, len(lines))
	for i, l := range lines {
		kinds[i] = l.Kind
	}
	assert.Equal(t, []LineKind{LineItem, LineHeading, LineItem, LineItem, LineHeading, LineItem}, kinds)
	assert.Equal(t, "Fruits", lines[1].Heading)
	assert.Equal(t, "settings", lines[4].Heading, "missing headings fall back to the id")

	idx, ok := IndexOf(lines, "b")
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	_, ok = IndexOf(lines, "missing")
	assert.False(t, ok)
}

func TestScrollInto(t *testing.T) {
	tests := []struct {
		name                        string
		offset, height, first, last int
		want                        int
	}{
		{"already visible", 2, 3, 3, 3, 2},
		{"above window", 4, 3, 1, 1, 1},
		{"below window", 0, 3, 5, 5, 3},
		{"keep heading with item", 0, 3, 4, 5, 3},
		{"range taller than window", 0, 1, 4, 5, 4},
		{"no height", 7, 0, 1, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrollInto(tt.offset, tt.height, tt.first, tt.last))
		})
	}
}

func TestHighlightMatch(t *testing.T) {
	marked := lipgloss.NewStyle().Transform(strings.ToUpper)
	assert.Equal(t, "apple", highlightMatch("apple", "", marked))
	assert.Equal(t, "APpLE", highlightMatch("apple", "aPle", marked), "matches in order, ignoring case")
	assert.Equal(t, "Apple", highlightMatch("apple", "ax", marked), "unmatched tail leaves the rest alone")
}

func TestRenderMarksSelectionAndDisabled(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:        60,
		Input:        "> ",
		Lines:        Layout(sampleRows(), map[string]string{"fruit": "Fruits"}),
		ListHeight:   10,
		VisibleCount: 4,
		Total:        9,
		Help:         "esc quit",
	})

	assert.Contains(t, out, "> loose")
	assert.Contains(t, out, "Fruits (2)")
	assert.Contains(t, out, "settings (1)")
	assert.Contains(t, out, "4/9 items")
	assert.Contains(t, out, "esc quit")
}

func TestRenderEmpty(t *testing.T) {
	out := NewRenderer().Render(ViewState{Total: 3})
	assert.Contains(t, out, "No results found.")
	assert.Contains(t, out, "0/3 items")
}

func TestRenderWindow(t *testing.T) {
	lines := Layout(sampleRows(), nil)
	out := NewRenderer().Render(ViewState{Lines: lines, Offset: 2, ListHeight: 2})

	assert.Contains(t, out, "more above")
	assert.Contains(t, out, "more below")
	assert.Contains(t, out, "banana")
	assert.NotContains(t, out, "loose")
	assert.Equal(t, 1, strings.Count(out, "apple"))
}
