package views

import (
	"fmt"
	"strings"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width        int
	Title        string
	Input        string // rendered query input
	Query        string
	Lines        []Line
	Offset       int // first list line shown
	ListHeight   int
	VisibleCount int
	Total        int
	StatusText   string
	Help         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	itemRender  *ItemRenderer
	groupRender *GroupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		itemRender:  NewItemRenderer(styles),
		groupRender: NewGroupRenderer(styles),
	}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	title := state.Title
	if title == "" {
		title = "palette"
	}
	content.WriteString(r.styles.Title.Render(title))
	content.WriteString("\n")
	content.WriteString(state.Input)
	content.WriteString("\n\n")

	content.WriteString(r.renderList(state))

	status := fmt.Sprintf("%d/%d items", state.VisibleCount, state.Total)
	if state.StatusText != "" {
		status += "  " + state.StatusText
	}
	content.WriteString(r.styles.Status.Render(status))

	if state.Help != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderList(state ViewState) string {
	if len(state.Lines) == 0 {
		return r.styles.Empty.Render("No results found.") + "\n"
	}

	height := state.ListHeight
	if height < 1 || height > len(state.Lines) {
		height = len(state.Lines)
	}
	offset := state.Offset
	if offset > len(state.Lines)-height {
		offset = len(state.Lines) - height
	}
	if offset < 0 {
		offset = 0
	}

	counts := make(map[string]int)
	for _, l := range state.Lines {
		if l.Kind == LineItem && l.GroupID != "" {
			counts[l.GroupID]++
		}
	}

	var b strings.Builder
	if offset > 0 {
		b.WriteString(r.styles.Scroll.Render("↑ (more above)"))
		b.WriteString("\n")
	}
	width := state.Width - 4
	for _, l := range state.Lines[offset : offset+height] {
		switch l.Kind {
		case LineHeading:
			b.WriteString(r.groupRender.RenderGroupHeading(l.Heading, counts[l.GroupID]))
		default:
			b.WriteString(r.itemRender.RenderItem(l.Row, state.Query, l.GroupID != "", width))
		}
		b.WriteString("\n")
	}
	if offset+height < len(state.Lines) {
		b.WriteString(r.styles.Scroll.Render("↓ (more below)"))
		b.WriteString("\n")
	}
	return b.String()
}
