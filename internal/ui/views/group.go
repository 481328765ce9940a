package views

import (
	"fmt"
)

// GroupRenderer handles rendering of group headings
type GroupRenderer struct {
	styles *Styles
}

// NewGroupRenderer creates a new group renderer
func NewGroupRenderer(styles *Styles) *GroupRenderer {
	return &GroupRenderer{
		styles: styles,
	}
}

// RenderGroupHeading renders a heading with the number of visible items under it
func (g *GroupRenderer) RenderGroupHeading(heading string, count int) string {
	return g.styles.Heading.Render(heading) + g.styles.Dim.Render(fmt.Sprintf(" (%d)", count))
}
