package views

import "palette/internal/domain"

// LineKind tells headings and items apart
type LineKind int

const (
	LineItem LineKind = iota
	LineHeading
)

// Line is one rendered row of the palette list
type Line struct {
	Kind    LineKind
	GroupID string
	Heading string
	Row     domain.Row
}

// Layout interleaves group headings with the ordered rows.
// A heading is emitted whenever the group changes; ungrouped rows get none.
func Layout(rows []domain.Row, headings map[string]string) []Line {
	lines := make([]Line, 0, len(rows))
	current := ""
	for _, r := range rows {
		if r.GroupID != "" && r.GroupID != current {
			heading := headings[r.GroupID]
			if heading == "" {
				heading = r.GroupID
			}
			lines = append(lines, Line{Kind: LineHeading, GroupID: r.GroupID, Heading: heading})
		}
		current = r.GroupID
		lines = append(lines, Line{Kind: LineItem, GroupID: r.GroupID, Row: r})
	}
	return lines
}

// IndexOf returns the line index of an item
func IndexOf(lines []Line, itemID string) (int, bool) {
	for i, l := range lines {
		if l.Kind == LineItem && l.Row.ID == itemID {
			return i, true
		}
	}
	return 0, false
}

// ScrollInto returns the smallest offset change that shows lines [first, last]
// in a window of height lines starting at offset
func ScrollInto(offset, height, first, last int) int {
	if height < 1 {
		return offset
	}
	if first < offset {
		return first
	}
	if last >= offset+height {
		next := last - height + 1
		if next > first {
			next = first
		}
		return next
	}
	return offset
}
