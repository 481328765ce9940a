package engine

import (
	"palette/internal/domain"
)

// selectFirst selects the first navigable item, or clears the selection
func (e *Engine) selectFirst() {
	value := ""
	if items := e.navigable(); len(items) > 0 {
		value = items[0].Value
	}
	e.setValue(value, false)
}

// selectionValid reports whether the selection names a visible item
func (e *Engine) selectionValid() bool {
	value := e.selection.current()
	if value == "" {
		return false
	}
	for _, id := range e.order {
		if !e.visible(id) {
			continue
		}
		if it, ok := e.reg.Item(id); ok && it.Value == value {
			return true
		}
	}
	return false
}

// selectedItem returns the first visible item carrying the selected value
func (e *Engine) selectedItem() (domain.Item, bool) {
	value := e.selection.current()
	if value == "" {
		return domain.Item{}, false
	}
	for _, id := range e.order {
		if !e.visible(id) {
			continue
		}
		if it, ok := e.reg.Item(id); ok && it.Value == value {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (e *Engine) moveToEdge(first bool) {
	items := e.navigable()
	if len(items) == 0 {
		return
	}
	if first {
		e.setValue(items[0].Value, false)
		return
	}
	e.setValue(items[len(items)-1].Value, false)
}

// moveBy steps delta positions through the navigable items. Without a current
// position the index counts as -1, so next lands on the first item.
func (e *Engine) moveBy(delta int) {
	items := e.navigable()
	if len(items) == 0 {
		return
	}
	index := -1
	if value := e.selection.current(); value != "" {
		for i, it := range items {
			if it.Value == value {
				index = i
				break
			}
		}
	}

	target := index + delta
	if e.loop {
		switch {
		case target < 0:
			target = len(items) - 1
		case target >= len(items):
			target = 0
		}
	}
	if target < 0 || target >= len(items) {
		return
	}
	e.setValue(items[target].Value, false)
}

// moveByGroup jumps to the first navigable item of the nearest group in the
// given direction that has one. Outside a group, or past the last candidate
// group, it behaves like moveBy.
func (e *Engine) moveByGroup(delta int) {
	current, ok := e.selectedItem()
	if !ok {
		e.moveBy(delta)
		return
	}
	groupID := e.reg.GroupOf(current.ID)
	if groupID == "" {
		e.moveBy(delta)
		return
	}
	pos := -1
	for i, id := range e.groupOrder {
		if id == groupID {
			pos = i
			break
		}
	}
	if pos < 0 {
		e.moveBy(delta)
		return
	}

	items := e.navigable()
	for i := pos + delta; i >= 0 && i < len(e.groupOrder); i += delta {
		for _, it := range items {
			if e.reg.GroupOf(it.ID) == e.groupOrder[i] {
				e.setValue(it.Value, false)
				return
			}
		}
	}
	e.moveBy(delta)
}

// scrollSelectedIntoView signals the renderer to reveal the selected item
func (e *Engine) scrollSelectedIntoView() {
	it, ok := e.selectedItem()
	if !ok {
		return
	}
	groupID := e.reg.GroupOf(it.ID)
	first := false
	if groupID != "" {
		for _, id := range e.order {
			if e.visible(id) && e.reg.GroupOf(id) == groupID {
				first = id == it.ID
				break
			}
		}
	}
	e.signal(domain.ScrollIntentEvent{
		Value:        it.Value,
		ItemID:       it.ID,
		GroupID:      groupID,
		FirstInGroup: first,
	})
}
