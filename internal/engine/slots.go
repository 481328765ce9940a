package engine

import "palette/internal/scheduler"

// Scheduler slots, in execution order
const (
	SlotSelectFirst   scheduler.Slot = 1 // select the first item after a query change
	SlotValueChanged  scheduler.Slot = 2 // re-sort after item text/keyword/disabled changes
	SlotItemAdded     scheduler.Slot = 3 // filter + sort after registrations
	SlotItemRemoved   scheduler.Slot = 4 // filter after unregistrations
	SlotEmit          scheduler.Slot = 5 // notify subscribers
	SlotScrollIntent  scheduler.Slot = 6 // bring the selection into view
	SlotInitialScroll scheduler.Slot = 7 // first scroll after construction
)

// SlotName returns a stable label for a slot
func SlotName(slot scheduler.Slot) string {
	switch slot {
	case SlotSelectFirst:
		return "select_first"
	case SlotValueChanged:
		return "value_changed"
	case SlotItemAdded:
		return "item_added"
	case SlotItemRemoved:
		return "item_removed"
	case SlotEmit:
		return "emit"
	case SlotScrollIntent:
		return "scroll_intent"
	case SlotInitialScroll:
		return "initial_scroll"
	default:
		return "unknown"
	}
}
