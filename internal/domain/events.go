package domain

// EventType represents the type of signal the engine hands to collaborators
type EventType string

// Event types
const (
	EventScrollIntent  EventType = "ScrollIntent"
	EventItemActivated EventType = "ItemActivated"
)

// DomainEvent is the interface for all signals
type DomainEvent interface {
	Type() EventType
}

// ScrollIntentEvent asks the renderer to bring the selected item into view
type ScrollIntentEvent struct {
	Value   string
	ItemID  string
	GroupID string
	// FirstInGroup is set when the item heads its group, so the group heading should be shown too
	FirstInGroup bool
}

func (e ScrollIntentEvent) Type() EventType { return EventScrollIntent }

// ItemActivatedEvent is emitted when the selected item is activated
type ItemActivatedEvent struct {
	ItemID string
	Value  string
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }
