// Package scheduler batches deferred engine work into priority slots.
//
// Each slot holds at most one pending action; scheduling into an occupied slot
// replaces the action. Flush runs the pending actions in ascending slot order.
// An action may schedule more work while a flush is running: a slot above the one
// currently executing runs in the same flush, anything else waits for the next one.
package scheduler

import "sort"

// Slot is a fixed priority bucket. Lower slots run first.
type Slot int

// Action is a unit of deferred work
type Action func()

// Scheduler coalesces actions per slot until Flush.
// It is not safe for concurrent use.
type Scheduler struct {
	pending  map[Slot]Action
	flushing bool
	current  Slot
}

// New creates an empty scheduler
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[Slot]Action),
	}
}

// Schedule stores action under slot, replacing any action pending there.
// It returns true when the slot already held an action.
func (s *Scheduler) Schedule(slot Slot, action Action) bool {
	_, replaced := s.pending[slot]
	s.pending[slot] = action
	return replaced
}

// Pending reports whether slot holds an action
func (s *Scheduler) Pending(slot Slot) bool {
	_, ok := s.pending[slot]
	return ok
}

// Len returns the number of occupied slots
func (s *Scheduler) Len() int {
	return len(s.pending)
}

// Flushing reports whether a flush is in progress
func (s *Scheduler) Flushing() bool {
	return s.flushing
}

// Flush runs pending actions in ascending slot order and returns how many ran.
// A nested Flush call from inside an action does nothing.
func (s *Scheduler) Flush() int {
	if s.flushing {
		return 0
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	ran := 0
	started := false
	for {
		slot, ok := s.next(started)
		if !ok {
			return ran
		}
		action := s.pending[slot]
		delete(s.pending, slot)
		s.current = slot
		started = true
		if action != nil {
			action()
		}
		ran++
	}
}

// next picks the lowest pending slot, restricted to slots above the current one
// once the flush has started
func (s *Scheduler) next(started bool) (Slot, bool) {
	slots := make([]Slot, 0, len(s.pending))
	for slot := range s.pending {
		if started && slot <= s.current {
			continue
		}
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		return 0, false
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots[0], true
}
