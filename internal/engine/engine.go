// Package engine is the headless command palette core. It owns the query, the
// selection, item scores and ordering, and publishes a Snapshot to subscribers
// after each batch of changes.
//
// Mutations record deferred work in a slot scheduler; nothing is derived or
// published until Flush. An Engine is not safe for concurrent use.
package engine

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"palette/internal/domain"
	"palette/internal/eventbus"
	"palette/internal/registry"
	"palette/internal/scheduler"
	"palette/internal/scorer"
)

// Engine coordinates the registry, scoring, ordering, navigation and publication
type Engine struct {
	reg   *registry.Registry
	sched *scheduler.Scheduler
	bus   eventbus.EventBus

	scorer       scorer.Scorer
	shouldFilter bool
	loop         bool
	selection    selection

	query  string
	count  int
	scores map[string]float64
	groups map[string]struct{}

	// ordered layout from the last sort
	order      []string
	groupOrder []string

	// the removed item held the selection; survives slot replacement within a burst
	reselect bool

	version  uint64
	snapshot domain.Snapshot
	closed   bool

	logger   *zap.Logger
	recorder Recorder
	signals  func(domain.DomainEvent)
}

// New creates an engine with an empty registry
func New(opts ...Option) *Engine {
	e := &Engine{
		reg:          registry.New(),
		sched:        scheduler.New(),
		scorer:       scorer.Default(),
		shouldFilter: true,
		selection:    &Uncontrolled{},
		scores:       make(map[string]float64),
		groups:       make(map[string]struct{}),
		logger:       zap.NewNop(),
		recorder:     nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.bus = eventbus.New(e.logger)
	e.snapshot = e.buildSnapshot()
	e.schedule(SlotInitialScroll, e.scrollSelectedIntoView)
	return e
}

// Close drops pending work and detaches every subscriber. Later calls do nothing.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.sched = scheduler.New()
	e.bus = eventbus.New(e.logger)
	e.logger.Debug("Engine closed")
}

// RegisterItem adds or replaces an item and returns a function that unregisters it.
// Value and keywords are trimmed.
func (e *Engine) RegisterItem(id, value string, opts ...ItemOption) func() {
	if e.closed {
		return func() {}
	}
	var spec itemSpec
	for _, opt := range opts {
		opt(&spec)
	}
	e.reg.RegisterItem(domain.Item{
		ID:         id,
		Value:      strings.TrimSpace(value),
		Keywords:   trimKeywords(spec.keywords),
		Disabled:   spec.disabled,
		ForceMount: spec.forceMount,
		OnSelect:   spec.onSelect,
	}, spec.groupID)
	e.schedule(SlotItemAdded, e.onItemAdded)

	return func() { e.UnregisterItem(id) }
}

// UnregisterItem removes an item. Unknown ids are ignored.
func (e *Engine) UnregisterItem(id string) {
	if e.closed {
		return
	}
	// resolve the selected row before the id disappears from the layout
	selected, hasSelection := e.selectedItem()
	if _, ok := e.reg.UnregisterItem(id); !ok {
		return
	}
	delete(e.scores, id)
	if hasSelection && selected.ID == id {
		e.reselect = true
	}
	e.schedule(SlotItemRemoved, e.onItemRemoved)
}

// RegisterGroup makes a group known and returns a function that unregisters it.
// Groups named by RegisterItem are created without this call. Registering an
// existing group again replaces its options.
func (e *Engine) RegisterGroup(id string, opts ...GroupOption) func() {
	if e.closed {
		return func() {}
	}
	var spec groupSpec
	for _, opt := range opts {
		opt(&spec)
	}
	created := e.reg.RegisterGroup(id)
	changed := e.reg.SetGroupForceMount(id, spec.forceMount)
	if created || changed {
		e.schedule(SlotItemAdded, e.onItemAdded)
	}
	return func() { e.UnregisterGroup(id) }
}

// UnregisterGroup removes a group. Its items stay registered, ungrouped.
func (e *Engine) UnregisterGroup(id string) {
	if e.closed {
		return
	}
	if e.reg.UnregisterGroup(id) {
		e.schedule(SlotItemAdded, e.onItemAdded)
	}
}

// UpdateItemValue changes the text and keywords of an item. Its score is
// recomputed right away; ordering follows on the next flush.
func (e *Engine) UpdateItemValue(id, value string, keywords []string) {
	if e.closed {
		return
	}
	if !e.reg.UpdateItemValue(id, strings.TrimSpace(value), trimKeywords(keywords)) {
		return
	}
	if e.shouldFilter && !e.reg.ForceMounted(id) {
		if it, ok := e.reg.Item(id); ok {
			e.scores[id] = e.score(it)
		}
	}
	e.schedule(SlotValueChanged, e.onValueChanged)
}

// SetItemDisabled toggles whether an item can be navigated to
func (e *Engine) SetItemDisabled(id string, disabled bool) {
	if e.closed {
		return
	}
	if e.reg.SetDisabled(id, disabled) {
		e.schedule(SlotValueChanged, e.onValueChanged)
	}
}

// SetQuery replaces the search query. Scores and ordering are recomputed
// immediately; the first item is selected and subscribers notified on flush.
func (e *Engine) SetQuery(query string) {
	if e.closed || query == e.query {
		return
	}
	e.query = query
	e.filter()
	e.sort()
	e.schedule(SlotSelectFirst, e.selectFirst)
	e.scheduleEmit()
}

// Query returns the current search query
func (e *Engine) Query() string { return e.query }

// Value returns the current selection ("" when none)
func (e *Engine) Value() string { return e.selection.current() }

// Select makes value the active selection. A controlled engine only reports the
// request through its change callback.
func (e *Engine) Select(value string, suppressScroll bool) {
	if e.closed {
		return
	}
	e.setValue(strings.TrimSpace(value), suppressScroll)
}

// SetControlledValue stores the selection chosen by the owner of a controlled
// engine. It returns false for an uncontrolled engine.
func (e *Engine) SetControlledValue(value string) bool {
	c, ok := e.selection.(*Controlled)
	if !ok || e.closed {
		return false
	}
	value = strings.TrimSpace(value)
	if c.Value == value {
		return true
	}
	c.Value = value
	e.scheduleEmit()
	return true
}

// Controlled reports whether the selection is owned by a collaborator
func (e *Engine) Controlled() bool {
	_, ok := e.selection.(*Controlled)
	return ok
}

// Navigate moves the selection. Unknown kinds are ignored.
func (e *Engine) Navigate(kind domain.NavigateKind) {
	if e.closed {
		return
	}
	switch kind {
	case domain.NavigateFirst:
		e.moveToEdge(true)
	case domain.NavigateLast:
		e.moveToEdge(false)
	case domain.NavigateNext:
		e.moveBy(1)
	case domain.NavigatePrev:
		e.moveBy(-1)
	case domain.NavigateNextGroup:
		e.moveByGroup(1)
	case domain.NavigatePrevGroup:
		e.moveByGroup(-1)
	default:
		e.logger.Debug("Ignoring navigation", zap.String("kind", string(kind)))
	}
}

// Activate runs the OnSelect callback of the selected item.
// It returns false when nothing enabled is selected.
func (e *Engine) Activate() (domain.ItemActivatedEvent, bool) {
	if e.closed {
		return domain.ItemActivatedEvent{}, false
	}
	it, ok := e.selectedItem()
	if !ok || it.Disabled {
		return domain.ItemActivatedEvent{}, false
	}
	if it.OnSelect != nil {
		it.OnSelect(it.Value)
	}
	ev := domain.ItemActivatedEvent{ItemID: it.ID, Value: it.Value}
	e.signal(ev)
	return ev, true
}

// Subscribe registers a listener for published snapshots and returns its unsubscribe function
func (e *Engine) Subscribe(listener eventbus.Listener) func() {
	return e.bus.Subscribe(listener)
}

// Snapshot returns the most recently published state
func (e *Engine) Snapshot() domain.Snapshot {
	return e.snapshot
}

// Flush runs all deferred work. It returns the number of actions executed.
func (e *Engine) Flush() int {
	if e.closed {
		return 0
	}
	start := time.Now()
	n := e.sched.Flush()
	if n > 0 {
		elapsed := time.Since(start)
		e.recorder.Flushed(n, elapsed)
		e.logger.Debug("Flushed",
			zap.Int("actions", n),
			zap.Duration("elapsed", elapsed),
			zap.Uint64("version", e.version))
	}
	return n
}

// Batch applies fn and then flushes, so observers see the changes as one update
func (e *Engine) Batch(fn func(*Engine)) int {
	fn(e)
	return e.Flush()
}

// Pending reports whether deferred work is waiting for a flush
func (e *Engine) Pending() bool {
	return e.sched.Len() > 0
}

func (e *Engine) schedule(slot scheduler.Slot, action scheduler.Action) {
	replaced := e.sched.Schedule(slot, action)
	e.recorder.Scheduled(slot, replaced)
}

func (e *Engine) scheduleEmit() {
	e.schedule(SlotEmit, e.emit)
}

func (e *Engine) signal(ev domain.DomainEvent) {
	if e.signals != nil {
		e.signals(ev)
	}
}

// setValue applies a selection change. Equal values are a no-op.
func (e *Engine) setValue(value string, suppressScroll bool) {
	if value == e.selection.current() {
		return
	}
	if !suppressScroll {
		e.schedule(SlotScrollIntent, e.scrollSelectedIntoView)
	}
	switch sel := e.selection.(type) {
	case *Controlled:
		if sel.OnChange != nil {
			sel.OnChange(value)
		}
		return
	case *Uncontrolled:
		sel.Value = value
	}
	e.scheduleEmit()
}

func (e *Engine) onItemAdded() {
	e.filter()
	e.sort()
	if !e.selectionValid() {
		e.selectFirst()
	}
	e.scheduleEmit()
}

func (e *Engine) onItemRemoved() {
	e.filter()
	if e.reselect || !e.selectionValid() {
		e.reselect = false
		e.selectFirst()
	}
	e.scheduleEmit()
}

func (e *Engine) onValueChanged() {
	e.sort()
	e.tally()
	if v := e.selection.current(); v != "" && !e.selectionValid() {
		e.selectFirst()
	}
	e.scheduleEmit()
}

func (e *Engine) emit() {
	e.version++
	e.snapshot = e.buildSnapshot()
	n := e.bus.Publish(e.snapshot)
	e.recorder.Emitted(n)
}

func (e *Engine) buildSnapshot() domain.Snapshot {
	return domain.NewSnapshot(domain.SnapshotData{
		Version:    e.version,
		Query:      e.query,
		Value:      e.selection.current(),
		Count:      e.count,
		Scores:     e.scores,
		Groups:     e.groups,
		Rows:       e.rows(),
		GroupOrder: e.visibleGroupOrder(),
	})
}
