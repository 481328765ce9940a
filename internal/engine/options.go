package engine

import (
	"strings"

	"go.uber.org/zap"

	"palette/internal/domain"
	"palette/internal/scorer"
)

// Option configures an Engine
type Option func(*Engine)

// WithShouldFilter toggles scoring and reordering. Filtering is on by default.
func WithShouldFilter(enabled bool) Option {
	return func(e *Engine) { e.shouldFilter = enabled }
}

// WithLoop makes next/prev navigation wrap around the ends
func WithLoop(enabled bool) Option {
	return func(e *Engine) { e.loop = enabled }
}

// WithScorer replaces the default fuzzy scorer
func WithScorer(s scorer.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithDefaultValue seeds the selection of an uncontrolled engine
func WithDefaultValue(value string) Option {
	return func(e *Engine) {
		if _, controlled := e.selection.(*Controlled); controlled {
			return
		}
		e.selection = &Uncontrolled{Value: strings.TrimSpace(value)}
	}
}

// WithControlledValue hands selection ownership to the caller. The engine
// reports wanted changes through onChange and reads the value set by
// SetControlledValue.
func WithControlledValue(value string, onChange func(value string)) Option {
	return func(e *Engine) {
		e.selection = &Controlled{Value: strings.TrimSpace(value), OnChange: onChange}
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder attaches an activity recorder
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithSignalHandler receives scroll intents and item activations
func WithSignalHandler(fn func(domain.DomainEvent)) Option {
	return func(e *Engine) { e.signals = fn }
}

// ItemOption configures a registered item
type ItemOption func(*itemSpec)

type itemSpec struct {
	keywords   []string
	groupID    string
	disabled   bool
	forceMount bool
	onSelect   func(value string)
}

// Keywords attaches aliases scored alongside the item text
func Keywords(keywords ...string) ItemOption {
	return func(s *itemSpec) { s.keywords = append(s.keywords, keywords...) }
}

// InGroup files the item under a group, creating the group if needed
func InGroup(groupID string) ItemOption {
	return func(s *itemSpec) { s.groupID = groupID }
}

// Disabled makes the item visible but not navigable
func Disabled() ItemOption {
	return func(s *itemSpec) { s.disabled = true }
}

// ForceMount keeps the item visible and navigable whatever the query. The
// item is never scored and does not count towards the visible count.
func ForceMount() ItemOption {
	return func(s *itemSpec) { s.forceMount = true }
}

// OnSelect is called with the item value when the item is activated
func OnSelect(fn func(value string)) ItemOption {
	return func(s *itemSpec) { s.onSelect = fn }
}

// GroupOption configures a registered group
type GroupOption func(*groupSpec)

type groupSpec struct {
	forceMount bool
}

// ForceMountGroup force-mounts every member of the group
func ForceMountGroup() GroupOption {
	return func(s *groupSpec) { s.forceMount = true }
}

func trimKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
