package engine

import (
	"time"

	"palette/internal/domain"
	"palette/internal/scheduler"
	"palette/internal/scorer"
)

type fakeRecorder struct {
	recomputes map[string]int
	emits      int
	flushes    int
	actions    int
	scheduled  map[scheduler.Slot]int
	faults     int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		recomputes: make(map[string]int),
		scheduled:  make(map[scheduler.Slot]int),
	}
}

func (r *fakeRecorder) Recomputed(kind string) { r.recomputes[kind]++ }
func (r *fakeRecorder) Emitted(int)            { r.emits++ }
func (r *fakeRecorder) Flushed(actions int, _ time.Duration) {
	r.flushes++
	r.actions += actions
}
func (r *fakeRecorder) Scheduled(slot scheduler.Slot, _ bool) { r.scheduled[slot]++ }
func (r *fakeRecorder) ScorerFault()                          { r.faults++ }

// fixedScores scores by exact text lookup, ignoring the query
func fixedScores(scores map[string]float64) scorer.Scorer {
	return scorer.Func(func(text, _ string, _ []string) float64 {
		return scores[text]
	})
}

func constant(v float64) scorer.Scorer {
	return scorer.Func(func(string, string, []string) float64 { return v })
}

func values(rows []domain.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}

type signalLog struct {
	events []domain.DomainEvent
}

func (l *signalLog) handle(ev domain.DomainEvent) { l.events = append(l.events, ev) }

func (l *signalLog) scrolls() []domain.ScrollIntentEvent {
	var out []domain.ScrollIntentEvent
	for _, ev := range l.events {
		if s, ok := ev.(domain.ScrollIntentEvent); ok {
			out = append(out, s)
		}
	}
	return out
}
