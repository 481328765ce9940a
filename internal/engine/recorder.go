package engine

import (
	"time"

	"palette/internal/scheduler"
)

// Recompute kinds reported to a Recorder
const (
	RecomputeFilter = "filter"
	RecomputeSort   = "sort"
)

// Recorder observes engine activity. internal/metrics provides a prometheus-backed one.
type Recorder interface {
	Recomputed(kind string)
	Emitted(listeners int)
	Flushed(actions int, duration time.Duration)
	Scheduled(slot scheduler.Slot, replaced bool)
	ScorerFault()
}

type nopRecorder struct{}

func (nopRecorder) Recomputed(string)              {}
func (nopRecorder) Emitted(int)                    {}
func (nopRecorder) Flushed(int, time.Duration)     {}
func (nopRecorder) Scheduled(scheduler.Slot, bool) {}
func (nopRecorder) ScorerFault()                   {}
