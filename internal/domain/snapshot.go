package domain

import (
	"encoding/json"
	"sort"
)

// SnapshotData is the raw material for a Snapshot. NewSnapshot copies it.
type SnapshotData struct {
	Version    uint64
	Query      string
	Value      string
	Count      int
	Scores     map[string]float64
	Groups     map[string]struct{}
	Rows       []Row
	GroupOrder []string
}

// Snapshot is an immutable view of the engine state.
// All accessors return copies, so callers cannot reach engine-owned memory.
type Snapshot struct {
	version    uint64
	query      string
	value      string
	count      int
	scores     map[string]float64
	groups     map[string]struct{}
	rows       []Row
	groupOrder []string
}

// NewSnapshot freezes data into a Snapshot
func NewSnapshot(data SnapshotData) Snapshot {
	scores := make(map[string]float64, len(data.Scores))
	for id, s := range data.Scores {
		scores[id] = s
	}
	groups := make(map[string]struct{}, len(data.Groups))
	for id := range data.Groups {
		groups[id] = struct{}{}
	}
	return Snapshot{
		version:    data.Version,
		query:      data.Query,
		value:      data.Value,
		count:      data.Count,
		scores:     scores,
		groups:     groups,
		rows:       append([]Row(nil), data.Rows...),
		groupOrder: append([]string(nil), data.GroupOrder...),
	}
}

// Version increases by one with every emitted snapshot
func (s Snapshot) Version() uint64 { return s.version }

// Query returns the search query
func (s Snapshot) Query() string { return s.query }

// SelectedValue returns the active selection ("" when none)
func (s Snapshot) SelectedValue() string { return s.value }

// VisibleCount returns the number of visible items
func (s Snapshot) VisibleCount() int { return s.count }

// Empty reports whether nothing is visible
func (s Snapshot) Empty() bool { return s.count == 0 }

// Score returns the score of an item, if one was computed
func (s Snapshot) Score(itemID string) (float64, bool) {
	v, ok := s.scores[itemID]
	return v, ok
}

// ItemScores returns a copy of the item id → score mapping
func (s Snapshot) ItemScores() map[string]float64 {
	out := make(map[string]float64, len(s.scores))
	for id, v := range s.scores {
		out[id] = v
	}
	return out
}

// GroupVisible reports whether a group has at least one visible item
func (s Snapshot) GroupVisible(groupID string) bool {
	_, ok := s.groups[groupID]
	return ok
}

// VisibleGroupIDs returns the visible group ids sorted by id
func (s Snapshot) VisibleGroupIDs() []string {
	out := make([]string, 0, len(s.groups))
	for id := range s.groups {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// GroupOrder returns visible group ids in display order
func (s Snapshot) GroupOrder() []string {
	return append([]string(nil), s.groupOrder...)
}

// Rows returns visible items in display order
func (s Snapshot) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

// Selected returns the row holding the selection, if it is visible
func (s Snapshot) Selected() (Row, bool) {
	for _, r := range s.rows {
		if r.Selected {
			return r, true
		}
	}
	return Row{}, false
}

type snapshotJSON struct {
	Version         uint64             `json:"version"`
	Query           string             `json:"query"`
	SelectedValue   string             `json:"selectedValue"`
	VisibleCount    int                `json:"visibleCount"`
	ItemScores      map[string]float64 `json:"itemScores"`
	VisibleGroupIDs []string           `json:"visibleGroupIds"`
	Rows            []Row              `json:"rows"`
}

// MarshalJSON renders the snapshot in the shape of the public getSnapshot contract
func (s Snapshot) MarshalJSON() ([]byte, error) {
	rows := s.rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(snapshotJSON{
		Version:         s.version,
		Query:           s.query,
		SelectedValue:   s.value,
		VisibleCount:    s.count,
		ItemScores:      s.ItemScores(),
		VisibleGroupIDs: s.VisibleGroupIDs(),
		Rows:            rows,
	})
}
