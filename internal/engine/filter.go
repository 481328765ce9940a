package engine

import (
	"sort"

	"go.uber.org/zap"

	"palette/internal/domain"
	"palette/internal/scorer"
)

// filter rescores every item against the query and refreshes the visible
// count and visible groups. With filtering disabled everything is visible and
// the scorer is never called.
func (e *Engine) filter() {
	e.recorder.Recomputed(RecomputeFilter)
	if !e.shouldFilter {
		e.tally()
		return
	}
	scores := make(map[string]float64, e.reg.ItemCount())
	for _, it := range e.reg.Items() {
		if e.reg.ForceMounted(it.ID) {
			continue
		}
		scores[it.ID] = e.score(it)
	}
	e.scores = scores
	e.tally()
}

func (e *Engine) score(it domain.Item) float64 {
	s, fault := scorer.Safe(e.scorer, it.Value, e.query, it.Keywords)
	if fault != "" {
		e.recorder.ScorerFault()
		e.logger.Warn("Scorer fault, treating item as hidden",
			zap.String("item", it.ID),
			zap.String("query", e.query),
			zap.String("fault", fault))
	}
	return s
}

// tally derives the visible count and visible groups from the current scores.
// Force-mounted items are visible but never counted.
func (e *Engine) tally() {
	groups := make(map[string]struct{})
	count := 0
	for _, it := range e.reg.Items() {
		if e.reg.ForceMounted(it.ID) {
			continue
		}
		if !e.shouldFilter || e.scores[it.ID] > 0 {
			count++
		}
	}
	e.count = count
	if !e.shouldFilter {
		for _, id := range e.reg.GroupIDs() {
			groups[id] = struct{}{}
		}
		e.groups = groups
		return
	}
	for _, id := range e.reg.GroupIDs() {
		for _, member := range e.reg.Members(id) {
			if e.visible(member) {
				groups[id] = struct{}{}
				break
			}
		}
	}
	e.groups = groups
}

// visible reports whether a registered item passes the current query or is force-mounted
func (e *Engine) visible(id string) bool {
	if !e.shouldFilter || e.reg.ForceMounted(id) {
		return e.reg.HasItem(id)
	}
	return e.scores[id] > 0
}

// sort rebuilds the ordered layout: ungrouped items first, then groups.
// With filtering enabled items and groups are ranked by score (groups by their
// best member) with ties kept in registration order. With filtering disabled
// the layout is registration order, groups placed where they were registered.
func (e *Engine) sort() {
	if !e.shouldFilter {
		e.registrationLayout()
		return
	}
	e.recorder.Recomputed(RecomputeSort)

	var ungrouped []domain.Item
	for _, it := range e.reg.Items() {
		if e.reg.GroupOf(it.ID) == "" {
			ungrouped = append(ungrouped, it)
		}
	}
	e.rankItems(ungrouped)

	type rankedGroup struct {
		id      string
		seq     uint64
		best    float64
		members []domain.Item
	}
	var groups []rankedGroup
	for _, id := range e.reg.GroupIDs() {
		seq, _ := e.reg.GroupSeq(id)
		g := rankedGroup{id: id, seq: seq}
		for _, member := range e.reg.Members(id) {
			it, ok := e.reg.Item(member)
			if !ok {
				continue
			}
			g.members = append(g.members, it)
			if s := e.scores[member]; s > g.best {
				g.best = s
			}
		}
		e.rankItems(g.members)
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].best != groups[j].best {
			return groups[i].best > groups[j].best
		}
		return groups[i].seq < groups[j].seq
	})

	order := make([]string, 0, e.reg.ItemCount())
	for _, it := range ungrouped {
		order = append(order, it.ID)
	}
	groupOrder := make([]string, 0, len(groups))
	for _, g := range groups {
		groupOrder = append(groupOrder, g.id)
		for _, it := range g.members {
			order = append(order, it.ID)
		}
	}
	e.order = order
	e.groupOrder = groupOrder
}

func (e *Engine) rankItems(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := e.scores[items[i].ID], e.scores[items[j].ID]
		if si != sj {
			return si > sj
		}
		return items[i].Seq < items[j].Seq
	})
}

func (e *Engine) registrationLayout() {
	type entry struct {
		seq     uint64
		itemID  string
		groupID string
	}
	var entries []entry
	for _, it := range e.reg.Items() {
		if e.reg.GroupOf(it.ID) == "" {
			entries = append(entries, entry{seq: it.Seq, itemID: it.ID})
		}
	}
	for _, id := range e.reg.GroupIDs() {
		seq, _ := e.reg.GroupSeq(id)
		entries = append(entries, entry{seq: seq, groupID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	order := make([]string, 0, e.reg.ItemCount())
	var groupOrder []string
	for _, en := range entries {
		if en.groupID == "" {
			order = append(order, en.itemID)
			continue
		}
		groupOrder = append(groupOrder, en.groupID)
		order = append(order, e.reg.Members(en.groupID)...)
	}
	e.order = order
	e.groupOrder = groupOrder
}

// rows lists visible items in layout order, disabled ones included
func (e *Engine) rows() []domain.Row {
	value := e.selection.current()
	rows := make([]domain.Row, 0, len(e.order))
	for _, id := range e.order {
		if !e.visible(id) {
			continue
		}
		it, ok := e.reg.Item(id)
		if !ok {
			continue
		}
		rows = append(rows, domain.Row{
			ID:       it.ID,
			Value:    it.Value,
			GroupID:  e.reg.GroupOf(it.ID),
			Score:    e.scores[it.ID],
			Disabled: it.Disabled,
			Selected: value != "" && it.Value == value,
		})
	}
	return rows
}

// navigable lists the items navigation may land on, in layout order
func (e *Engine) navigable() []domain.Item {
	items := make([]domain.Item, 0, len(e.order))
	for _, id := range e.order {
		if !e.visible(id) {
			continue
		}
		if it, ok := e.reg.Item(id); ok && !it.Disabled {
			items = append(items, it)
		}
	}
	return items
}

func (e *Engine) visibleGroupOrder() []string {
	out := make([]string, 0, len(e.groupOrder))
	for _, id := range e.groupOrder {
		if _, ok := e.groups[id]; ok && e.reg.HasGroup(id) {
			out = append(out, id)
		}
	}
	return out
}
