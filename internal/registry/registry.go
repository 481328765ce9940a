// Package registry tracks palette items, groups and the membership relation between them.
//
// Membership is a relation, not ownership: the registry keeps itemID → groupID and
// groupID → member set as two independent maps. Items and groups come and go in any
// order; an item naming a group that is not registered yet creates the group lazily.
//
// A Registry is not safe for concurrent use. The engine that owns it serializes access.
package registry

import (
	"slices"
	"sort"

	"palette/internal/domain"
)

// Registry is the item/group leaf data store
type Registry struct {
	items     ItemStore
	groups    GroupStore
	itemGroup map[string]string // itemID -> groupID
	seq       uint64
}

// New creates a registry backed by in-memory stores
func New() *Registry {
	return NewWithStores(NewMemoryItemStore(), NewMemoryGroupStore())
}

// NewWithStores creates a registry over the given stores
func NewWithStores(items ItemStore, groups GroupStore) *Registry {
	return &Registry{
		items:     items,
		groups:    groups,
		itemGroup: make(map[string]string),
	}
}

func (r *Registry) nextSeq() uint64 {
	r.seq++
	return r.seq
}

// RegisterItem inserts or overwrites an item and files it under groupID ("" for none).
// A re-registered item keeps its original registration order. It returns true when the
// id was not registered before.
func (r *Registry) RegisterItem(item domain.Item, groupID string) bool {
	existing := r.items.GetItem(item.ID)
	created := existing == nil

	stored := item
	stored.Keywords = slices.Clone(item.Keywords)
	if created {
		stored.Seq = r.nextSeq()
	} else {
		stored.Seq = existing.Seq
	}
	r.items.PutItem(&stored)

	if old, ok := r.itemGroup[item.ID]; ok && old != groupID {
		if g := r.groups.GetGroup(old); g != nil {
			delete(g.Members, item.ID)
		}
		delete(r.itemGroup, item.ID)
	}
	if groupID != "" {
		g := r.ensureGroup(groupID)
		g.Members[item.ID] = struct{}{}
		r.itemGroup[item.ID] = groupID
	}
	return created
}

// UnregisterItem removes an item from every tracking structure.
// It returns the removed item; ok is false for an unknown id.
func (r *Registry) UnregisterItem(id string) (removed domain.Item, ok bool) {
	existing := r.items.GetItem(id)
	if existing == nil {
		return domain.Item{}, false
	}
	r.items.RemoveItem(id)
	if groupID, grouped := r.itemGroup[id]; grouped {
		if g := r.groups.GetGroup(groupID); g != nil {
			delete(g.Members, id)
		}
		delete(r.itemGroup, id)
	}
	return copyItem(existing), true
}

// UpdateItemValue replaces the text and keywords of an item.
// It returns false when the id is unknown or nothing changed.
func (r *Registry) UpdateItemValue(id, value string, keywords []string) bool {
	existing := r.items.GetItem(id)
	if existing == nil {
		return false
	}
	if existing.Value == value && slices.Equal(existing.Keywords, keywords) {
		return false
	}
	updated := *existing
	updated.Value = value
	updated.Keywords = slices.Clone(keywords)
	r.items.PutItem(&updated)
	return true
}

// SetDisabled toggles the disabled flag. It returns false when nothing changed.
func (r *Registry) SetDisabled(id string, disabled bool) bool {
	existing := r.items.GetItem(id)
	if existing == nil || existing.Disabled == disabled {
		return false
	}
	updated := *existing
	updated.Disabled = disabled
	r.items.PutItem(&updated)
	return true
}

// RegisterGroup ensures an (initially empty) group exists. It returns true when created.
func (r *Registry) RegisterGroup(id string) bool {
	created := r.groups.GetGroup(id) == nil
	r.ensureGroup(id)
	return created
}

// SetGroupForceMount marks a group whose members are always visible.
// It returns false when the group is unknown or nothing changed.
func (r *Registry) SetGroupForceMount(id string, on bool) bool {
	g := r.groups.GetGroup(id)
	if g == nil || g.ForceMount == on {
		return false
	}
	g.ForceMount = on
	return true
}

// ForceMounted reports whether an item bypasses filtering, either on its own
// or through its group
func (r *Registry) ForceMounted(itemID string) bool {
	it := r.items.GetItem(itemID)
	if it == nil {
		return false
	}
	if it.ForceMount {
		return true
	}
	groupID, ok := r.itemGroup[itemID]
	if !ok {
		return false
	}
	g := r.groups.GetGroup(groupID)
	return g != nil && g.ForceMount
}

// UnregisterGroup removes a group and its membership record.
// Member items stay registered but lose their affiliation.
func (r *Registry) UnregisterGroup(id string) bool {
	g := r.groups.GetGroup(id)
	if g == nil {
		return false
	}
	for itemID := range g.Members {
		if r.itemGroup[itemID] == id {
			delete(r.itemGroup, itemID)
		}
	}
	r.groups.DeleteGroup(id)
	return true
}

func copyItem(it *domain.Item) domain.Item {
	out := *it
	out.Keywords = slices.Clone(it.Keywords)
	return out
}

func (r *Registry) ensureGroup(id string) *domain.Group {
	if g := r.groups.GetGroup(id); g != nil {
		return g
	}
	g := &domain.Group{
		ID:      id,
		Members: make(map[string]struct{}),
		Seq:     r.nextSeq(),
	}
	r.groups.PutGroup(g)
	return g
}

// Item returns a copy of a registered item
func (r *Registry) Item(id string) (domain.Item, bool) {
	it := r.items.GetItem(id)
	if it == nil {
		return domain.Item{}, false
	}
	return copyItem(it), true
}

// HasItem reports whether id is registered
func (r *Registry) HasItem(id string) bool {
	return r.items.GetItem(id) != nil
}

// Items returns copies of all items in registration order
func (r *Registry) Items() []domain.Item {
	all := r.items.GetAllItems()
	out := make([]domain.Item, 0, len(all))
	for _, it := range all {
		out = append(out, copyItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ItemCount returns the number of registered items
func (r *Registry) ItemCount() int {
	return r.items.CountItems()
}

// FindByValue returns the earliest registered item carrying value
func (r *Registry) FindByValue(value string) (domain.Item, bool) {
	var found *domain.Item
	for _, it := range r.items.GetAllItems() {
		if it.Value != value {
			continue
		}
		if found == nil || it.Seq < found.Seq {
			found = it
		}
	}
	if found == nil {
		return domain.Item{}, false
	}
	return copyItem(found), true
}

// GroupOf returns the group an item belongs to ("" if none)
func (r *Registry) GroupOf(itemID string) string {
	return r.itemGroup[itemID]
}

// HasGroup reports whether a group is registered
func (r *Registry) HasGroup(id string) bool {
	return r.groups.GetGroup(id) != nil
}

// GroupSeq returns the registration order of a group
func (r *Registry) GroupSeq(id string) (uint64, bool) {
	g := r.groups.GetGroup(id)
	if g == nil {
		return 0, false
	}
	return g.Seq, true
}

// GroupIDs returns all group ids in registration order
func (r *Registry) GroupIDs() []string {
	all := r.groups.GetAllGroups()
	groups := make([]*domain.Group, 0, len(all))
	for _, g := range all {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Seq < groups[j].Seq })

	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.ID
	}
	return out
}

// GroupCount returns the number of registered groups
func (r *Registry) GroupCount() int {
	return r.groups.CountGroups()
}

// Members returns the member item ids of a group in registration order
func (r *Registry) Members(groupID string) []string {
	g := r.groups.GetGroup(groupID)
	if g == nil {
		return nil
	}
	type member struct {
		id  string
		seq uint64
	}
	members := make([]member, 0, len(g.Members))
	for id := range g.Members {
		if it := r.items.GetItem(id); it != nil {
			members = append(members, member{id: id, seq: it.Seq})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].seq < members[j].seq })

	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.id
	}
	return out
}
