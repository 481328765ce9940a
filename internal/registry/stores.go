package registry

import "palette/internal/domain"

// MemoryItemStore is an in-memory implementation of ItemStore.
// Like the Registry that owns it, it is not safe for concurrent use.
type MemoryItemStore struct {
	items map[string]*domain.Item
}

// NewMemoryItemStore creates a new memory-based item store
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{
		items: make(map[string]*domain.Item),
	}
}

func (s *MemoryItemStore) GetItem(id string) *domain.Item {
	return s.items[id]
}

func (s *MemoryItemStore) GetAllItems() map[string]*domain.Item {
	// copy of the index so callers can range while the registry mutates
	result := make(map[string]*domain.Item, len(s.items))
	for k, v := range s.items {
		result[k] = v
	}
	return result
}

func (s *MemoryItemStore) PutItem(item *domain.Item) {
	s.items[item.ID] = item
}

func (s *MemoryItemStore) RemoveItem(id string) {
	delete(s.items, id)
}

func (s *MemoryItemStore) CountItems() int {
	return len(s.items)
}

// MemoryGroupStore is an in-memory implementation of GroupStore.
// Like the Registry that owns it, it is not safe for concurrent use.
type MemoryGroupStore struct {
	groups map[string]*domain.Group
}

// NewMemoryGroupStore creates a new memory-based group store
func NewMemoryGroupStore() *MemoryGroupStore {
	return &MemoryGroupStore{
		groups: make(map[string]*domain.Group),
	}
}

func (s *MemoryGroupStore) GetGroup(id string) *domain.Group {
	return s.groups[id]
}

func (s *MemoryGroupStore) GetAllGroups() map[string]*domain.Group {
	result := make(map[string]*domain.Group, len(s.groups))
	for k, v := range s.groups {
		result[k] = v
	}
	return result
}

func (s *MemoryGroupStore) PutGroup(group *domain.Group) {
	s.groups[group.ID] = group
}

func (s *MemoryGroupStore) DeleteGroup(id string) {
	delete(s.groups, id)
}

func (s *MemoryGroupStore) CountGroups() int {
	return len(s.groups)
}
