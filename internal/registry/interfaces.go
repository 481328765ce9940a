package registry

import "palette/internal/domain"

// ItemStore provides access to item data
type ItemStore interface {
	GetItem(id string) *domain.Item
	GetAllItems() map[string]*domain.Item
	PutItem(item *domain.Item)
	RemoveItem(id string)
	CountItems() int
}

// GroupStore provides access to group data
type GroupStore interface {
	GetGroup(id string) *domain.Group
	GetAllGroups() map[string]*domain.Group
	PutGroup(group *domain.Group)
	DeleteGroup(id string)
	CountGroups() int
}
