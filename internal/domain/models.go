package domain

// Item is a single selectable palette entry
type Item struct {
	ID       string
	Value    string   // externally visible identity, also the scored text
	Keywords []string // aliases matched alongside Value
	Disabled bool
	// ForceMount keeps the item visible whatever the query; it is never scored
	ForceMount bool
	OnSelect   func(value string)
	Seq        uint64 // registration order
}

// Group is a named cluster of items. It records membership only.
type Group struct {
	ID      string
	Members map[string]struct{}
	Seq     uint64
	// ForceMount extends item ForceMount to every member
	ForceMount bool
}

// HasMember reports whether itemID belongs to the group
func (g *Group) HasMember(itemID string) bool {
	if g == nil {
		return false
	}
	_, ok := g.Members[itemID]
	return ok
}

// NavigateKind is an already-decoded navigation intent
type NavigateKind string

const (
	NavigateFirst     NavigateKind = "first"
	NavigateLast      NavigateKind = "last"
	NavigateNext      NavigateKind = "next"
	NavigatePrev      NavigateKind = "prev"
	NavigateNextGroup NavigateKind = "nextGroup"
	NavigatePrevGroup NavigateKind = "prevGroup"
)

// ParseNavigateKind maps a textual intent to a NavigateKind
func ParseNavigateKind(s string) (NavigateKind, bool) {
	switch k := NavigateKind(s); k {
	case NavigateFirst, NavigateLast, NavigateNext, NavigatePrev, NavigateNextGroup, NavigatePrevGroup:
		return k, true
	}
	return "", false
}

// Row is one visible entry of the ordered view
type Row struct {
	ID       string  `json:"id"`
	Value    string  `json:"value"`
	GroupID  string  `json:"group,omitempty"`
	Score    float64 `json:"score"`
	Disabled bool    `json:"disabled,omitempty"`
	Selected bool    `json:"selected,omitempty"`
}
