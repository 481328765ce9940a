package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"palette/internal/engine"
)

var (
	// ErrDuplicateItem is returned when two catalog entries resolve to the same id
	ErrDuplicateItem = errors.New("duplicate catalog item")
	// ErrUnknownGroup is returned when a group entry has no id
	ErrUnknownGroup = errors.New("catalog group without id")
)

// itemNamespace seeds deterministic ids for catalog items that omit one
var itemNamespace = uuid.MustParse("6f1c7e9a-3b52-4d0e-9a8f-2c4d5e6f7a81")

// Catalog is the static item list loaded from config
type Catalog struct {
	Items  []CatalogItem  `toml:"items,omitempty" yaml:"items,omitempty"`
	Groups []CatalogGroup `toml:"groups,omitempty" yaml:"groups,omitempty"`
}

// CatalogGroup is a heading with its items
type CatalogGroup struct {
	ID         string        `toml:"id" yaml:"id"`
	Heading    string        `toml:"heading,omitempty" yaml:"heading,omitempty"`
	ForceMount bool          `toml:"force_mount,omitempty" yaml:"force_mount,omitempty"`
	Items      []CatalogItem `toml:"items" yaml:"items"`
}

// CatalogItem is one palette entry
type CatalogItem struct {
	ID       string   `toml:"id,omitempty" yaml:"id,omitempty"`
	Value    string   `toml:"value" yaml:"value"`
	Keywords []string `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Disabled bool     `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	// ForceMount keeps the item listed whatever is typed
	ForceMount bool `toml:"force_mount,omitempty" yaml:"force_mount,omitempty"`
}

// ItemID derives a stable id from the group and the trimmed value
func ItemID(groupID, value string) string {
	return uuid.NewSHA1(itemNamespace, []byte(groupID+"\x00"+strings.TrimSpace(value))).String()
}

func (it CatalogItem) resolvedID(groupID string) string {
	if it.ID != "" {
		return it.ID
	}
	return ItemID(groupID, it.Value)
}

// Validate rejects empty values, anonymous groups and duplicate ids
func (c Catalog) Validate() error {
	seen := make(map[string]struct{})
	check := func(groupID string, it CatalogItem) error {
		if strings.TrimSpace(it.Value) == "" {
			return fmt.Errorf("item %q in group %q has an empty value", it.ID, groupID)
		}
		id := it.resolvedID(groupID)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q (value %q)", ErrDuplicateItem, id, it.Value)
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, it := range c.Items {
		if err := check("", it); err != nil {
			return err
		}
	}
	groups := make(map[string]struct{})
	for i, g := range c.Groups {
		if strings.TrimSpace(g.ID) == "" {
			return fmt.Errorf("%w: group #%d", ErrUnknownGroup, i+1)
		}
		if _, dup := groups[g.ID]; dup {
			return fmt.Errorf("group %q declared twice", g.ID)
		}
		groups[g.ID] = struct{}{}
		for _, it := range g.Items {
			if err := check(g.ID, it); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len returns the number of items in the catalog
func (c Catalog) Len() int {
	n := len(c.Items)
	for _, g := range c.Groups {
		n += len(g.Items)
	}
	return n
}

// Headings maps group ids to their display heading, falling back to the id
func (c Catalog) Headings() map[string]string {
	out := make(map[string]string, len(c.Groups))
	for _, g := range c.Groups {
		h := g.Heading
		if h == "" {
			h = g.ID
		}
		out[g.ID] = h
	}
	return out
}

// Register loads the catalog into e, ungrouped items first. onSelect, if set,
// becomes the activation callback of every item. It returns the number of
// registered items; nothing is published until the engine is flushed.
func (c Catalog) Register(e *engine.Engine, onSelect func(value string)) int {
	n := 0
	add := func(groupID string, it CatalogItem) {
		opts := []engine.ItemOption{engine.Keywords(it.Keywords...)}
		if groupID != "" {
			opts = append(opts, engine.InGroup(groupID))
		}
		if it.Disabled {
			opts = append(opts, engine.Disabled())
		}
		if it.ForceMount {
			opts = append(opts, engine.ForceMount())
		}
		if onSelect != nil {
			opts = append(opts, engine.OnSelect(onSelect))
		}
		e.RegisterItem(it.resolvedID(groupID), it.Value, opts...)
		n++
	}

	for _, it := range c.Items {
		add("", it)
	}
	for _, g := range c.Groups {
		var gopts []engine.GroupOption
		if g.ForceMount {
			gopts = append(gopts, engine.ForceMountGroup())
		}
		e.RegisterGroup(g.ID, gopts...)
		for _, it := range g.Items {
			add(g.ID, it)
		}
	}
	return n
}
