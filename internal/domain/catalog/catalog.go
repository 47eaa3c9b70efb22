// Package catalog holds the immutable in-memory snapshot of recommendable items.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

// Catalog is a read-only item snapshot. Safe for concurrent readers.
type Catalog struct {
	items  []item.Item
	byID   map[int64]int
	byName map[string]int
}

// New builds a catalog preserving the order of items.
// Duplicate identifiers are rejected; for duplicate names the first item wins name lookups.
func New(items []item.Item) (*Catalog, error) {
	c := &Catalog{
		items:  make([]item.Item, len(items)),
		byID:   make(map[int64]int, len(items)),
		byName: make(map[string]int, len(items)),
	}
	copy(c.items, items)

	for i := range c.items {
		it := &c.items[i]
		if prev, ok := c.byID[it.ID()]; ok {
			return nil, fmt.Errorf("%w: id %d at rows %d and %d", domain.ErrDuplicateItem, it.ID(), prev, i)
		}
		c.byID[it.ID()] = i
		if _, ok := c.byName[it.Name()]; !ok {
			c.byName[it.Name()] = i
		}
	}
	return c, nil
}

// Empty returns a catalog with no items.
func Empty() *Catalog {
	c, _ := New(nil)
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// At returns the item at position i in catalog order.
func (c *Catalog) At(i int) item.Item { return c.items[i] }

// Items returns the items in catalog order as a fresh slice.
func (c *Catalog) Items() []item.Item {
	out := make([]item.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Names returns display names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].Name()
	}
	return out
}

// IndexOfID returns the catalog position of the item with the given identifier.
func (c *Catalog) IndexOfID(id int64) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// ByID looks up an item by identifier.
func (c *Catalog) ByID(id int64) (item.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return item.Item{}, false
	}
	return c.items[i], true
}

// Resolve finds the target item and its catalog position.
// Returns domain.ErrNotFound when nothing matches exactly.
func (c *Catalog) Resolve(t target.Target) (item.Item, int, error) {
	idx, ok := c.resolveIndex(t)
	if !ok {
		return item.Item{}, -1, fmt.Errorf("item %s: %w", t, domain.ErrNotFound)
	}
	return c.items[idx], idx, nil
}

func (c *Catalog) resolveIndex(t target.Target) (int, bool) {
	switch t.Kind() {
	case target.ID:
		id, _ := t.ID()
		i, ok := c.byID[id]
		return i, ok
	case target.Name:
		i, ok := c.byName[t.Name()]
		return i, ok
	default:
		if id, hasID := t.ID(); hasID {
			if i, ok := c.byID[id]; ok {
				return i, true
			}
		}
		if t.Name() == "" {
			return -1, false
		}
		i, ok := c.byName[t.Name()]
		return i, ok
	}
}

// Stats summarizes a catalog.
type Stats struct {
	Items        int
	DistinctTags int
	Untagged     int
}

// Stats computes item, distinct tag and untagged counts.
func (c *Catalog) Stats() Stats {
	tags := make(map[string]struct{})
	untagged := 0
	for i := range c.items {
		set := c.items[i].Tags()
		if set.Len() == 0 {
			untagged++
			continue
		}
		for t := range set {
			tags[t] = struct{}{}
		}
	}
	return Stats{Items: len(c.items), DistinctTags: len(tags), Untagged: untagged}
}
