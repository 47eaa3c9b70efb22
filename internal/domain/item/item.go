package item

import (
	"strings"

	"github.com/kailas-cloud/tagsim/internal/domain/tagset"
)

// Item is a catalog entry (immutable value object).
type Item struct {
	id      int64
	name    string
	rawTags string
	tags    tagset.Set
}

// New creates an Item and derives its tag set from rawTags.
// A missing tag value is passed as "" and yields an empty set.
func New(id int64, name, rawTags string) Item {
	return Item{
		id:      id,
		name:    name,
		rawTags: rawTags,
		tags:    tagset.Normalize(rawTags),
	}
}

// FromTags creates an Item from already-split tags. Tags are taken as-is,
// so a tag containing a comma stays one tag. RawTags joins them for display.
func FromTags(id int64, name string, tags []string) Item {
	return Item{
		id:      id,
		name:    name,
		rawTags: strings.Join(tags, tagset.Delimiter),
		tags:    tagset.Of(tags...),
	}
}

// ID returns the unique item identifier.
func (i *Item) ID() int64 { return i.id }

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// RawTags returns the tag string as stored in the catalog.
func (i *Item) RawTags() string { return i.rawTags }

// Tags returns the derived tag set. Callers must not modify it.
func (i *Item) Tags() tagset.Set { return i.tags }
