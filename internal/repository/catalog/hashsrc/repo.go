// Package hashsrc stores and loads catalog snapshots as Redis/Valkey hashes.
package hashsrc

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/tagsim/internal/db"
	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
)

// DefaultKeyPrefix namespaces every key written by the repository.
const DefaultKeyPrefix = "tagsim:"

const (
	itemKeySegment = "item:"
	batchSize      = 500

	fieldID   = "id"
	fieldName = "name"
	fieldTags = "tags"
	fieldSeq  = "seq"
)

// store is the consumer interface for catalog persistence (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo maps catalog items to one hash per item.
// Only catalog records live here; similarity scores are never written.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. An empty prefix means DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) itemKey(id int64) string {
	return r.prefix + itemKeySegment + strconv.FormatInt(id, 10)
}

func (r *Repo) itemPattern() string {
	return r.prefix + itemKeySegment + "*"
}

// Save replaces the stored snapshot with cat.
// The catalog position is kept in the seq field so Load restores the original order.
func (r *Repo) Save(ctx context.Context, cat *catalog.Catalog) error {
	old, err := r.store.Scan(ctx, r.itemPattern())
	if err != nil {
		return fmt.Errorf("scan existing items: %w", err)
	}
	for start := 0; start < len(old); start += batchSize {
		end := min(start+batchSize, len(old))
		if err := r.store.Del(ctx, old[start:end]...); err != nil {
			return fmt.Errorf("delete existing items: %w", err)
		}
	}

	batch := make([]db.HashSetItem, 0, min(batchSize, cat.Len()))
	for i := 0; i < cat.Len(); i++ {
		it := cat.At(i)
		batch = append(batch, db.HashSetItem{
			Key: r.itemKey(it.ID()),
			Fields: map[string]string{
				fieldID:   strconv.FormatInt(it.ID(), 10),
				fieldName: it.Name(),
				fieldTags: it.RawTags(),
				fieldSeq:  strconv.Itoa(i),
			},
		})
		if len(batch) == batchSize {
			if err := r.store.HSetMulti(ctx, batch); err != nil {
				return fmt.Errorf("store items: %w", err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := r.store.HSetMulti(ctx, batch); err != nil {
			return fmt.Errorf("store items: %w", err)
		}
	}
	return nil
}

type storedItem struct {
	seq int
	it  item.Item
}

// Load reads every stored item and rebuilds the catalog in saved order.
func (r *Repo) Load(ctx context.Context) (*catalog.Catalog, error) {
	keys, err := r.store.Scan(ctx, r.itemPattern())
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	stored := make([]storedItem, 0, len(keys))
	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))
		hashes, err := r.store.HGetAllMulti(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("get items: %w", err)
		}
		for i, h := range hashes {
			if len(h) == 0 {
				// Deleted between SCAN and HGETALL.
				continue
			}
			si, err := parseItem(h)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", keys[start+i], err)
			}
			stored = append(stored, si)
		}
	}

	sort.SliceStable(stored, func(i, j int) bool { return stored[i].seq < stored[j].seq })

	items := make([]item.Item, len(stored))
	for i := range stored {
		items[i] = stored[i].it
	}

	cat, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return cat, nil
}

func parseItem(h map[string]string) (storedItem, error) {
	id, err := strconv.ParseInt(h[fieldID], 10, 64)
	if err != nil {
		return storedItem{}, fmt.Errorf("parse id: %w", err)
	}
	seq, err := strconv.Atoi(h[fieldSeq])
	if err != nil {
		return storedItem{}, fmt.Errorf("parse seq: %w", err)
	}
	return storedItem{seq: seq, it: item.New(id, h[fieldName], h[fieldTags])}, nil
}
