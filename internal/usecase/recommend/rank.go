package recommend

import (
	"sort"

	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/result"
	"github.com/kailas-cloud/tagsim/internal/domain/tagset"
)

// Rank scores every catalog item except tgt against tgt's tag set and returns
// the top k by descending Jaccard similarity.
// Items are excluded by identifier, so a namesake of the target is still a candidate.
// Equal scores keep catalog order. k <= 0 yields no results.
func Rank(cat *catalog.Catalog, tgt item.Item, k int) []result.Result {
	if k <= 0 || cat.Len() == 0 {
		return []result.Result{}
	}

	targetID := tgt.ID()
	targetTags := tgt.Tags()

	// Per-call scratch space: the catalog itself is never written.
	scored := make([]result.Result, 0, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		it := cat.At(i)
		if it.ID() == targetID {
			continue
		}
		scored = append(scored, result.New(it, tagset.Similarity(targetTags, it.Tags())))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
