package tagsim

import (
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/result"
	"github.com/kailas-cloud/tagsim/internal/domain/tagset"
)

// Item is a catalog entry.
type Item struct {
	ID   int64
	Name string
	// Tags in lexical order when returned by the client. When passed to
	// WithItems they may be in any order and may repeat; each element is one
	// tag, commas included.
	Tags []string
}

// Recommendation is one ranked neighbour of the target.
type Recommendation struct {
	Item
	Score float64
}

// Stats summarizes the loaded catalog.
type Stats struct {
	Items        int
	DistinctTags int
	Untagged     int
}

// NormalizeTags splits a raw tag string ("Action, Comedy") into sorted,
// deduplicated tags. Malformed input never fails; empty tokens are dropped.
func NormalizeTags(raw string) []string {
	return tagset.Normalize(raw).Sorted()
}

// Similarity returns the Jaccard index of two tag lists: the shared tag count
// over the combined distinct tag count. It is 0 when either list is empty.
func Similarity(a, b []string) float64 {
	return tagset.Similarity(tagset.Of(a...), tagset.Of(b...))
}

func itemFromDomain(it *item.Item) Item {
	return Item{ID: it.ID(), Name: it.Name(), Tags: it.Tags().Sorted()}
}

func itemToDomain(it Item) item.Item {
	return item.FromTags(it.ID, it.Name, it.Tags)
}

func recommendationsFromDomain(results []result.Result) []Recommendation {
	out := make([]Recommendation, len(results))
	for i := range results {
		it := results[i].Item()
		out[i] = Recommendation{Item: itemFromDomain(&it), Score: results[i].Score()}
	}
	return out
}
