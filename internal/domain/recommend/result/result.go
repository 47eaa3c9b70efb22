package result

import "github.com/kailas-cloud/tagsim/internal/domain/item"

// Result is a single recommended item with its similarity to the target.
type Result struct {
	item  item.Item
	score float64
}

// New creates a recommendation result.
func New(it item.Item, score float64) Result {
	return Result{item: it, score: score}
}

// Item returns the recommended catalog item.
func (r *Result) Item() item.Item { return r.item }

// Score returns the Jaccard similarity in [0, 1].
func (r *Result) Score() float64 { return r.score }
