package chi

import (
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/result"
	recommenduc "github.com/kailas-cloud/tagsim/internal/usecase/recommend"
)

// ErrorCode is the machine-readable error identifier returned to clients.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeItemNotFound       ErrorCode = "item_not_found"
	CodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Item is the JSON form of a catalog item.
type Item struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// ScoredItem is one recommendation row.
type ScoredItem struct {
	Item
	Score float64 `json:"score"`
}

// RecommendationResponse is returned by GET /recommendations.
type RecommendationResponse struct {
	Target Item         `json:"target"`
	K      int          `json:"k"`
	Items  []ScoredItem `json:"items"`
}

// ItemListResponse is a cursor-paginated page of catalog items.
type ItemListResponse struct {
	Items      []Item  `json:"items"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// StatsResponse summarizes the loaded catalog.
type StatsResponse struct {
	Items        int `json:"items"`
	DistinctTags int `json:"distinct_tags"`
	Untagged     int `json:"untagged"`
}

// HealthResponse reports component checks.
type HealthResponse struct {
	Status string            `json:"status"`
	Items  int               `json:"items"`
	Checks map[string]string `json:"checks"`
}

func itemToAPI(it *item.Item) Item {
	return Item{ID: it.ID(), Name: it.Name(), Tags: it.Tags().Sorted()}
}

func resultsToAPI(results []result.Result) []ScoredItem {
	out := make([]ScoredItem, len(results))
	for i := range results {
		it := results[i].Item()
		out[i] = ScoredItem{Item: itemToAPI(&it), Score: results[i].Score()}
	}
	return out
}

// RecommendationToAPI converts a ranked recommendation into its JSON form.
func RecommendationToAPI(rec *recommenduc.Recommendation, k int) RecommendationResponse {
	return RecommendationResponse{
		Target: itemToAPI(&rec.Target),
		K:      k,
		Items:  resultsToAPI(rec.Results),
	}
}
