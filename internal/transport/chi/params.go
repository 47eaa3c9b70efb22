package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// RecommendationsParams are the query parameters of GET /recommendations.
type RecommendationsParams struct {
	Target string
	K      *int
	By     *string
}

// ListItemsParams are the query parameters of GET /items.
type ListItemsParams struct {
	Cursor *string
	Limit  *int
}

// IndexParams are the query parameters of the UI page. Both are optional.
type IndexParams struct {
	Target *string
	K      *int
}

func bindRecommendationsParams(r *http.Request) (RecommendationsParams, error) {
	var p RecommendationsParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "target", q, &p.Target); err != nil {
		return p, fmt.Errorf("invalid parameter target: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "k", q, &p.K); err != nil {
		return p, fmt.Errorf("invalid parameter k: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "by", q, &p.By); err != nil {
		return p, fmt.Errorf("invalid parameter by: %w", err)
	}
	return p, nil
}

func bindListItemsParams(r *http.Request) (ListItemsParams, error) {
	var p ListItemsParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "cursor", q, &p.Cursor); err != nil {
		return p, fmt.Errorf("invalid parameter cursor: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return p, fmt.Errorf("invalid parameter limit: %w", err)
	}
	return p, nil
}

func bindIndexParams(r *http.Request) (IndexParams, error) {
	var p IndexParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "target", q, &p.Target); err != nil {
		return p, fmt.Errorf("invalid parameter target: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "k", q, &p.K); err != nil {
		return p, fmt.Errorf("invalid parameter k: %w", err)
	}
	return p, nil
}

func bindItemID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid parameter id: %w", err)
	}
	return id, nil
}
