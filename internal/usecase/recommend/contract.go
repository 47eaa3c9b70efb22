package recommend

import (
	"context"
	"time"

	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
)

// CatalogReader supplies the current catalog snapshot.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*catalog.Catalog, error)
}

// Observer records recommendation outcomes (metrics).
type Observer interface {
	ObserveRecommend(outcome string, candidates int, duration time.Duration)
}
