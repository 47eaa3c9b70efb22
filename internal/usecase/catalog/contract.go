package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/tagsim/internal/domain/catalog"
)

// Reader supplies the current catalog snapshot.
type Reader interface {
	Snapshot(ctx context.Context) (*domcat.Catalog, error)
}
