package health

import (
	"context"

	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader exposes the loaded catalog snapshot.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*catalog.Catalog, error)
}
