// Package snapshot provides the in-memory catalog snapshot served to use cases.
package snapshot

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
)

// Static serves a catalog loaded once at startup.
type Static struct {
	cat *catalog.Catalog
}

// NewStatic wraps an already loaded catalog. A nil catalog yields
// ErrCatalogUnavailable on every call.
func NewStatic(cat *catalog.Catalog) *Static {
	return &Static{cat: cat}
}

// Snapshot returns the wrapped catalog.
func (s *Static) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if s == nil || s.cat == nil {
		return nil, fmt.Errorf("snapshot: %w", domain.ErrCatalogUnavailable)
	}
	return s.cat, nil
}
