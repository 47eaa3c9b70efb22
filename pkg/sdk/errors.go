package tagsim

import "github.com/kailas-cloud/tagsim/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrDuplicateItem      = domain.ErrDuplicateItem
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)
