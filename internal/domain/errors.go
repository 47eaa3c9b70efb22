package domain

import "errors"

var (
	// ErrNotFound signals that a target item has no matching catalog entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a malformed recommendation or listing request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDuplicateItem signals two catalog rows sharing one identifier.
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrCatalogUnavailable signals that no catalog snapshot is loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
