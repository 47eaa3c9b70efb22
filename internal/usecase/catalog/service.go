package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/tagsim/internal/domain"
	domcat "github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service exposes read-only catalog browsing.
type Service struct {
	reader          Reader
	defaultPageSize int
	maxPageSize     int
}

// New creates a catalog service.
func New(reader Reader) *Service {
	return &Service{reader: reader, defaultPageSize: DefaultPageSize, maxPageSize: MaxPageSize}
}

// WithPagination overrides page size defaults. Non-positive values are ignored.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// List returns a page of items in catalog order.
// cursor is the identifier of the last item of the previous page ("" for the first page).
// The returned cursor is "" when there are no more items.
func (s *Service) List(ctx context.Context, cursor string, limit int) ([]item.Item, string, error) {
	cat, err := s.reader.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("get catalog: %w", err)
	}

	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	start := 0
	if cursor != "" {
		id, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: malformed cursor %q", domain.ErrInvalidRequest, cursor)
		}
		idx, ok := cat.IndexOfID(id)
		if !ok {
			return nil, "", fmt.Errorf("%w: unknown cursor %q", domain.ErrInvalidRequest, cursor)
		}
		start = idx + 1
	}

	end := min(start+limit, cat.Len())
	items := make([]item.Item, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		items = append(items, cat.At(i))
	}

	next := ""
	if end < cat.Len() && len(items) > 0 {
		last := items[len(items)-1]
		next = strconv.FormatInt(last.ID(), 10)
	}
	return items, next, nil
}

// Names returns every display name in catalog order.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	cat, err := s.reader.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return cat.Names(), nil
}

// Items returns every item in catalog order.
func (s *Service) Items(ctx context.Context) ([]item.Item, error) {
	cat, err := s.reader.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return cat.Items(), nil
}

// Get resolves a single item. Returns domain.ErrNotFound if nothing matches.
func (s *Service) Get(ctx context.Context, t target.Target) (item.Item, error) {
	cat, err := s.reader.Snapshot(ctx)
	if err != nil {
		return item.Item{}, fmt.Errorf("get catalog: %w", err)
	}
	it, _, err := cat.Resolve(t)
	if err != nil {
		return item.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Stats summarizes the loaded catalog.
func (s *Service) Stats(ctx context.Context) (domcat.Stats, error) {
	cat, err := s.reader.Snapshot(ctx)
	if err != nil {
		return domcat.Stats{}, fmt.Errorf("get catalog: %w", err)
	}
	return cat.Stats(), nil
}
