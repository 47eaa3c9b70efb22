package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/request"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/result"
	"github.com/kailas-cloud/tagsim/internal/logger"
)

// Outcome labels passed to Observer.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recommendation is the resolved target plus its ranked neighbours.
type Recommendation struct {
	Target  item.Item
	Results []result.Result
}

// Service computes top-K similar items for a target.
type Service struct {
	catalogs CatalogReader
	observer Observer
}

// New creates a recommendation service.
func New(catalogs CatalogReader) *Service {
	return &Service{catalogs: catalogs}
}

// WithObserver attaches a metrics observer. nil disables observation.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// Recommend resolves the request target and ranks the rest of the catalog against it.
// Returns domain.ErrNotFound if the target does not match any item exactly.
func (s *Service) Recommend(ctx context.Context, req *request.Request) (Recommendation, error) {
	start := time.Now()

	cat, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		s.observe(OutcomeError, 0, start)
		return Recommendation{}, fmt.Errorf("get catalog: %w", err)
	}

	tgt, _, err := cat.Resolve(req.Target())
	if err != nil {
		outcome := OutcomeError
		if errors.Is(err, domain.ErrNotFound) {
			outcome = OutcomeNotFound
		}
		s.observe(outcome, 0, start)
		return Recommendation{}, fmt.Errorf("resolve target: %w", err)
	}

	logger.FromContext(ctx).Debug("Ranking candidates",
		zap.Int64("target_id", tgt.ID()),
		zap.String("target_name", tgt.Name()),
		zap.String("target_tags", tgt.RawTags()),
		zap.Int("k", req.K()),
	)

	results := Rank(cat, tgt, req.K())
	s.observe(OutcomeOK, cat.Len()-1, start)

	return Recommendation{Target: tgt, Results: results}, nil
}

func (s *Service) observe(outcome string, candidates int, start time.Time) {
	if s.observer == nil {
		return
	}
	if candidates < 0 {
		candidates = 0
	}
	s.observer.ObserveRecommend(outcome, candidates, time.Since(start))
}
