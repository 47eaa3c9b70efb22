package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation and catalog Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagsim",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"outcome"}, // ok / not_found / error
	)

	RecommendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tagsim",
			Name:      "recommend_duration_seconds",
			Help:      "Time spent scoring and ranking one recommendation",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"outcome"},
	)

	RecommendCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tagsim",
			Name:      "recommend_candidates",
			Help:      "Number of catalog items scored per recommendation",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	CatalogItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tagsim",
			Name:      "catalog_items",
			Help:      "Items in the loaded catalog snapshot",
		},
		[]string{"kind"}, // total / untagged
	)

	CatalogDistinctTags = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tagsim",
			Name:      "catalog_distinct_tags",
			Help:      "Distinct tags across the loaded catalog snapshot",
		},
	)

	CatalogRowsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tagsim",
			Name:      "catalog_rows_skipped_total",
			Help:      "Catalog rows dropped at load (missing id or name, duplicate id)",
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		httpRequestDuration,
		httpRequestsTotal,
		RecommendRequestsTotal,
		RecommendDuration,
		RecommendCandidates,
		CatalogItems,
		CatalogDistinctTags,
		CatalogRowsSkipped,
	}
}

// Register registers every tagsim collector with reg.
// Registering the same collectors twice is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

// RecommendObserver feeds recommendation outcomes into Prometheus.
type RecommendObserver struct{}

// ObserveRecommend records one recommendation call.
func (RecommendObserver) ObserveRecommend(outcome string, candidates int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if candidates > 0 {
		RecommendCandidates.Observe(float64(candidates))
	}
}

// SetCatalogStats publishes the size of the loaded catalog.
func SetCatalogStats(items, distinctTags, untagged, skipped int) {
	CatalogItems.WithLabelValues("total").Set(float64(items))
	CatalogItems.WithLabelValues("untagged").Set(float64(untagged))
	CatalogDistinctTags.Set(float64(distinctTags))
	if skipped > 0 {
		CatalogRowsSkipped.Add(float64(skipped))
	}
}
