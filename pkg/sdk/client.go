package tagsim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/db"
	dbRedis "github.com/kailas-cloud/tagsim/internal/db/redis"
	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/domain/item"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/request"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
	"github.com/kailas-cloud/tagsim/internal/metrics"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/hashsrc"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/parquetsrc"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/snapshot"
	cataloguc "github.com/kailas-cloud/tagsim/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/tagsim/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/tagsim/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type recommendUseCase interface {
	Recommend(ctx context.Context, req *request.Request) (recommenduc.Recommendation, error)
}

type catalogUseCase interface {
	Get(ctx context.Context, t target.Target) (item.Item, error)
	Names(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (catalog.Stats, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the tagsim SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	recSvc    recommendUseCase
	catSvc    catalogUseCase
	healthSvc healthUseCase
	limits    request.Limits
	obs       *observer
}

// New loads the catalog from the configured source and returns a Client.
// Exactly one of WithItems, WithParquet, WithRedis or WithValkey is required.
// The provided context bounds catalog loading.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	cat, store, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := wireClient(cat, store, obs)
	c.limits = request.Limits{DefaultK: cfg.defaultK, MaxK: cfg.maxK}
	if cfg.metricsReg != nil {
		st := cat.Stats()
		metrics.SetCatalogStats(st.Items, st.DistinctTags, st.Untagged, 0)
	}
	return c, nil
}

func loadCatalog(ctx context.Context, cfg *clientConfig) (*catalog.Catalog, db.Store, error) {
	switch cfg.source {
	case sourceItems:
		items := make([]item.Item, len(cfg.items))
		for i, it := range cfg.items {
			items[i] = itemToDomain(it)
		}
		cat, err := catalog.New(items)
		if err != nil {
			return nil, nil, fmt.Errorf("tagsim: build catalog: %w", err)
		}
		return cat, nil, nil

	case sourceParquet:
		reader := parquetsrc.New(parquetsrc.Columns{
			ID:   cfg.columns.ID,
			Name: cfg.columns.Name,
			Tags: cfg.columns.Tags,
		}, zap.NewNop())
		cat, _, err := reader.Load(ctx, cfg.parquetPath)
		if err != nil {
			return nil, nil, fmt.Errorf("tagsim: %w", err)
		}
		return cat, nil, nil

	case sourceRedis, sourceValkey:
		store, err := createStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("tagsim: database not ready: %w", err)
		}
		cat, err := hashsrc.New(store, cfg.keyPrefix).Load(ctx)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("tagsim: load catalog: %w", err)
		}
		return cat, store, nil

	case "":
		return nil, nil, errors.New("tagsim: catalog source required (use WithItems, WithParquet, WithRedis or WithValkey)")

	default:
		return nil, nil, fmt.Errorf("tagsim: unknown catalog source %q", cfg.source)
	}
}

func createStore(cfg *clientConfig) (db.Store, error) {
	if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
		return nil, fmt.Errorf("tagsim: %s address required", cfg.source)
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("tagsim: create %s store: %w", cfg.source, err)
	}
	return s, nil
}

func wireClient(cat *catalog.Catalog, store db.Store, obs *observer) *Client {
	snap := snapshot.NewStatic(cat)

	recSvc := recommenduc.New(snap)
	if obs != nil && obs.metrics != nil {
		recSvc = recSvc.WithObserver(metrics.RecommendObserver{})
	}

	// Pass a nil interface, not a typed nil, when there is no database.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		recSvc:    recSvc,
		catSvc:    cataloguc.New(snap),
		healthSvc: healthuc.New(snap, pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Recommend returns up to k items most similar to the target, best first.
// A numeric target is tried as an identifier first, then as an exact name.
// k == 0 means the default (5). Returns ErrNotFound for an unknown target.
func (c *Client) Recommend(ctx context.Context, ref string, k int) ([]Recommendation, error) {
	return c.recommend(ctx, "recommend", target.Parse(ref), k)
}

// RecommendByID is Recommend with an identifier target.
func (c *Client) RecommendByID(ctx context.Context, id int64, k int) ([]Recommendation, error) {
	return c.recommend(ctx, "recommend_by_id", target.ByID(id), k)
}

// RecommendByName is Recommend with an exact name target, even when the name is numeric.
func (c *Client) RecommendByName(ctx context.Context, name string, k int) ([]Recommendation, error) {
	return c.recommend(ctx, "recommend_by_name", target.ByName(name), k)
}

func (c *Client) recommend(ctx context.Context, op string, t target.Target, k int) (_ []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	req, err := c.limits.New(t, k)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	rec, err := c.recSvc.Recommend(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return recommendationsFromDomain(rec.Results), nil
}

// Item returns the catalog item with the given identifier.
func (c *Client) Item(ctx context.Context, id int64) (_ Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("item", start, err) }()

	it, err := c.catSvc.Get(ctx, target.ByID(id))
	if err != nil {
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return itemFromDomain(&it), nil
}

// Names returns every item name in catalog order.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	names, err := c.catSvc.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("names: %w", err)
	}
	return names, nil
}

// Stats summarizes the loaded catalog.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	st, err := c.catSvc.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Stats{Items: st.Items, DistinctTags: st.DistinctTags, Untagged: st.Untagged}, nil
}
