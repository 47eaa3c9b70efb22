package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/config"
	"github.com/kailas-cloud/tagsim/internal/db"
	dbRedis "github.com/kailas-cloud/tagsim/internal/db/redis"
	"github.com/kailas-cloud/tagsim/internal/domain/catalog"
	"github.com/kailas-cloud/tagsim/internal/metrics"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/hashsrc"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/parquetsrc"
)

// openStore connects to Redis or Valkey and waits until it answers.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Store, error) {
	if len(cfg.Database.Addrs) == 0 {
		return nil, fmt.Errorf("database.addrs is required")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
	return store, nil
}

// loadParquet reads the catalog file named in the config.
func loadParquet(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, parquetsrc.LoadStats, error) {
	reader := parquetsrc.New(parquetsrc.Columns{
		ID:   cfg.Catalog.Columns.ID,
		Name: cfg.Catalog.Columns.Name,
		Tags: cfg.Catalog.Columns.Tags,
	}, logger)

	cat, stats, err := reader.Load(ctx, cfg.Catalog.Path)
	if err != nil {
		return nil, stats, fmt.Errorf("load parquet catalog: %w", err)
	}
	logger.Info("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("rows", stats.Rows),
		zap.Int("items", stats.Loaded),
		zap.Int("skipped", stats.Skipped),
	)
	return cat, stats, nil
}

// loadCatalog loads the snapshot from the configured driver. The returned
// store is nil for the parquet driver; otherwise the caller closes it.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, db.Store, error) {
	switch cfg.Catalog.Driver {
	case config.DriverParquet:
		cat, stats, err := loadParquet(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		publishStats(cat, stats.Skipped)
		return cat, nil, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cat, err := hashsrc.New(store, cfg.Database.KeyPrefix).Load(ctx)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("load %s catalog: %w", cfg.Catalog.Driver, err)
		}
		if cat.Len() == 0 {
			logger.Warn("Catalog is empty, run `tagsim import` first",
				zap.String("key_prefix", cfg.Database.KeyPrefix))
		}
		logger.Info("Catalog loaded", zap.String("driver", cfg.Catalog.Driver), zap.Int("items", cat.Len()))
		publishStats(cat, 0)
		return cat, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog driver %q", cfg.Catalog.Driver)
	}
}

func publishStats(cat *catalog.Catalog, skipped int) {
	st := cat.Stats()
	metrics.SetCatalogStats(st.Items, st.DistinctTags, st.Untagged, skipped)
}
