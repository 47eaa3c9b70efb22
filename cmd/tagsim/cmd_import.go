package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/tagsim/internal/logger"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/hashsrc"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the parquet catalog into Redis/Valkey",
		Long: `Read the parquet catalog (catalog.path or --catalog) and replace the
catalog stored under database.key_prefix. Servers using the redis or valkey
driver load this copy at startup.`,
		Args: cobra.NoArgs,
		RunE: runImport,
	}
	cmd.Flags().String("log-level", "", "Log level for diagnostics on stderr (default warn)")
	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required: set catalog.path or --catalog")
	}

	logger, err := logpkg.NewCLILogger(level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	cat, stats, err := loadParquet(ctx, &cfg, logger)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := hashsrc.New(store, cfg.Database.KeyPrefix).Save(ctx, cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	logger.Info("Catalog imported",
		zap.Int("items", cat.Len()),
		zap.String("key_prefix", cfg.Database.KeyPrefix))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items (%d rows skipped) under %q\n",
		cat.Len(), stats.Skipped, cfg.Database.KeyPrefix)
	return nil
}
