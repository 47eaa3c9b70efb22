package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tagsim/internal/config"
	"github.com/kailas-cloud/tagsim/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	rootCmd := &cobra.Command{
		Use:   "tagsim",
		Short: "Tag-based similar item recommendations",
		Long: `tagsim recommends catalog items that share the most tags with a chosen item,
ranked by Jaccard similarity of their tag sets.

Without a subcommand it starts the HTTP server.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	// Global flags
	rootCmd.PersistentFlags().String("env", config.GetEnv(), "Config environment (config/<env>.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Parquet catalog path (overrides catalog.path)")
	rootCmd.PersistentFlags().String("driver", "", "Catalog driver: parquet, redis or valkey (overrides catalog.driver)")

	rootCmd.AddCommand(
		serve,
		newRecommendCmd(),
		newImportCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// loadConfig reads config/<env>.yaml and applies command-line overrides.
// When the file is missing but --catalog is given, defaults are used so
// one-off CLI runs need no config file.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	env, _ := cmd.Flags().GetString("env")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	driver, _ := cmd.Flags().GetString("driver")

	cfg, err := config.Load(env)
	if err != nil {
		if catalogPath == "" {
			return config.Config{}, env, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Config{HTTP: config.HTTPConfig{Port: 8080}}
		cfg.ApplyDefaults()
	}

	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if driver != "" {
		cfg.Catalog.Driver = driver
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, env, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, env, nil
}
