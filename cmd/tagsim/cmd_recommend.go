package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tagsim/internal/domain/recommend/request"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
	logpkg "github.com/kailas-cloud/tagsim/internal/logger"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/snapshot"
	chiTransport "github.com/kailas-cloud/tagsim/internal/transport/chi"
	recommenduc "github.com/kailas-cloud/tagsim/internal/usecase/recommend"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <target>",
		Short: "Print the items most similar to a target",
		Long: `Print the top-K items whose tag sets are most similar to the target.

The target is an item identifier or an exact item name. A numeric target is
looked up as an identifier first and falls back to a name; use --by to force one.`,
		Example: `  tagsim recommend 32281 --catalog data/anime.parquet
  tagsim recommend "Kimi no Na wa." -k 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}
	cmd.Flags().IntP("k", "k", 0, "Number of recommendations (default from config, 5)")
	cmd.Flags().String("by", string(target.Auto), "How to resolve the target: auto, id or name")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().String("log-level", "", "Log level for diagnostics on stderr (default warn)")
	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	k, _ := cmd.Flags().GetInt("k")
	by, _ := cmd.Flags().GetString("by")
	jsonOut, _ := cmd.Flags().GetBool("json")
	level, _ := cmd.Flags().GetString("log-level")

	tgt, err := target.ParseKind(target.Kind(by), args[0])
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req, err := request.Limits{DefaultK: cfg.Recommend.DefaultK, MaxK: cfg.Recommend.MaxK}.New(tgt, k)
	if err != nil {
		return err
	}

	logger, err := logpkg.NewCLILogger(level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := logpkg.ContextWithLogger(cmd.Context(), logger)

	cat, store, err := loadCatalog(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	rec, err := recommenduc.New(snapshot.NewStatic(cat)).Recommend(ctx, &req)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(chiTransport.RecommendationToAPI(&rec, req.K())); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	}
	return printRecommendation(cmd.OutOrStdout(), &rec)
}

// printRecommendation writes the target line and a ranked table.
func printRecommendation(out io.Writer, rec *recommenduc.Recommendation) error {
	fmt.Fprintf(out, "Target: %s (id %d)\n", rec.Target.Name(), rec.Target.ID())
	fmt.Fprintf(out, "Tags: %s\n\n", rec.Target.RawTags())

	if len(rec.Results) == 0 {
		fmt.Fprintln(out, "No other items in the catalog.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tTAGS\tSIMILARITY")
	for i := range rec.Results {
		it := rec.Results[i].Item()
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.4f\n", i+1, it.ID(), it.Name(), it.RawTags(), rec.Results[i].Score())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
