package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/config"
	"github.com/wikigrab/wikiref/internal/logging"
	"github.com/wikigrab/wikiref/internal/metrics"
	"github.com/wikigrab/wikiref/internal/pipeline"
	"github.com/wikigrab/wikiref/internal/server"
	"github.com/wikigrab/wikiref/internal/wiki"
)

// newFetchCmd creates and configures the 'fetch' subcommand, which runs the
// full resolve-fetch-write pipeline.
func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Downloads reference lists for topics matching the query",
		Long: `Resolves the configured query into Wikipedia topics and downloads each
topic's external reference list using the configured execution mode:
'sequential' (one page at a time), 'concurrent' (a bounded worker pool), or
'both' (sequential first, then concurrent).`,
		RunE: runFetchCommand,
	}

	flags := cmd.Flags()
	flags.StringP("query", "q", "", "search query used to discover topics")
	flags.StringP("output-dir", "o", "", "directory for the output JSON file")
	flags.StringP("mode", "m", "", "execution mode: sequential, concurrent, or both")
	flags.IntP("max-workers", "w", 0, "worker count for the concurrent runner")

	cobra.CheckErr(viper.BindPFlag("query", flags.Lookup("query")))
	cobra.CheckErr(viper.BindPFlag("output_dir", flags.Lookup("output-dir")))
	cobra.CheckErr(viper.BindPFlag("mode", flags.Lookup("mode")))
	cobra.CheckErr(viper.BindPFlag("max_workers", flags.Lookup("max-workers")))

	return cmd
}

func runFetchCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	metrics.Init()
	if cfg.Metrics.ListenAddr != "" {
		diag := server.New(cfg.Metrics.ListenAddr, logger)
		diag.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := diag.Shutdown(shutdownCtx); err != nil {
				logger.Warn("diagnostics shutdown failed", zap.Error(err))
			}
		}()
	}

	client := wiki.NewClient(wiki.Config{
		APIURL:    cfg.Wikipedia.APIURL,
		UserAgent: cfg.Wikipedia.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	}, logger)

	pipe := pipeline.New(cfg, client, client, logger)
	if err := pipe.Run(cmd.Context()); err != nil {
		logger.Error("fetch run failed", zap.Error(err))
		return fmt.Errorf("run fetch pipeline: %w", err)
	}
	return nil
}
