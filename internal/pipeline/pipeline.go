// Package pipeline orchestrates a full fetch run: topic resolution, the
// configured runner modes, and the final JSON write.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/config"
	"github.com/wikigrab/wikiref/internal/fetch"
	"github.com/wikigrab/wikiref/internal/results"
	"github.com/wikigrab/wikiref/internal/runner"
	"github.com/wikigrab/wikiref/internal/topics"
	"github.com/wikigrab/wikiref/internal/wiki"
)

// Pipeline wires the resolver, fetcher, runners, and writer together.
type Pipeline struct {
	cfg      config.Config
	resolver *topics.Resolver
	fetcher  *fetch.Fetcher
	writer   *results.Writer
	logger   *zap.Logger
}

// New constructs a Pipeline from the search and page-fetch capabilities.
func New(cfg config.Config, search wiki.Searcher, pages wiki.PageFetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:      cfg,
		resolver: topics.NewResolver(search, cfg.SearchLimit, logger),
		fetcher:  fetch.New(pages, logger),
		writer:   results.NewWriter(logger),
		logger:   logger,
	}
}

// Run executes the configured modes against the resolved topic list and
// writes the merged result file, sequential outcomes before concurrent ones.
// Per-topic failures are recorded as error outcomes and never abort the run;
// only topic resolution and output I/O failures are returned.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))

	topicList, err := p.resolver.Resolve(ctx, p.cfg.Query)
	if err != nil {
		return fmt.Errorf("resolve topics: %w", err)
	}
	if len(topicList) == 0 {
		logger.Warn("no topics found for query", zap.String("query", p.cfg.Query))
	}

	collections := make([][]results.Outcome, 0, 2)
	if p.cfg.Mode.RunsSequential() {
		seq := runner.NewSequential(p.fetcher.Fetch, logger)
		collections = append(collections, seq.Run(ctx, topicList))
	}
	if p.cfg.Mode.RunsConcurrent() {
		pool := runner.NewPool(p.fetcher.Fetch, p.cfg.MaxWorkers, logger)
		collections = append(collections, pool.Run(ctx, topicList))
	}

	dest := filepath.Join(p.cfg.OutputDir, results.OutputFileName)
	if err := p.writer.Write(collections, dest); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	logger.Info("run complete",
		zap.String("mode", string(p.cfg.Mode)),
		zap.Int("topics", len(topicList)),
		zap.String("output", dest),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}
