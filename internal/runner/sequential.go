// Package runner applies the fetch operation across a topic list under a
// scheduling policy: strictly in order on the calling goroutine, or fanned
// out to a bounded pool of workers.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/metrics"
	"github.com/wikigrab/wikiref/internal/results"
)

// FetchFunc produces the outcome record for a single topic. Implementations
// must not fail: every call yields exactly one Outcome.
type FetchFunc func(ctx context.Context, topic string) results.Outcome

// Sequential applies the fetch function to each topic in input order.
type Sequential struct {
	fetch  FetchFunc
	logger *zap.Logger
}

// NewSequential constructs a Sequential runner.
func NewSequential(fetch FetchFunc, logger *zap.Logger) *Sequential {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequential{fetch: fetch, logger: logger}
}

// Run fetches every topic on the calling goroutine, blocking on each remote
// call in turn. Output order equals input order.
func (s *Sequential) Run(ctx context.Context, topicList []string) []results.Outcome {
	started := time.Now()
	out := make([]results.Outcome, 0, len(topicList))
	for _, topic := range topicList {
		fetchStart := time.Now()
		outcome := s.fetch(ctx, topic)
		metrics.ObserveFetch(metrics.ModeSequential, string(outcome.Status), time.Since(fetchStart))
		out = append(out, outcome)
	}

	elapsed := time.Since(started)
	metrics.ObserveRun(metrics.ModeSequential, elapsed)
	s.logger.Info("sequential run finished",
		zap.Int("topics", len(topicList)),
		zap.Duration("elapsed", elapsed),
	)
	return out
}
