package runner

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wikigrab/wikiref/internal/metrics"
	"github.com/wikigrab/wikiref/internal/results"
)

// Pool fans topics out to a fixed number of worker goroutines. The topic
// channel is the shared work queue, handing each topic to exactly one worker;
// the result channel is the sink collecting completed Outcomes.
type Pool struct {
	fetch   FetchFunc
	workers int
	logger  *zap.Logger
}

// NewPool constructs a Pool with the given worker count. Counts below one
// are clamped to one.
func NewPool(fetch FetchFunc, workers int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{fetch: fetch, workers: workers, logger: logger}
}

// Run processes every topic with at most the configured number of fetches in
// flight. Each worker runs one topic's fetch to completion before taking the
// next pending topic; a failed topic never disturbs sibling workers. Results
// arrive in completion order, which may differ between runs. Run returns only
// after every submitted topic has produced an Outcome.
func (p *Pool) Run(ctx context.Context, topicList []string) []results.Outcome {
	started := time.Now()
	queue := make(chan string)
	sink := make(chan results.Outcome)

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for topic := range queue {
				metrics.WorkerStarted()
				fetchStart := time.Now()
				outcome := p.fetch(ctx, topic)
				metrics.ObserveFetch(metrics.ModeConcurrent, string(outcome.Status), time.Since(fetchStart))
				metrics.WorkerFinished()
				sink <- outcome
			}
			return nil
		})
	}

	go func() {
		for _, topic := range topicList {
			queue <- topic
		}
		close(queue)
	}()

	go func() {
		_ = g.Wait() // workers never return errors
		close(sink)
	}()

	out := make([]results.Outcome, 0, len(topicList))
	for outcome := range sink {
		out = append(out, outcome)
	}

	elapsed := time.Since(started)
	metrics.ObserveRun(metrics.ModeConcurrent, elapsed)
	p.logger.Info("concurrent run finished",
		zap.Int("topics", len(topicList)),
		zap.Int("workers", p.workers),
		zap.Duration("elapsed", elapsed),
	)
	return out
}
