// Package topics expands a search query into the ordered list of page titles
// a run will process.
package topics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/wiki"
)

// Resolver turns a free-text query into topic names via the search capability.
type Resolver struct {
	search wiki.Searcher
	limit  int
	logger *zap.Logger
}

// NewResolver constructs a Resolver that returns at most limit topics.
func NewResolver(search wiki.Searcher, limit int, logger *zap.Logger) *Resolver {
	if limit < 1 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{search: search, limit: limit, logger: logger}
}

// Resolve returns the topic names related to query, in search ranking order,
// truncated to the configured limit. An empty search result yields an empty
// list and no error; downstream runners simply process zero topics.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]string, error) {
	titles, err := r.search.Search(ctx, query, r.limit)
	if err != nil {
		return nil, fmt.Errorf("resolve topics for %q: %w", query, err)
	}
	if len(titles) > r.limit {
		titles = titles[:r.limit]
	}
	r.logger.Info("resolved topics",
		zap.String("query", query),
		zap.Int("count", len(titles)),
	)
	return titles, nil
}
