// Package fetch converts page lookups into per-topic outcome records.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/results"
	"github.com/wikigrab/wikiref/internal/wiki"
)

// Fetcher performs the remote lookup for one topic and normalizes the result.
type Fetcher struct {
	pages  wiki.PageFetcher
	logger *zap.Logger
}

// New constructs a Fetcher backed by the given page-fetch capability.
func New(pages wiki.PageFetcher, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{pages: pages, logger: logger}
}

// Fetch looks up topic with auto-suggestion disabled, so failures stay
// attributable to the literal topic string. Every call returns exactly one
// Outcome: classified provider errors become error records and are never
// propagated to the caller.
func (f *Fetcher) Fetch(ctx context.Context, topic string) results.Outcome {
	page, err := f.pages.FetchPage(ctx, topic, false)
	if err != nil {
		f.logger.Warn("topic failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return results.Failure(topic, classify(topic, err))
	}

	f.logger.Info("topic processed",
		zap.String("topic", topic),
		zap.String("page_title", page.Title),
		zap.Int("references", len(page.References)),
	)
	return results.Success(topic, page.Title, page.References)
}

// classify maps the closed provider error taxonomy to a human-readable
// message naming the failure kind and the original topic.
func classify(topic string, err error) string {
	var pageErr *wiki.PageError
	var disErr *wiki.DisambiguationError
	switch {
	case errors.As(err, &pageErr):
		return fmt.Sprintf("page not found: %q", topic)
	case errors.As(err, &disErr):
		return fmt.Sprintf("ambiguous title %q: options are %s", topic, strings.Join(disErr.Options, ", "))
	default:
		return fmt.Sprintf("unexpected failure fetching %q: %v", topic, err)
	}
}
