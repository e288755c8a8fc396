package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/config"
	"github.com/wikigrab/wikiref/internal/results"
	"github.com/wikigrab/wikiref/internal/wiki"
)

// stubProvider implements both the search and page-fetch capabilities.
type stubProvider struct {
	titles    []string
	searchErr error
	pages     map[string]wiki.Page
	pageErrs  map[string]error
}

func (s *stubProvider) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return s.titles, s.searchErr
}

func (s *stubProvider) FetchPage(_ context.Context, title string, _ bool) (wiki.Page, error) {
	if err, ok := s.pageErrs[title]; ok {
		return wiki.Page{}, err
	}
	return s.pages[title], nil
}

func testConfig(t *testing.T, mode config.Mode) config.Config {
	t.Helper()
	return config.Config{
		Query:       "generative artificial intelligence",
		OutputDir:   filepath.Join(t.TempDir(), "out"),
		Mode:        mode,
		MaxWorkers:  3,
		SearchLimit: 10,
		HTTP:        config.HTTPConfig{Timeout: time.Second},
	}
}

func readOutput(t *testing.T, cfg config.Config) []results.Outcome {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, results.OutputFileName))
	require.NoError(t, err)
	var out []results.Outcome
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestPipelineBothModes(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		titles: []string{"A", "B", "C"},
		pages: map[string]wiki.Page{
			"A": {Title: "A", References: []string{"https://a.example"}},
			"B": {Title: "B", References: nil},
			"C": {Title: "C", References: []string{"https://c.example"}},
		},
	}
	cfg := testConfig(t, config.ModeBoth)
	p := New(cfg, provider, provider, zap.NewNop())
	require.NoError(t, p.Run(context.Background()))

	out := readOutput(t, cfg)
	// Sequential block then concurrent block: twice the topic count.
	require.Len(t, out, 6)

	// The sequential block preserves input order.
	assert.Equal(t, "A", out[0].Topic)
	assert.Equal(t, "B", out[1].Topic)
	assert.Equal(t, "C", out[2].Topic)

	for _, outcome := range out {
		assert.Equal(t, results.StatusSuccess, outcome.Status)
	}
}

func TestPipelineSequentialNotFound(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		titles:   []string{"Nonexistent Topic XYZ123"},
		pageErrs: map[string]error{"Nonexistent Topic XYZ123": &wiki.PageError{Title: "Nonexistent Topic XYZ123"}},
	}
	cfg := testConfig(t, config.ModeSequential)
	p := New(cfg, provider, provider, zap.NewNop())
	require.NoError(t, p.Run(context.Background()))

	out := readOutput(t, cfg)
	require.Len(t, out, 1)
	assert.Equal(t, "Nonexistent Topic XYZ123", out[0].Topic)
	assert.Equal(t, results.StatusError, out[0].Status)
	assert.NotEmpty(t, out[0].Err)
	assert.Nil(t, out[0].References)
}

func TestPipelinePartialSuccess(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		titles: []string{"Good", "Bad"},
		pages: map[string]wiki.Page{
			"Good": {Title: "Good", References: []string{"https://good.example"}},
		},
		pageErrs: map[string]error{"Bad": errors.New("network down")},
	}
	cfg := testConfig(t, config.ModeConcurrent)
	p := New(cfg, provider, provider, zap.NewNop())
	require.NoError(t, p.Run(context.Background()))

	out := readOutput(t, cfg)
	require.Len(t, out, 2)
	statuses := map[string]results.Status{}
	for _, outcome := range out {
		statuses[outcome.Topic] = outcome.Status
	}
	assert.Equal(t, results.StatusSuccess, statuses["Good"])
	assert.Equal(t, results.StatusError, statuses["Bad"])
}

func TestPipelineEmptySearchWritesEmptyFile(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	cfg := testConfig(t, config.ModeBoth)
	p := New(cfg, provider, provider, zap.NewNop())
	require.NoError(t, p.Run(context.Background()))

	assert.Empty(t, readOutput(t, cfg))
}

func TestPipelineSearchFailureIsFatal(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{searchErr: errors.New("api down")}
	cfg := testConfig(t, config.ModeBoth)
	p := New(cfg, provider, provider, zap.NewNop())

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve topics")
}
