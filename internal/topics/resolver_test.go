package topics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSearcher struct {
	titles   []string
	err      error
	gotQuery string
	gotLimit int
}

func (s *stubSearcher) Search(_ context.Context, query string, limit int) ([]string, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.titles, s.err
}

func TestResolverReturnsTitlesInOrder(t *testing.T) {
	t.Parallel()

	search := &stubSearcher{titles: []string{"A", "B", "C"}}
	r := NewResolver(search, 5, zap.NewNop())

	got, err := r.Resolve(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Equal(t, "query", search.gotQuery)
	assert.Equal(t, 5, search.gotLimit)
}

func TestResolverTruncatesToLimit(t *testing.T) {
	t.Parallel()

	search := &stubSearcher{titles: []string{"A", "B", "C", "D"}}
	r := NewResolver(search, 2, zap.NewNop())

	got, err := r.Resolve(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestResolverEmptyResultIsNotFatal(t *testing.T) {
	t.Parallel()

	r := NewResolver(&stubSearcher{}, 5, zap.NewNop())

	got, err := r.Resolve(context.Background(), "no such thing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolverWrapsSearchErrors(t *testing.T) {
	t.Parallel()

	search := &stubSearcher{err: errors.New("api down")}
	r := NewResolver(search, 5, zap.NewNop())

	_, err := r.Resolve(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve topics")
	assert.Contains(t, err.Error(), "api down")
}
