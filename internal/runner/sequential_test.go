package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wikigrab/wikiref/internal/results"
)

func echoFetch(_ context.Context, topic string) results.Outcome {
	return results.Success(topic, topic, nil)
}

func TestSequentialPreservesInputOrder(t *testing.T) {
	t.Parallel()

	topics := []string{"C", "A", "B"}
	s := NewSequential(echoFetch, zap.NewNop())

	out := s.Run(context.Background(), topics)
	require.Len(t, out, len(topics))
	for i, topic := range topics {
		assert.Equal(t, topic, out[i].Topic)
	}
}

func TestSequentialProcessesDuplicatesIndependently(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(_ context.Context, topic string) results.Outcome {
		calls++
		return results.Success(topic, topic, nil)
	}
	s := NewSequential(fetch, zap.NewNop())

	out := s.Run(context.Background(), []string{"A", "A", "A"})
	assert.Len(t, out, 3)
	assert.Equal(t, 3, calls)
}

func TestSequentialEmptyTopics(t *testing.T) {
	t.Parallel()

	s := NewSequential(echoFetch, zap.NewNop())
	assert.Empty(t, s.Run(context.Background(), nil))
}
