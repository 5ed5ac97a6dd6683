package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picolabs/pico/ai/mock"
)

func TestDisabled_KeepsHeadOrder(t *testing.T) {
	r := Disabled{}

	out, err := r.Rerank(context.Background(), "query", []string{"a", "b", "c", "d"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDisabled_FewerThanK(t *testing.T) {
	r := Disabled{}

	out, err := r.Rerank(context.Background(), "query", []string{"a"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)
}

func TestNewReranker_NilScorer(t *testing.T) {
	r := NewReranker(nil)
	assert.IsType(t, Disabled{}, r)
}

func TestEnabled_PassthroughWithinBudget(t *testing.T) {
	scorer := mock.NewMockScorer()
	r := NewReranker(scorer)

	out, err := r.Rerank(context.Background(), "query", []string{"b", "a"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, out)
	assert.Equal(t, 0, scorer.CallCount(), "no scoring when candidates fit the budget")
}

func TestEnabled_SortsByScore(t *testing.T) {
	scorer := mock.NewMockScorer()
	scorer.ScoreRelevanceFunc = func(ctx context.Context, query, document string) (float32, error) {
		switch document {
		case "best":
			return 0.9, nil
		case "good":
			return 0.5, nil
		default:
			return 0.1, nil
		}
	}
	r := NewReranker(scorer)

	out, err := r.Rerank(context.Background(), "query", []string{"poor", "good", "best"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"best", "good"}, out)
}

func TestEnabled_StableOnTies(t *testing.T) {
	scorer := mock.NewMockScorer()
	scorer.ScoreRelevanceFunc = func(ctx context.Context, query, document string) (float32, error) {
		return 0.5, nil
	}
	r := NewReranker(scorer)

	out, err := r.Rerank(context.Background(), "query", []string{"a", "b", "c", "d"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestEnabled_EmptyCandidates(t *testing.T) {
	r := NewReranker(mock.NewMockScorer())

	out, err := r.Rerank(context.Background(), "query", []string{}, 3)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEnabled_ScorerError(t *testing.T) {
	scorer := mock.NewMockScorer()
	scorer.ScoreRelevanceFunc = func(ctx context.Context, query, document string) (float32, error) {
		return 0, errors.New("model offline")
	}
	r := NewReranker(scorer)

	_, err := r.Rerank(context.Background(), "query", []string{"a", "b", "c", "d"}, 2)
	assert.Error(t, err)
}
