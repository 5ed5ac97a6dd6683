package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"github.com/picolabs/pico/ai"
)

// Reranker orders candidate texts by relevance to a query and keeps the
// best keepTopK of them.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []string, keepTopK int) ([]string, error)
}

// NewReranker selects a reranker for the given scorer. A nil scorer
// yields the pass-through Disabled reranker.
func NewReranker(scorer ai.RelevanceScorer) Reranker {
	if scorer == nil {
		return Disabled{}
	}
	return &Enabled{
		scorer: scorer,
		logger: slog.Default().With("component", "reranker"),
	}
}

// Disabled is a pass-through reranker. It keeps the head of the
// candidate list in its existing order.
type Disabled struct{}

// Rerank returns the first keepTopK candidates unchanged.
func (Disabled) Rerank(_ context.Context, _ string, candidates []string, keepTopK int) ([]string, error) {
	return head(candidates, keepTopK), nil
}

// Enabled reranks candidates with a relevance scorer.
type Enabled struct {
	scorer ai.RelevanceScorer
	logger *slog.Logger
}

// Rerank scores every candidate against the query and returns the
// keepTopK highest scored, ties keeping their original order. When the
// candidate list already fits within keepTopK no scoring happens.
func (r *Enabled) Rerank(ctx context.Context, query string, candidates []string, keepTopK int) ([]string, error) {
	if len(candidates) <= keepTopK {
		return head(candidates, keepTopK), nil
	}

	scores := make([]float32, len(candidates))
	for i, candidate := range candidates {
		score, err := r.scorer.ScoreRelevance(ctx, query, candidate)
		if err != nil {
			r.logger.Warn("relevance scoring failed", "candidate", i, "err", err)
			return nil, err
		}
		scores[i] = score
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]string, 0, keepTopK)
	for _, idx := range order[:keepTopK] {
		out = append(out, candidates[idx])
	}
	return out, nil
}

func head(candidates []string, keepTopK int) []string {
	if keepTopK < 0 {
		keepTopK = 0
	}
	if len(candidates) > keepTopK {
		candidates = candidates[:keepTopK]
	}
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}
