package mock

import "context"

// MockScorer is a test double for ai.RelevanceScorer.
// It allows custom behavior injection via function fields.
type MockScorer struct {
	// ScoreRelevanceFunc is called by ScoreRelevance if set.
	// If nil, uses default deterministic behavior.
	ScoreRelevanceFunc func(ctx context.Context, query, document string) (float32, error)

	callCount int
}

// NewMockScorer creates a mock scorer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockScorer().
func NewMockScorer() *MockScorer {
	return &MockScorer{}
}

// ScoreRelevance returns a deterministic score based on document length.
// Longer documents score higher, which gives tests a simple way to
// control rerank order without wiring a custom function.
func (m *MockScorer) ScoreRelevance(ctx context.Context, query, document string) (float32, error) {
	m.callCount++

	if m.ScoreRelevanceFunc != nil {
		return m.ScoreRelevanceFunc(ctx, query, document)
	}

	score := float32(len(document)%11) / 10.0
	return score, nil
}

// CallCount returns the number of times ScoreRelevance was called.
func (m *MockScorer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockScorer) Reset() {
	m.callCount = 0
	m.ScoreRelevanceFunc = nil
}
