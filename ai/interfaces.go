package ai

import (
	"context"

	"github.com/picolabs/pico/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel generates a streamed reply from an ordered list of turns.
type ChatModel interface {
	// StreamReply submits the turns and consumes the reply stream.
	// onChunk is called once per chunk, strictly in arrival order, and may
	// be nil. The returned reply is the concatenation of all chunks.
	// The stream is finite and one-shot per call; it is not restartable.
	StreamReply(ctx context.Context, turns []core.Turn, onChunk func(chunk string) error) (string, error)
}

// RelevanceScorer scores a (query, document) pair jointly for relevance.
// More precise than independent vector similarity, so it is applied only
// to small candidate sets.
type RelevanceScorer interface {
	// ScoreRelevance returns a relevance score in [0, 1] for how well the
	// document answers the query.
	ScoreRelevance(ctx context.Context, query, document string) (float32, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Chat returns the streamed chat generation service.
	Chat() ChatModel

	// Scorer returns the pairwise relevance scoring service, or nil when
	// the provider has no scoring model configured. Callers select the
	// reranker variant at construction time based on this.
	Scorer() RelevanceScorer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
