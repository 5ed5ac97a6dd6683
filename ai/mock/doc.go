// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ChatModel,
// ai.RelevanceScorer, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockChat := mock.NewMockChat()
//	mockChat.StreamReplyFunc = func(ctx context.Context, turns []core.Turn, onChunk func(string) error) (string, error) {
//	    return "", errors.New("model offline")
//	}
//
//	// Check call counts
//	count := mockChat.CallCount()
package mock
