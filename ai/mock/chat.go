package mock

import (
	"context"
	"strings"

	"github.com/picolabs/pico/core"
)

// MockChat is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields and records
// the turns passed to each call so tests can assert on prompt shape
// or verify the model was never invoked.
type MockChat struct {
	// StreamReplyFunc is called by StreamReply if set.
	// If nil, uses default canned behavior.
	StreamReplyFunc func(ctx context.Context, turns []core.Turn, onChunk func(chunk string) error) (string, error)

	// Reply is the canned response used by the default behavior.
	// It is emitted word by word through onChunk.
	Reply string

	callCount int
	calls     [][]core.Turn
}

// NewMockChat creates a mock chat model with a canned reply.
// Note: Returns concrete type to allow test assertions via GetMockChat().
func NewMockChat() *MockChat {
	return &MockChat{Reply: "mock reply"}
}

// StreamReply returns the canned reply, delivering it as word-sized chunks.
func (m *MockChat) StreamReply(ctx context.Context, turns []core.Turn, onChunk func(chunk string) error) (string, error) {
	m.callCount++
	m.calls = append(m.calls, turns)

	if m.StreamReplyFunc != nil {
		return m.StreamReplyFunc(ctx, turns, onChunk)
	}

	// Default: stream the canned reply one word at a time to exercise
	// chunk handling in callers.
	words := strings.SplitAfter(m.Reply, " ")
	for _, w := range words {
		if onChunk != nil {
			if err := onChunk(w); err != nil {
				return "", err
			}
		}
	}
	return m.Reply, nil
}

// CallCount returns the number of times StreamReply was called.
func (m *MockChat) CallCount() int {
	return m.callCount
}

// LastTurns returns the turns from the most recent call, or nil if
// StreamReply was never called.
func (m *MockChat) LastTurns() []core.Turn {
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

// Reset clears recorded calls and injected behavior.
func (m *MockChat) Reset() {
	m.callCount = 0
	m.calls = nil
	m.StreamReplyFunc = nil
	m.Reply = "mock reply"
}
