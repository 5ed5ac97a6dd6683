package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/picolabs/pico/ai"
	"github.com/picolabs/pico/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Chat implements ai.ChatModel using OpenAI-compatible chat APIs.
type Chat struct {
	client    llms.Model
	maxTokens int
	logger    *slog.Logger
}

// newChat is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChat(config *ai.Config) (*Chat, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Chat{
		client:    client,
		maxTokens: config.MaxReplyTokens,
		logger:    slog.Default().With("component", "openai-chat"),
	}, nil
}

// NewChat creates a new streamed chat model using the provided configuration.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChat(config *ai.Config) (ai.ChatModel, error) {
	return newChat(config)
}

// StreamReply submits the turns and consumes the reply stream in arrival
// order. The reply is the concatenation of all streamed chunks.
func (c *Chat) StreamReply(ctx context.Context, turns []core.Turn, onChunk func(chunk string) error) (string, error) {
	content := make([]llms.MessageContent, 0, len(turns))
	for _, turn := range turns {
		content = append(content, llms.MessageContent{
			Role: chatRole(turn.Role),
			Parts: []llms.ContentPart{
				llms.TextPart(turn.Content),
			},
		})
	}

	var reply strings.Builder
	_, err := c.client.GenerateContent(ctx, content,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			reply.Write(chunk)
			if onChunk != nil {
				return onChunk(string(chunk))
			}
			return nil
		}),
	)
	if err != nil {
		c.logger.Error("chat generation failed", "err", err)
		return "", err
	}

	return reply.String(), nil
}

// chatRole maps a conversation role onto the langchaingo message type.
func chatRole(role core.Role) llms.ChatMessageType {
	switch role {
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
