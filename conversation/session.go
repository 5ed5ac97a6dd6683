package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/picolabs/pico/ai"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/retrieval"
)

const (
	// retrieveTopK is the evidence budget per turn.
	retrieveTopK = 3

	// DegradedReply is returned when evidence retrieval fails.
	DegradedReply = "I'm having trouble remembering right now. Give me a moment and ask again?"

	// FallbackReply is returned when reply generation fails.
	FallbackReply = "Let's talk about something else."
)

// Session drives one conversation. It owns its history exclusively and
// must not be shared across goroutines.
type Session struct {
	pipeline *retrieval.Pipeline
	chat     ai.ChatModel
	persona  *Persona
	history  *History
	window   int
	onChunk  func(chunk string)
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session) error

// WithPersona sets the persona. Default is DefaultPersona().
func WithPersona(persona *Persona) SessionOption {
	return func(s *Session) error {
		if persona == nil {
			return ErrInvalidPersona
		}
		if err := persona.Validate(); err != nil {
			return err
		}
		s.persona = persona
		return nil
	}
}

// WithHistoryWindow limits prompt assembly to the seed system turn plus
// the last n turns. Default is 0, meaning unbounded.
func WithHistoryWindow(n int) SessionOption {
	return func(s *Session) error {
		s.window = n
		return nil
	}
}

// WithChunkObserver registers a callback invoked for every streamed
// reply chunk, in arrival order. Used for live CLI output.
func WithChunkObserver(fn func(chunk string)) SessionOption {
	return func(s *Session) error {
		s.onChunk = fn
		return nil
	}
}

// WithSessionLogger sets a custom logger.
// Default is slog.Default().
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSession creates a session seeded with the persona system turn.
func NewSession(pipeline *retrieval.Pipeline, chat ai.ChatModel, opts ...SessionOption) (*Session, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if chat == nil {
		return nil, ErrChatRequired
	}

	s := &Session{
		pipeline: pipeline,
		chat:     chat,
		persona:  DefaultPersona(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.history = NewHistory(core.Turn{
		Role:    core.RoleSystem,
		Content: s.persona.SystemPrompt(),
	})
	return s, nil
}

// History returns a copy of the full conversation history.
func (s *Session) History() []core.Turn {
	return s.history.Turns()
}

// Persona returns the active persona.
func (s *Session) Persona() *Persona {
	return s.persona
}

// Turn processes one user input and returns the reply.
//
// The reply is always usable for display. When retrieval or generation
// fails the returned reply is a fixed degraded or fallback message, the
// history is left unchanged, and the underlying error is returned
// alongside it for logging.
func (s *Session) Turn(ctx context.Context, input string) (string, error) {
	evidence, err := s.pipeline.Retrieve(ctx, input, retrieveTopK)
	if err != nil {
		s.logger.Error("evidence retrieval failed", "err", err)
		return DegradedReply, err
	}

	// Direct-match bypass: a single evidence item that already contains
	// the question is returned verbatim, without invoking the model.
	if reply, ok := directMatch(input, evidence); ok {
		s.emit(reply)
		s.history.Append(core.Turn{Role: core.RoleAssistant, Content: reply})
		return reply, nil
	}

	instruction := s.persona.ContextInstruction(strings.Join(evidence, "\n"))
	messages := s.history.Window(s.window)
	messages = append(messages,
		core.Turn{Role: core.RoleSystem, Content: instruction},
		core.Turn{Role: core.RoleUser, Content: input},
	)

	reply, err := s.chat.StreamReply(ctx, messages, func(chunk string) error {
		s.emit(chunk)
		return nil
	})
	if err != nil {
		s.logger.Error("reply generation failed", "err", err)
		return FallbackReply, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	s.history.Append(core.Turn{Role: core.RoleUser, Content: input})
	s.history.Append(core.Turn{Role: core.RoleAssistant, Content: reply})
	return reply, nil
}

func (s *Session) emit(chunk string) {
	if s.onChunk != nil {
		s.onChunk(chunk)
	}
}

// directMatch reports whether the evidence answers the input on its
// own: exactly one item whose text contains the trimmed input,
// case-insensitively. The matched item is returned trimmed.
func directMatch(input string, evidence []string) (string, bool) {
	if len(evidence) != 1 {
		return "", false
	}
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}
	if !strings.Contains(strings.ToLower(evidence[0]), needle) {
		return "", false
	}
	return strings.TrimSpace(evidence[0]), true
}
