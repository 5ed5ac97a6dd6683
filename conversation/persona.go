package conversation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is the versioned personality configuration of the agent. It
// controls the seed system prompt and the per-turn context instruction.
type Persona struct {
	Version int    `yaml:"version"`
	Name    string `yaml:"name"`

	// Policy lines become the numbered behavior rules of the system prompt.
	Policy []string `yaml:"policy"`

	// ContextRule lines state how retrieved context must be used. They
	// are prepended to the context block on every generated turn.
	ContextRule []string `yaml:"context_rule"`

	// MaxReplyTokens bounds the length of generated replies.
	MaxReplyTokens int `yaml:"max_reply_tokens"`
}

// DefaultPersona returns the built-in companion persona.
func DefaultPersona() *Persona {
	return &Persona{
		Version: 1,
		Name:    "Pico",
		Policy: []string{
			"Natural follow-up questions",
			"Occasional humor when appropriate",
			"Concise but thoughtful answers",
			"Context awareness from previous messages",
			"If something is not in your knowledge base, say so politely and invite the user to share more",
		},
		ContextRule: []string{
			"If the context contains an answer, use ONLY that.",
			"Do not add unrelated information. Do not guess.",
			"Always prioritize the context over your own knowledge.",
			"If the context is empty, you may answer from general knowledge.",
		},
		MaxReplyTokens: 80,
	}
}

// LoadPersona reads a persona from a YAML file.
func LoadPersona(path string) (*Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}

	persona := DefaultPersona()
	if err := yaml.Unmarshal(data, persona); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPersona, err)
	}
	if err := persona.Validate(); err != nil {
		return nil, err
	}
	return persona, nil
}

// Validate checks the persona is usable.
func (p *Persona) Validate() error {
	if p.Version < 1 {
		return fmt.Errorf("%w: version must be at least 1", ErrInvalidPersona)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPersona)
	}
	if p.MaxReplyTokens <= 0 {
		return fmt.Errorf("%w: max_reply_tokens must be positive", ErrInvalidPersona)
	}
	return nil
}

// SystemPrompt renders the persona's seed system turn.
func (p *Persona) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a friendly AI companion.\n", p.Name)
	b.WriteString("Respond conversationally with:\n")
	for i, rule := range p.Policy {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ContextInstruction renders the per-turn system instruction carrying
// the retrieved context block. An empty block still renders, telling
// the model it may answer from general knowledge.
func (p *Persona) ContextInstruction(contextBlock string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a friendly AI companion.\n", p.Name)
	b.WriteString("IMPORTANT RULES:\n")
	for _, rule := range p.ContextRule {
		b.WriteString(rule)
		b.WriteString("\n")
	}
	b.WriteString("\nContext:\n")
	b.WriteString(contextBlock)
	return b.String()
}
