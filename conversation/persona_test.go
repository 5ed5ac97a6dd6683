package conversation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPersona(t *testing.T) {
	p := DefaultPersona()
	require.NoError(t, p.Validate())
	assert.Equal(t, "Pico", p.Name)
	assert.Equal(t, 80, p.MaxReplyTokens)
}

func TestSystemPrompt(t *testing.T) {
	p := DefaultPersona()
	prompt := p.SystemPrompt()

	assert.True(t, strings.HasPrefix(prompt, "You are Pico, a friendly AI companion."))
	assert.Contains(t, prompt, "1. Natural follow-up questions")
	assert.Contains(t, prompt, "2. Occasional humor when appropriate")
}

func TestContextInstruction(t *testing.T) {
	p := DefaultPersona()

	withContext := p.ContextInstruction("Tokyo is the capital of Japan.")
	assert.Contains(t, withContext, "use ONLY that")
	assert.Contains(t, withContext, "Context:\nTokyo is the capital of Japan.")

	empty := p.ContextInstruction("")
	assert.Contains(t, empty, "If the context is empty")
	assert.True(t, strings.HasSuffix(empty, "Context:\n"))
}

func TestLoadPersona(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	content := `version: 2
name: Ada
policy:
  - Be precise
context_rule:
  - Use the context first.
max_reply_tokens: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadPersona(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Version)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"Be precise"}, p.Policy)
	assert.Equal(t, 120, p.MaxReplyTokens)
}

func TestLoadPersona_DefaultsPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ada\n"), 0o644))

	p, err := LoadPersona(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, 80, p.MaxReplyTokens)
}

func TestLoadPersona_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: \"\"\n"), 0o644))

	_, err := LoadPersona(path)
	assert.ErrorIs(t, err, ErrInvalidPersona)
}

func TestLoadPersona_MissingFile(t *testing.T) {
	_, err := LoadPersona(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
