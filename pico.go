// Copyright 2025 Pico Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pico

import (
	"io"
	"log/slog"

	"github.com/picolabs/pico/ai"
	"github.com/picolabs/pico/ai/openai"
	"github.com/picolabs/pico/conversation"
	"github.com/picolabs/pico/evidence"
	"github.com/picolabs/pico/ingestion"
	"github.com/picolabs/pico/reindex"
	"github.com/picolabs/pico/retrieval"
	"github.com/picolabs/pico/storage"
	"github.com/picolabs/pico/storage/badger"
	"github.com/picolabs/pico/websearch"
)

// Engine bundles the storage backend, evidence store, and AI provider
// of one agent instance, and builds the pipelines and sessions that
// run on top of them.
type Engine struct {
	backend  *badger.Backend
	repo     storage.EvidenceRepository
	provider ai.AIProvider
	store    *evidence.Store
	persona  *conversation.Persona
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	persona  *conversation.Persona
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider, bypassing the
// OpenAI-compatible default. Used by tests.
func WithAIProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithEnginePersona sets the persona used by sessions created through
// this engine. Default is conversation.DefaultPersona().
func WithEnginePersona(persona *conversation.Persona) EngineOption {
	return func(o *engineOptions) {
		o.persona = persona
	}
}

// WithInMemory opens the storage backend in memory, without a data
// directory. Used by tests and throwaway sessions.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// Open creates an engine over the database at filePath.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		persona:  conversation.DefaultPersona(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo := badger.NewEvidenceRepository(backend)

	// Create AI provider unless one was injected. The persona bounds
	// reply length, so it feeds the chat configuration.
	provider := options.provider
	if provider == nil {
		config := options.aiConfig
		if options.persona.MaxReplyTokens > 0 {
			bounded := *config
			bounded.MaxReplyTokens = options.persona.MaxReplyTokens
			config = &bounded
		}
		provider, err = openai.NewProvider(config)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:  backend,
		repo:     repo,
		provider: provider,
		store:    evidence.NewStore(repo, provider.Embedder()),
		persona:  options.persona,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Store returns the evidence store.
func (e *Engine) Store() *evidence.Store {
	return e.store
}

// Repository returns the underlying evidence repository.
func (e *Engine) Repository() storage.EvidenceRepository {
	return e.repo
}

// NewPipeline builds a retrieval pipeline with the web fallback and
// reranker wired in. Options may override either.
func (e *Engine) NewPipeline(opts ...retrieval.Option) (*retrieval.Pipeline, error) {
	base := []retrieval.Option{
		retrieval.WithWebFallback(websearch.NewDuckDuckGo()),
		retrieval.WithReranker(retrieval.NewReranker(e.provider.Scorer())),
	}
	return retrieval.NewPipeline(e.store, append(base, opts...)...)
}

// NewSession builds a conversation session over a fresh pipeline.
func (e *Engine) NewSession(opts ...conversation.SessionOption) (*conversation.Session, error) {
	pipeline, err := e.NewPipeline()
	if err != nil {
		return nil, err
	}
	base := []conversation.SessionOption{conversation.WithPersona(e.persona)}
	return conversation.NewSession(pipeline, e.provider.Chat(), append(base, opts...)...)
}

// NewLoader builds a bulk ingestion loader over the evidence store.
func (e *Engine) NewLoader(opts ...ingestion.Option) (*ingestion.Loader, error) {
	return ingestion.NewLoader(e.store, opts...)
}

// NewReindexer builds a reindexer that re-embeds every stored document.
func (e *Engine) NewReindexer(config *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(e.repo, e.provider.Embedder(), config, progress)
}
