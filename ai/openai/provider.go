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


package openai

import (
	"log/slog"

	"github.com/picolabs/pico/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// It manages embedder, chat, and scorer instances.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	chat     *Chat
	scorer   *Scorer
	logger   *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use. The relevance scorer
// is only constructed when a scorer model is configured.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create embedder (using internal constructor for concrete type)
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	// Create chat model (using internal constructor for concrete type)
	chat, err := newChat(config)
	if err != nil {
		return nil, err
	}

	// The scorer is optional. Without a scorer model the provider reports
	// no scoring capability and callers skip reranking.
	var scorer *Scorer
	if config.ScorerModel != "" {
		scorer, err = newScorer(config)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		chat:     chat,
		scorer:   scorer,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Chat returns the conversational model service.
func (p *Provider) Chat() ai.ChatModel {
	return p.chat
}

// Scorer returns the relevance scoring service, or nil when no scorer
// model is configured.
func (p *Provider) Scorer() ai.RelevanceScorer {
	if p.scorer == nil {
		return nil
	}
	return p.scorer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
