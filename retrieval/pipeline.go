package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/evidence"
	"github.com/picolabs/pico/websearch"
)

const (
	// localFetchFloor is the minimum number of local candidates fetched,
	// giving the reranker something to choose from even for small finalK.
	localFetchFloor = 8

	// webMaxResults bounds the web fallback.
	webMaxResults = 6
)

// Pipeline retrieves evidence for a query: local store first, web
// fallback on shortfall, dedupe, then rerank down to the requested size.
type Pipeline struct {
	store    *evidence.Store
	web      websearch.Provider
	reranker Reranker
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithWebFallback sets the web search provider used when local
// retrieval comes up short. Without one the pipeline is local-only.
func WithWebFallback(web websearch.Provider) Option {
	return func(p *Pipeline) error {
		p.web = web
		return nil
	}
}

// WithReranker sets the reranker applied to the candidate list.
// Default is the pass-through Disabled reranker.
func WithReranker(reranker Reranker) Option {
	return func(p *Pipeline) error {
		if reranker == nil {
			reranker = Disabled{}
		}
		p.reranker = reranker
		return nil
	}
}

// NewPipeline creates a retrieval pipeline over the given evidence store.
func NewPipeline(store *evidence.Store, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	p := &Pipeline{
		store:    store,
		reranker: Disabled{},
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Retrieve returns up to finalK evidence texts relevant to the query.
func (p *Pipeline) Retrieve(ctx context.Context, query string, finalK int) ([]string, error) {
	return p.RetrieveWithMonitor(ctx, query, finalK, nil)
}

// RetrieveWithMonitor retrieves evidence with monitoring. The monitor
// receives callbacks at each stage of the retrieval process.
//
// Only a local store failure returns an error. Web fallback and
// reranking failures degrade the result for this call: the web step is
// skipped, the rerank step falls back to head order.
func (p *Pipeline) RetrieveWithMonitor(ctx context.Context, query string, finalK int, monitor RetrievalMonitor) ([]string, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if finalK <= 0 {
		monitor.Finish(nil)
		return []string{}, nil
	}

	// 1. Local semantic search. Fetch generously so dedupe and rerank
	// have candidates to work with.
	fetchK := localFetchFloor
	if finalK > fetchK {
		fetchK = finalK
	}
	scored, err := p.store.Query(ctx, query, fetchK)
	if err != nil {
		p.logger.Error("local retrieval failed", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}

	candidates := make([]string, 0, len(scored))
	for _, hit := range scored {
		candidates = append(candidates, hit.Document.Text)
	}
	monitor.AfterLocalSearch(candidates)

	// 2. Web fallback on shortfall. Results are cached back into the
	// store so the next query finds them locally.
	if len(candidates) < finalK {
		monitor.WebFallbackTriggered(len(candidates))
		snippets := p.searchWeb(ctx, query)
		monitor.AfterWebSearch(snippets)

		if len(snippets) > 0 {
			if _, err := p.store.Upsert(ctx, snippets, core.SourceWeb); err != nil {
				p.logger.Warn("failed to cache web results", "err", err)
			}
			candidates = append(candidates, snippets...)
		}
	}

	// 3. Dedupe by content identity, first occurrence wins.
	candidates = DedupePreserveOrder(candidates)
	monitor.AfterDedupe(candidates)

	// 4. Final cut.
	results, err := p.reranker.Rerank(ctx, query, candidates, finalK)
	if err != nil {
		p.logger.Warn("reranking failed, keeping retrieval order", "err", err)
		results = head(candidates, finalK)
	}

	monitor.Finish(results)
	return results, nil
}

func (p *Pipeline) searchWeb(ctx context.Context, query string) []string {
	if p.web == nil {
		return nil
	}

	results, err := p.web.Search(ctx, query, webMaxResults)
	if err != nil {
		p.logger.Warn("web fallback failed", "query", query, "err", err)
		return nil
	}

	snippets := make([]string, 0, len(results))
	for _, result := range results {
		if snippet := result.Snippet(); snippet != "" {
			snippets = append(snippets, snippet)
		}
	}
	return snippets
}
