package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/picolabs/pico/ai"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/storage"
)

// Store is the text-level interface to the semantic document store.
// It embeds incoming text and delegates persistence to an
// EvidenceRepository.
type Store struct {
	repo     storage.EvidenceRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewStore creates a store backed by the given repository and embedder.
func NewStore(repo storage.EvidenceRepository, embedder ai.Embedder) *Store {
	return &Store{
		repo:     repo,
		embedder: embedder,
		logger:   slog.Default().With("component", "evidence-store"),
	}
}

// Tier reports the upsert capability tier of the underlying repository.
func (s *Store) Tier() storage.UpsertSupport {
	return s.repo.UpsertSupport()
}

// Query embeds text and returns up to topK documents ranked by vector
// similarity. An empty store yields an empty result, not an error.
func (s *Store) Query(ctx context.Context, text string, topK int) ([]*core.ScoredDocument, error) {
	if topK <= 0 {
		return []*core.ScoredDocument{}, nil
	}

	vector, err := s.embedder.EmbedText(ctx, core.Normalize(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	results, err := s.repo.FindSimilar(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return results, nil
}

// Upsert normalizes, embeds, and stores a batch of texts under the given
// source. Empty texts are dropped. Returns the number of documents
// written. Writing the same text twice stores one document; the later
// write refreshes its metadata when the repository supports updates.
func (s *Store) Upsert(ctx context.Context, texts []string, source core.Source) (int, error) {
	docs := make([]*core.Document, 0, len(texts))
	for _, text := range texts {
		text = core.Normalize(text)
		if text == "" {
			continue
		}
		docs = append(docs, core.NewDocument(text, source))
	}
	if len(docs) == 0 {
		return 0, nil
	}

	if err := s.embedDocuments(ctx, docs); err != nil {
		return 0, err
	}
	return s.writeDocuments(ctx, docs)
}

// Add stores a single text and returns the persisted document.
func (s *Store) Add(ctx context.Context, text string, source core.Source) (*core.Document, error) {
	text = core.Normalize(text)
	if text == "" {
		return nil, core.ErrEmptyText
	}

	docs := []*core.Document{core.NewDocument(text, source)}
	if err := s.embedDocuments(ctx, docs); err != nil {
		return nil, err
	}
	if _, err := s.writeDocuments(ctx, docs); err != nil {
		return nil, err
	}
	return docs[0], nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.repo.CountDocuments(ctx)
}

func (s *Store) embedDocuments(ctx context.Context, docs []*core.Document) error {
	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbeddingFailed, len(docs), len(vectors))
	}

	now := time.Now()
	for i, doc := range docs {
		doc.Vector = vectors[i]
		doc.AddedAt = now
	}
	return nil
}

// writeDocuments persists docs using the strongest write strategy the
// repository supports.
func (s *Store) writeDocuments(ctx context.Context, docs []*core.Document) (int, error) {
	tier := s.repo.UpsertSupport()
	s.logger.Debug("writing documents", "count", len(docs), "tier", tier.String())

	switch tier {
	case storage.UpsertNative:
		if err := s.repo.UpsertDocuments(ctx, docs...); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		return len(docs), nil

	case storage.UpsertEmulated:
		written := 0
		for _, doc := range docs {
			err := s.repo.UpdateDocuments(ctx, doc)
			if errors.Is(err, storage.ErrNotFound) {
				err = s.repo.InsertDocuments(ctx, doc)
			}
			if err != nil {
				return written, fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
			written++
		}
		return written, nil

	default:
		// Insert-only backends keep the first stored version of a
		// document. Duplicates are skipped, not failed.
		written := 0
		for _, doc := range docs {
			err := s.repo.InsertDocuments(ctx, doc)
			if errors.Is(err, storage.ErrDuplicateKey) {
				s.logger.Debug("skipping existing document", "id", doc.Id.String())
				continue
			}
			if err != nil {
				return written, fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
			written++
		}
		return written, nil
	}
}
