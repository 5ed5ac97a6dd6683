package reindex

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picolabs/pico/ai/mock"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/evidence"
	"github.com/picolabs/pico/storage"
	"github.com/picolabs/pico/storage/badger"
)

func setupRepo(t *testing.T, texts ...string) storage.EvidenceRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	if len(texts) > 0 {
		store := evidence.NewStore(repo, mock.NewMockEmbedder())
		_, err = store.Upsert(context.Background(), texts, core.SourceManual)
		require.NoError(t, err)
	}
	return repo
}

func TestReindexer_Run(t *testing.T) {
	repo := setupRepo(t, "fact one", "fact two", "fact three")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{9.0, 9.0, 9.0}
		}
		return out, nil
	}

	var progress bytes.Buffer
	r := NewReindexer(repo, embedder, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}, &progress)

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, progress.String(), "Starting reindex of 3 documents")
	assert.Contains(t, progress.String(), "Reindex complete")

	// Every document now carries the new vector.
	err := repo.IterateDocuments(context.Background(), func(doc *core.Document) error {
		assert.Equal(t, []float32{9.0, 9.0, 9.0}, doc.Vector)
		return nil
	})
	require.NoError(t, err)
}

func TestReindexer_EmptyStore(t *testing.T) {
	repo := setupRepo(t)

	var progress bytes.Buffer
	r := NewReindexer(repo, mock.NewMockEmbedder(), nil, &progress)

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, progress.String(), "No documents found")
}

func TestReindexer_EmbeddingFailure(t *testing.T) {
	repo := setupRepo(t, "a fact")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedder offline")
	}

	var progress bytes.Buffer
	r := NewReindexer(repo, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &progress)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedder offline")
}

func TestReindexer_RetriesTransientFailure(t *testing.T) {
	repo := setupRepo(t, "a fact")

	attempts := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("temporary error")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1.0}
		}
		return out, nil
	}

	var progress bytes.Buffer
	r := NewReindexer(repo, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}, &progress)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, attempts)
}

func TestDocumentIterator_Batches(t *testing.T) {
	repo := setupRepo(t, "one", "two", "three", "four", "five")

	it := NewDocumentIterator(repo, 2)
	var sizes []int
	err := it.ForEach(context.Background(), func(docs []*core.Document) error {
		sizes = append(sizes, len(docs))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestDocumentIterator_StopsOnError(t *testing.T) {
	repo := setupRepo(t, "one", "two", "three")

	wantErr := errors.New("stop")
	it := NewDocumentIterator(repo, 1)
	calls := 0
	err := it.ForEach(context.Background(), func(docs []*core.Document) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}
