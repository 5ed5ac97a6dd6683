package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picolabs/pico/ai/mock"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/storage"
	"github.com/picolabs/pico/storage/badger"
)

// fakeRepo is an in-memory EvidenceRepository with a configurable
// capability tier, used to exercise the write strategy selection.
type fakeRepo struct {
	tier storage.UpsertSupport
	docs map[core.ID]*core.Document

	upsertCalls int
	insertCalls int
	updateCalls int

	failWrites bool
}

func newFakeRepo(tier storage.UpsertSupport) *fakeRepo {
	return &fakeRepo{
		tier: tier,
		docs: make(map[core.ID]*core.Document),
	}
}

func (r *fakeRepo) UpsertDocuments(ctx context.Context, docs ...*core.Document) error {
	r.upsertCalls++
	if r.failWrites {
		return storage.ErrTransactionFailed
	}
	for _, doc := range docs {
		r.docs[doc.Id] = doc
	}
	return nil
}

func (r *fakeRepo) InsertDocuments(ctx context.Context, docs ...*core.Document) error {
	r.insertCalls++
	if r.failWrites {
		return storage.ErrTransactionFailed
	}
	for _, doc := range docs {
		if _, ok := r.docs[doc.Id]; ok {
			return storage.ErrDuplicateKey
		}
		r.docs[doc.Id] = doc
	}
	return nil
}

func (r *fakeRepo) UpdateDocuments(ctx context.Context, docs ...*core.Document) error {
	r.updateCalls++
	if r.failWrites {
		return storage.ErrTransactionFailed
	}
	for _, doc := range docs {
		if _, ok := r.docs[doc.Id]; !ok {
			return storage.ErrNotFound
		}
		r.docs[doc.Id] = doc
	}
	return nil
}

func (r *fakeRepo) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return doc, nil
}

func (r *fakeRepo) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	var out []*core.Document
	for _, id := range ids {
		if doc, ok := r.docs[id]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredDocument, error) {
	out := []*core.ScoredDocument{}
	for _, doc := range r.docs {
		if len(out) >= limit {
			break
		}
		out = append(out, &core.ScoredDocument{Document: doc, Score: 1.0})
	}
	return out, nil
}

func (r *fakeRepo) IterateDocuments(ctx context.Context, fn func(doc *core.Document) error) error {
	for _, doc := range r.docs {
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) CountDocuments(ctx context.Context) (int, error) {
	return len(r.docs), nil
}

func (r *fakeRepo) UpsertSupport() storage.UpsertSupport {
	return r.tier
}

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepo) Close() error {
	return nil
}

func newBadgerStore(t *testing.T) *Store {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return NewStore(repo, mock.NewMockEmbedder())
}

func TestQuery_EmptyStore(t *testing.T) {
	store := newBadgerStore(t)

	results, err := store.Query(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_ZeroTopK(t *testing.T) {
	store := newBadgerStore(t)

	results, err := store.Query(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsertThenQuery(t *testing.T) {
	store := newBadgerStore(t)
	ctx := context.Background()

	written, err := store.Upsert(ctx, []string{
		"The capital of France is Paris.",
		"Tokyo is the capital of Japan.",
	}, core.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	results, err := store.Query(ctx, "The capital of France is Paris.", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "The capital of France is Paris.", results[0].Document.Text)
}

func TestUpsert_Idempotent(t *testing.T) {
	store := newBadgerStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []string{"water boils at 100 degrees"}, core.SourceManual)
	require.NoError(t, err)

	// Whitespace-padded duplicate normalizes to the same content id.
	_, err = store.Upsert(ctx, []string{"  water boils at 100 degrees  "}, core.SourceWeb)
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Later write wins: metadata reflects the most recent upsert.
	doc, err := store.Add(ctx, "water boils at 100 degrees", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, core.SourceWeb, doc.Source)
}

func TestUpsert_DropsEmptyTexts(t *testing.T) {
	store := newBadgerStore(t)

	written, err := store.Upsert(context.Background(), []string{"", "   ", "\t"}, core.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
}

func TestAdd_EmptyText(t *testing.T) {
	store := newBadgerStore(t)

	_, err := store.Add(context.Background(), "   ", core.SourceManual)
	assert.ErrorIs(t, err, core.ErrEmptyText)
}

func TestQuery_EmbeddingFailure(t *testing.T) {
	repo := newFakeRepo(storage.UpsertNative)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("service unavailable")
	}
	store := NewStore(repo, embedder)

	_, err := store.Query(context.Background(), "query", 3)
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
}

func TestWriteStrategy_Native(t *testing.T) {
	repo := newFakeRepo(storage.UpsertNative)
	store := NewStore(repo, mock.NewMockEmbedder())

	written, err := store.Upsert(context.Background(), []string{"a fact", "another fact"}, core.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, 1, repo.upsertCalls)
	assert.Equal(t, 0, repo.insertCalls)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, storage.UpsertNative, store.Tier())
}

func TestWriteStrategy_Emulated(t *testing.T) {
	repo := newFakeRepo(storage.UpsertEmulated)
	store := NewStore(repo, mock.NewMockEmbedder())
	ctx := context.Background()

	// First write: update misses, insert lands.
	written, err := store.Upsert(ctx, []string{"a fact"}, core.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 1, repo.insertCalls)

	// Second write of the same text: update succeeds, no insert.
	written, err = store.Upsert(ctx, []string{"a fact"}, core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.Equal(t, 2, repo.updateCalls)
	assert.Equal(t, 1, repo.insertCalls)
	assert.Equal(t, 0, repo.upsertCalls)
	assert.Len(t, repo.docs, 1)
}

func TestWriteStrategy_InsertOnly(t *testing.T) {
	repo := newFakeRepo(storage.UpsertInsertOnly)
	store := NewStore(repo, mock.NewMockEmbedder())
	ctx := context.Background()

	written, err := store.Upsert(ctx, []string{"a fact"}, core.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Duplicate is skipped, first stored version is kept.
	written, err = store.Upsert(ctx, []string{"a fact"}, core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
	assert.Equal(t, 0, repo.upsertCalls)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Len(t, repo.docs, 1)

	for _, doc := range repo.docs {
		assert.Equal(t, core.SourceManual, doc.Source)
	}
}

func TestWriteStrategy_Failure(t *testing.T) {
	repo := newFakeRepo(storage.UpsertNative)
	repo.failWrites = true
	store := NewStore(repo, mock.NewMockEmbedder())

	_, err := store.Upsert(context.Background(), []string{"a fact"}, core.SourceManual)
	assert.ErrorIs(t, err, ErrWriteFailed)
}
