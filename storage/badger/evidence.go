package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/storage"
)

// EvidenceRepository implements storage.EvidenceRepository for BadgerDB.
type EvidenceRepository struct {
	backend *Backend
}

var _ storage.EvidenceRepository = (*EvidenceRepository)(nil)

// NewEvidenceRepository creates a new EvidenceRepository.
func NewEvidenceRepository(backend *Backend) *EvidenceRepository {
	return &EvidenceRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *EvidenceRepository) Close() error {
	return nil
}

// UpsertSupport reports that BadgerDB overwrites by key natively.
func (r *EvidenceRepository) UpsertSupport() storage.UpsertSupport {
	return storage.UpsertNative
}

// FindSimilar delegates to the backend.
func (r *EvidenceRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredDocument, error) {
	return r.backend.FindSimilar(ctx, vector, limit)
}

// WithTransaction delegates to the backend.
func (r *EvidenceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertDocuments writes documents keyed by content ID, overwriting any
// existing value. Sets AddedAt if not already stamped.
func (r *EvidenceRepository) UpsertDocuments(ctx context.Context, docs ...*core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if doc.AddedAt.IsZero() {
				doc.AddedAt = time.Now().UTC()
			}
			key := makeDocumentKey(doc.Id)
			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// InsertDocuments adds new documents, failing on existing ids.
func (r *EvidenceRepository) InsertDocuments(ctx context.Context, docs ...*core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			key := makeDocumentKey(doc.Id)
			existing, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return storage.ErrDuplicateKey
			}
			if doc.AddedAt.IsZero() {
				doc.AddedAt = time.Now().UTC()
			}
			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// UpdateDocuments replaces existing documents.
func (r *EvidenceRepository) UpdateDocuments(ctx context.Context, docs ...*core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			key := makeDocumentKey(doc.Id)
			existing, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if existing == nil {
				return storage.ErrNotFound
			}
			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by ID.
func (r *EvidenceRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocuments retrieves multiple documents by their IDs.
func (r *EvidenceRepository) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	var result []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			doc, err := r.readDocument(tx, makeDocumentKey(id))
			if err != nil {
				return err
			}
			if doc != nil {
				result = append(result, doc)
			}
		}
		return nil
	}, false)
	return result, err
}

// IterateDocuments calls fn for every stored document in key order.
func (r *EvidenceRepository) IterateDocuments(ctx context.Context, fn func(doc *core.Document) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc == nil {
				continue
			}
			if err := fn(doc); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountDocuments returns the number of stored documents.
func (r *EvidenceRepository) CountDocuments(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), []byte(documentPrefix)) {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// readDocument reads a document from the transaction.
// Returns nil (no error) when the key does not exist.
func (r *EvidenceRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}
