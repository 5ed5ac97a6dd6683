package storage

import (
	"context"

	"github.com/picolabs/pico/core"
)

// UpsertSupport describes how a backend supports idempotent writes.
type UpsertSupport int

const (
	// UpsertNative means the backend overwrites by key natively.
	UpsertNative UpsertSupport = iota + 1
	// UpsertEmulated means upsert must be emulated as update-or-insert.
	UpsertEmulated
	// UpsertInsertOnly means only inserts are available; duplicates must be
	// skipped, discarding all but the first write for a given id.
	UpsertInsertOnly
)

// String returns the tier label used in logs.
func (s UpsertSupport) String() string {
	switch s {
	case UpsertNative:
		return "native-upsert"
	case UpsertEmulated:
		return "update-or-insert"
	case UpsertInsertOnly:
		return "insert-skip-duplicate"
	default:
		return "unknown"
	}
}

// EvidenceRepository provides operations for managing stored evidence documents.
// Implementations must be thread-safe and support concurrent access.
type EvidenceRepository interface {
	// UpsertDocuments writes documents keyed by their content IDs,
	// overwriting any existing document with the same id. Only valid for
	// backends reporting UpsertNative.
	UpsertDocuments(ctx context.Context, docs ...*core.Document) error

	// InsertDocuments adds new documents.
	// Returns ErrDuplicateKey if any document id already exists.
	InsertDocuments(ctx context.Context, docs ...*core.Document) error

	// UpdateDocuments replaces existing documents.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// FindSimilar finds documents similar to the given vector.
	// Returns up to limit results ordered by similarity score (highest
	// first). An empty index yields an empty result, never an error.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredDocument, error)

	// IterateDocuments calls fn for every stored document, in key order.
	// Iteration stops early if fn returns an error, which is returned.
	IterateDocuments(ctx context.Context, fn func(doc *core.Document) error) error

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// UpsertSupport reports the idempotent-write tier this backend provides.
	UpsertSupport() UpsertSupport

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
