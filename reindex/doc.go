// Package reindex re-embeds stored evidence documents with the
// configured embedding model.
//
// Use it after switching embedding models: vectors written by the old
// model are replaced in place. Documents are processed in batches with
// retry on transient embedding failures and progress reporting to a
// writer.
package reindex
