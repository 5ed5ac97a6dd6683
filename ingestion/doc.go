// Package ingestion bulk-loads evidence documents from JSON files.
//
// A Loader walks a directory of *.json files, each holding an array of
// {"id", "text"} objects, and upserts every text into the evidence
// store. Files are processed concurrently on a worker pool. A malformed
// file is reported and skipped; it never aborts the batch. The id field
// of each entry is ignored: document identity is derived from content.
package ingestion
