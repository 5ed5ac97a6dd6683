// Package evidence provides the text-level interface to the semantic
// document store.
//
// The Store pairs an embedding service with an EvidenceRepository so
// callers work with plain text: queries are embedded before similarity
// search, and upserted texts are normalized, content-addressed, and
// embedded before being written.
//
// Writes adapt to the capabilities of the underlying repository. Backends
// with native upsert get a single write path; backends without it fall
// back to update-or-insert emulation or insert-skip-on-duplicate. The
// selected tier is observable via Tier() and logged on each write.
package evidence
