// Package retrieval assembles evidence for a query.
//
// The Pipeline searches the local evidence store first and falls back
// to a web search provider when too few local documents match. Web
// results are written back into the store so subsequent queries find
// them locally. Candidates are deduplicated by content identity and
// optionally reranked by a relevance scorer before the final cut.
//
// Only failures of the local store abort a retrieval. Web search and
// reranking are best-effort: their failures degrade the result, never
// the call.
package retrieval
