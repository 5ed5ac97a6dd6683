// Package websearch provides the web fallback used when local retrieval
// comes up short.
//
// The Provider interface abstracts over search services. The DuckDuckGo
// implementation wraps the duckduckgo tool from langchaingo and parses
// its textual output into structured results. Provider failures are
// always recoverable for callers: an error and an empty result list are
// treated the same way by the retrieval pipeline.
package websearch
