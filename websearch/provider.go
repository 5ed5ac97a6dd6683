package websearch

import (
	"context"
	"strings"
)

// Provider searches the web for documents relevant to a query.
type Provider interface {
	// Search returns up to maxResults results for the query.
	// No matches yields an empty slice, not an error.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Result is a single web search hit.
type Result struct {
	Title string
	Body  string
	URL   string
}

// Snippet renders the result as a single line of storable text.
// Missing fields are omitted; inner newlines are collapsed to spaces.
func (r Result) Snippet() string {
	var parts []string
	if title := collapse(r.Title); title != "" {
		parts = append(parts, title)
	}
	if body := collapse(r.Body); body != "" {
		parts = append(parts, body)
	}
	s := strings.Join(parts, " - ")
	if url := collapse(r.URL); url != "" {
		if s == "" {
			s = url
		} else {
			s += " (" + url + ")"
		}
	}
	return s
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
