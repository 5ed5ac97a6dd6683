package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

// searchUserAgent identifies outgoing search requests.
const searchUserAgent = "pico-agent/1.0"

// DuckDuckGo implements Provider using the DuckDuckGo HTML endpoint via
// the langchaingo duckduckgo tool.
type DuckDuckGo struct {
	userAgent string
	logger    *slog.Logger
}

// NewDuckDuckGo creates a DuckDuckGo search provider.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		userAgent: searchUserAgent,
		logger:    slog.Default().With("component", "duckduckgo"),
	}
}

// Search queries DuckDuckGo and parses the tool's textual output into
// structured results.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		return []Result{}, nil
	}

	tool, err := duckduckgo.New(maxResults, d.userAgent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	raw, err := tool.Call(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results := parseToolOutput(raw, maxResults)
	d.logger.Debug("web search completed", "query", query, "results", len(results))
	return results, nil
}

// parseToolOutput converts the tool's "Title:/Description:/URL:" blocks
// into Results. Blocks are separated by blank lines. Text that doesn't
// match the block format is ignored.
func parseToolOutput(raw string, maxResults int) []Result {
	results := []Result{}
	var current Result
	var inBlock bool

	flush := func() {
		if inBlock && (current.Title != "" || current.Body != "" || current.URL != "") {
			results = append(results, current)
		}
		current = Result{}
		inBlock = false
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "Title: "):
			current.Title = strings.TrimPrefix(line, "Title: ")
			inBlock = true
		case strings.HasPrefix(line, "Description: "):
			current.Body = strings.TrimPrefix(line, "Description: ")
			inBlock = true
		case strings.HasPrefix(line, "URL: "):
			current.URL = strings.TrimPrefix(line, "URL: ")
			inBlock = true
		}
		if len(results) >= maxResults {
			return results
		}
	}
	flush()

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
