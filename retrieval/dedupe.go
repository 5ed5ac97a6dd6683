package retrieval

import "github.com/picolabs/pico/core"

// DedupePreserveOrder removes texts whose content identity was already
// seen, keeping the first occurrence and the original order. Texts that
// differ only in leading and trailing whitespace collapse to one entry.
func DedupePreserveOrder(texts []string) []string {
	seen := make(map[core.ID]bool, len(texts))
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		id := core.IDFromContent(text)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, text)
	}
	return out
}
