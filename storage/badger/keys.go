package badger

import (
	"fmt"

	"github.com/picolabs/pico/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "evdoc"
)

// makeDocumentKey generates a key for an evidence document by content ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentPrefix, id))
}
