package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for stored documents.
// Identical normalized text always produces the same ID.
type ID [16]byte

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// The text is normalized (leading/trailing whitespace trimmed) before hashing,
// so documents that differ only in surrounding whitespace collide to the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(Normalize(text)))
	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

// Normalize returns the canonical form of document text used for identity.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// String renders the ID as lowercase hex.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Source identifies where a document came from.
type Source int

const (
	// SourceManual represents a document added directly through the API.
	SourceManual Source = iota + 1
	// SourceWeb represents a document persisted from a web search fallback.
	SourceWeb
	// SourceIngested represents a document loaded by the bulk ingestion path.
	SourceIngested
)

// String returns the metadata label for the source.
func (s Source) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceWeb:
		return "web"
	case SourceIngested:
		return "ingested"
	default:
		return "unknown"
	}
}

// Document is a unit of retrievable evidence.
// The Id is always IDFromContent(Text); the Vector is populated when the
// document is embedded for semantic search.
type Document struct {
	Id      ID
	Text    string
	Source  Source
	AddedAt time.Time // When the document was upserted into the store
	Vector  []float32 // Embedding vector for semantic search
}

// NewDocument builds a document from text with its content-derived ID.
// The text is stored in normalized form so identity and content agree.
func NewDocument(text string, source Source) *Document {
	normalized := Normalize(text)
	return &Document{
		Id:     IDFromContent(normalized),
		Text:   normalized,
		Source: source,
	}
}

// ScoredDocument is a document paired with a similarity score.
type ScoredDocument struct {
	Document *Document
	Score    float32
}

// Role identifies the author of a conversation turn.
type Role int

const (
	// RoleSystem represents policy or instruction turns.
	RoleSystem Role = iota + 1
	// RoleUser represents the human user.
	RoleUser
	// RoleAssistant represents the assistant's replies.
	RoleAssistant
)

// Turn is a single immutable entry in a conversation history.
type Turn struct {
	Role    Role
	Content string
}
