package domain

import "time"

// Document is the canonical unit of ingested content.
// Content holds the raw, source-formatted text; normalisation happens at index time.
type Document struct {
	// ID is the internal identifier.
	ID string

	// SourceID links to the Source that produced this document.
	SourceID string

	// ExternalID identifies the item within the external system.
	// (SourceID, ExternalID) is unique.
	ExternalID string

	// Title is the human-readable title.
	Title string

	// Content is the raw source-formatted text. Empty when the item has none.
	Content string

	// WebURL opens the item in the external system.
	WebURL string

	// Closed is the lifecycle flag of ticket-like items.
	Closed bool

	// CreatedAt is the creation time reported by the external system.
	CreatedAt time.Time

	// UpdatedAt is the external last-modified time, if known.
	UpdatedAt *time.Time

	// SyncedAt is the time of the last successful sync of this document.
	SyncedAt time.Time

	// IndexedAt is when chunks were last produced from this content.
	// Only the ingestion driver writes it.
	IndexedAt *time.Time
}

// NeedsIndex reports whether the document has never been indexed or was
// synced after its last indexing.
func (d *Document) NeedsIndex() bool {
	if d.IndexedAt == nil {
		return true
	}
	return d.SyncedAt.After(*d.IndexedAt)
}

// Chunk is a contiguous slice of normalised content.
// Chunks are produced fresh on every ingestion run and never mutated.
type Chunk struct {
	// ID is "{documentID}-{position}" once handed to the indexer.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text handed to the indexer.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation, filled by the indexer when enabled.
	Embedding []float32

	// Metadata carries title, source type, project, closed flag, createdAt and web URL.
	Metadata map[string]any
}
