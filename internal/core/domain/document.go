package domain

import (
	"fmt"
	"time"
)

// NoSummaryPlaceholder is shown when a chunk carries no summary.
const NoSummaryPlaceholder = "No summary available."

// DocumentRecord is an ingested document as the list view consumes it.
type DocumentRecord struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// EventID links to the import session that produced this document.
	EventID string `json:"eventId"`

	// Filename is the base name of the ingested file.
	Filename string `json:"filename"`

	// Metadata holds optional LLM-derived fields. A nil map is valid.
	Metadata *DocumentMetadata `json:"metadata,omitempty"`

	// Chunks are the document's chunks in page order.
	Chunks []ChunkRecord `json:"chunks"`

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentMetadata holds summarisation output. Every field is optional;
// display code falls back per field, never per struct.
type DocumentMetadata struct {
	Title   string   `json:"title,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ChunkRecord is a searchable unit within a document.
type ChunkRecord struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id"`

	// DocumentID links to the parent document.
	DocumentID string `json:"documentId"`

	// Content is the chunk text.
	Content string `json:"content"`

	// PageIndex is the 1-based position within the document.
	PageIndex int `json:"pageIndex"`

	// Metadata holds optional per-chunk summarisation output.
	Metadata *ChunkMetadata `json:"metadata,omitempty"`

	// Embedding is the vector representation for semantic search.
	Embedding []float32 `json:"-"`
}

// ChunkMetadata holds optional per-chunk fields.
type ChunkMetadata struct {
	Title   string   `json:"title,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// DisplayTitle returns the chunk title, or "Chunk #n" when absent.
func (c *ChunkRecord) DisplayTitle() string {
	if c.Metadata != nil && c.Metadata.Title != "" {
		return c.Metadata.Title
	}
	return fmt.Sprintf("Chunk #%d", c.PageIndex)
}

// DisplaySummary returns the chunk summary, or a fixed placeholder.
func (c *ChunkRecord) DisplaySummary() string {
	if c.Metadata != nil && c.Metadata.Summary != "" {
		return c.Metadata.Summary
	}
	return NoSummaryPlaceholder
}

// DisplayTags returns the chunk tags, or an empty list when absent.
func (c *ChunkRecord) DisplayTags() []string {
	if c.Metadata == nil {
		return nil
	}
	return c.Metadata.Tags
}

// HasSummaryMetadata reports whether the document still needs a
// summarisation pass.
func (d *DocumentRecord) HasSummaryMetadata() bool {
	return d.Metadata != nil && d.Metadata.Summary != ""
}

// DisplayTitle returns the document title, or the filename when absent.
func (d *DocumentRecord) DisplayTitle() string {
	if d.Metadata != nil && d.Metadata.Title != "" {
		return d.Metadata.Title
	}
	return d.Filename
}
