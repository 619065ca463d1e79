package driven

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// ChatStreamer produces streaming completions.
type ChatStreamer interface {
	// Stream sends the conversation and calls onDelta for each content
	// fragment. Malformed stream lines are skipped, not fatal.
	Stream(ctx context.Context, messages []domain.ChatMessage, onDelta func(string)) (string, error)
}

// Extraction is the structured output of one chunk extraction pass.
type Extraction struct {
	Entities  []ExtractedEntity   `json:"entities"`
	Relations []ExtractedRelation `json:"relations"`
}

// ExtractedEntity is one named entity found in a chunk.
type ExtractedEntity struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// ExtractedRelation links two extracted entities.
type ExtractedRelation struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Summary is the structured output of one document summarisation pass.
type Summary struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// KnowledgeExtractor turns raw text into graph material via the LLM.
type KnowledgeExtractor interface {
	// Extract returns entities and relations found in the text.
	Extract(ctx context.Context, text string) (*Extraction, error)

	// Summarise returns title, summary and tags for the text.
	Summarise(ctx context.Context, text string) (*Summary, error)
}

// ModelCatalog lists downloadable models.
type ModelCatalog interface {
	// List returns the available model entries.
	List(ctx context.Context) ([]domain.ModelEntry, error)
}
