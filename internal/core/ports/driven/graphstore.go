package driven

import (
	"context"
	"time"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// ImportEvent is one ingest session. Every document belongs to one.
type ImportEvent struct {
	ID        string
	Source    string
	CreatedAt time.Time
}

// Edge is one stored relation between two graph rows.
type Edge struct {
	SourceID string
	TargetID string
	Label    string
}

// Entity is one extracted named entity.
type Entity struct {
	ID   string
	Name string
	Type string
}

// GraphStore persists the knowledge graph.
// Backed by SQLite for metadata and embedding storage.
type GraphStore interface {
	// SaveEvent stores an import session.
	SaveEvent(ctx context.Context, event *ImportEvent) error

	// SaveDocument stores a document and its chunks.
	SaveDocument(ctx context.Context, doc *domain.DocumentRecord) error

	// UpdateDocumentMetadata attaches summarisation output.
	UpdateDocumentMetadata(ctx context.Context, docID string, meta *domain.DocumentMetadata) error

	// SaveEntity stores an entity, reusing the existing row when an
	// entity with the same name exists. Returns the canonical ID.
	SaveEntity(ctx context.Context, entity *Entity) (string, error)

	// SaveEdge stores a relation. Edges referencing missing rows are
	// stored as-is; reads filter them.
	SaveEdge(ctx context.Context, edge *Edge) error

	// ListEvents returns all import sessions.
	ListEvents(ctx context.Context) ([]ImportEvent, error)

	// ListDocuments returns all documents with chunks nested.
	ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error)

	// ListEntities returns all entities.
	ListEntities(ctx context.Context) ([]Entity, error)

	// ListEdges returns all edges.
	ListEdges(ctx context.Context) ([]Edge, error)

	// ListUnprocessedChunks returns chunks not yet run through
	// knowledge extraction.
	ListUnprocessedChunks(ctx context.Context) ([]domain.ChunkRecord, error)

	// MarkChunkProcessed records that extraction ran for the chunk.
	MarkChunkProcessed(ctx context.Context, chunkID string) error

	// ListChunkEmbeddings returns all chunks that carry an embedding.
	ListChunkEmbeddings(ctx context.Context) ([]domain.ChunkRecord, error)

	// Close releases the underlying database.
	Close() error
}
