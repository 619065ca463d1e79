package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.GraphStore = (*Store)(nil)

// Store is the SQLite-backed knowledge graph store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.crisper/data/graph.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".crisper", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "graph.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Events ====================

// SaveEvent stores an import session.
func (s *Store) SaveEvent(ctx context.Context, event *driven.ImportEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, source, created_at)
		VALUES (?, ?, ?)
	`, event.ID, event.Source, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// ListEvents returns all import sessions, newest first.
func (s *Store) ListEvents(ctx context.Context) ([]driven.ImportEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, created_at
		FROM events ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []driven.ImportEvent //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e driven.ImportEvent
		if err := rows.Scan(&e.ID, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// ==================== Documents and chunks ====================

// SaveDocument stores a document and its chunks in one transaction.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.DocumentRecord) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	metadataJSON, err := marshalMetadata(doc.Metadata)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, event_id, filename, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			filename = excluded.filename,
			metadata = excluded.metadata
	`, doc.ID, doc.EventID, doc.Filename, metadataJSON, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, page_index, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			page_index = excluded.page_index,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk statement: %w", err)
	}
	defer stmt.Close()

	for i := range doc.Chunks {
		chunk := &doc.Chunks[i]
		if chunk.ID == "" {
			chunk.ID = uuid.NewString()
		}
		chunk.DocumentID = doc.ID

		chunkMeta, err := marshalChunkMetadata(chunk.Metadata)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.PageIndex, float32SliceToBytes(chunk.Embedding), chunkMeta); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateDocumentMetadata attaches summarisation output.
func (s *Store) UpdateDocumentMetadata(ctx context.Context, docID string, meta *domain.DocumentMetadata) error {
	metadataJSON, err := marshalMetadata(meta)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET metadata = ? WHERE id = ?", metadataJSON, docID)
	if err != nil {
		return fmt.Errorf("updating document metadata: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDocuments returns all documents with chunks nested.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, filename, metadata, created_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.DocumentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.DocumentRecord
		var metadataJSON sql.NullString
		if err := rows.Scan(&doc.ID, &doc.EventID, &doc.Filename, &metadataJSON, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		if metadataJSON.Valid && metadataJSON.String != "" {
			var meta domain.DocumentMetadata
			if err := json.Unmarshal([]byte(metadataJSON.String), &meta); err != nil {
				return nil, fmt.Errorf("unmarshaling document metadata: %w", err)
			}
			doc.Metadata = &meta
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	for i := range docs {
		chunks, err := s.listChunks(ctx, docs[i].ID)
		if err != nil {
			return nil, err
		}
		docs[i].Chunks = chunks
	}

	return docs, nil
}

// listChunks returns the chunks of one document in page order.
func (s *Store) listChunks(ctx context.Context, documentID string) ([]domain.ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, page_index, embedding, metadata
		FROM chunks WHERE document_id = ?
		ORDER BY page_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// ListUnprocessedChunks returns chunks not yet run through extraction.
func (s *Store) ListUnprocessedChunks(ctx context.Context) ([]domain.ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, page_index, embedding, metadata
		FROM chunks WHERE processed = 0
		ORDER BY document_id, page_index
	`)
	if err != nil {
		return nil, fmt.Errorf("querying unprocessed chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// MarkChunkProcessed records that extraction ran for the chunk.
func (s *Store) MarkChunkProcessed(ctx context.Context, chunkID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE chunks SET processed = 1 WHERE id = ?", chunkID)
	if err != nil {
		return fmt.Errorf("marking chunk processed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListChunkEmbeddings returns all chunks that carry an embedding.
func (s *Store) ListChunkEmbeddings(ctx context.Context) ([]domain.ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, page_index, embedding, metadata
		FROM chunks WHERE embedding IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunk embeddings: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// ==================== Entities and edges ====================

// SaveEntity stores an entity, reusing the row with the same name.
func (s *Store) SaveEntity(ctx context.Context, entity *driven.Entity) (string, error) {
	if entity.Name == "" {
		return "", domain.ErrInvalidInput
	}

	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE name = ?", entity.Name).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("looking up entity: %w", err)
	}

	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entities (id, name, type) VALUES (?, ?, ?)
	`, entity.ID, entity.Name, entity.Type)
	if err != nil {
		return "", fmt.Errorf("saving entity: %w", err)
	}
	return entity.ID, nil
}

// ListEntities returns all entities.
func (s *Store) ListEntities(ctx context.Context) ([]driven.Entity, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type FROM entities")
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entities []driven.Entity //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e driven.Entity
		var typ sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &typ); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		e.Type = typ.String
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	return entities, nil
}

// SaveEdge stores a relation. Duplicate edges are ignored.
func (s *Store) SaveEdge(ctx context.Context, edge *driven.Edge) error {
	if edge.SourceID == "" || edge.TargetID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edges (source_id, target_id, label)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id, target_id, label) DO NOTHING
	`, edge.SourceID, edge.TargetID, edge.Label)
	if err != nil {
		return fmt.Errorf("saving edge: %w", err)
	}
	return nil
}

// ListEdges returns all edges.
func (s *Store) ListEdges(ctx context.Context) ([]driven.Edge, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT source_id, target_id, label FROM edges")
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []driven.Edge //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e driven.Edge
		if err := rows.Scan(&e.SourceID, &e.TargetID, &e.Label); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}

	return edges, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// marshalMetadata serialises document metadata, mapping nil to NULL.
func marshalMetadata(meta *domain.DocumentMetadata) (any, error) {
	if meta == nil {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshalling metadata: %w", err)
	}
	return string(data), nil
}

// marshalChunkMetadata serialises chunk metadata, mapping nil to NULL.
func marshalChunkMetadata(meta *domain.ChunkMetadata) (any, error) {
	if meta == nil {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshalling chunk metadata: %w", err)
	}
	return string(data), nil
}

// scanChunks scans chunk rows.
func scanChunks(rows *sql.Rows) ([]domain.ChunkRecord, error) {
	var chunks []domain.ChunkRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.ChunkRecord
		var embeddingBlob []byte
		var metadataJSON sql.NullString

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
			&chunk.PageIndex, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

		if metadataJSON.Valid && metadataJSON.String != "" {
			var meta domain.ChunkMetadata
			if err := json.Unmarshal([]byte(metadataJSON.String), &meta); err != nil {
				return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
			}
			chunk.Metadata = &meta
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}
