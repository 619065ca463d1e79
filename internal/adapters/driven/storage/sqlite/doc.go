// Package sqlite provides the SQLite-based implementation of the graph store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It persists the whole
// knowledge graph through a single database connection:
//
//   - events: import sessions
//   - documents and chunks: ingested content with embeddings
//   - entities and edges: extraction output
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.crisper/data/graph.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
