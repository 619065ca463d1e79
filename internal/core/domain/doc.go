// Package domain defines the core business entities for Crisper.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: An ingested document with its chunks
//   - GraphData: One complete snapshot of the knowledge graph
//   - StageToken: Identity of a started pipeline stage
//   - Config: The persisted application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
