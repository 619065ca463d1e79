package mcp

import (
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document provides document listing and semantic search.
	Document driving.DocumentService

	// Graph serves graph snapshots.
	Graph driving.GraphProvider

	// Pipeline reports the current refresh epoch. Optional; without it
	// graph fetches use epoch zero.
	Pipeline driving.PipelineService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Graph == nil {
		return ErrMissingGraphProvider
	}
	return nil
}
