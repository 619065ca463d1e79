// Package tui provides an interactive terminal user interface for crisper.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline drives the staged ingest pipeline.
	Pipeline driving.PipelineService

	// Graph serves graph snapshots.
	Graph driving.GraphProvider

	// Document provides document listing and search.
	Document driving.DocumentService

	// Chat answers questions grounded in ingested documents.
	Chat driving.ChatService

	// Model lists and downloads models. Optional; the models view shows
	// an empty catalog without it.
	Model driving.ModelService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	pipeline driving.PipelineService,
	graph driving.GraphProvider,
	document driving.DocumentService,
	chat driving.ChatService,
) *Ports {
	return &Ports{
		Pipeline: pipeline,
		Graph:    graph,
		Document: document,
		Chat:     chat,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if p.Graph == nil {
		return ErrMissingGraphProvider
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
