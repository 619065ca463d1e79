// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPipeline is the ingest pipeline control view.
	ViewPipeline
	// ViewGraph is the knowledge graph view.
	ViewGraph
	// ViewNodeDetail shows details for a single graph node.
	ViewNodeDetail
	// ViewDocuments lists ingested documents.
	ViewDocuments
	// ViewChat is the grounded question-answering view.
	ViewChat
	// ViewModels is the model catalog and download view.
	ViewModels
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPipeline:
		return "pipeline"
	case ViewGraph:
		return "graph"
	case ViewNodeDetail:
		return "node_detail"
	case ViewDocuments:
		return "documents"
	case ViewChat:
		return "chat"
	case ViewModels:
		return "models"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// IngestFinished carries an ingest stage outcome. The token identifies
// which stage run produced it; a superseded token is discarded by the
// controller.
type IngestFinished struct {
	Token  domain.StageToken
	Result string
	Err    error
}

// GraphBuildFinished carries a graph construction outcome.
type GraphBuildFinished struct {
	Token  domain.StageToken
	Result string
	Err    error
}

// GPUToggleFinished carries the outcome of an acceleration toggle.
type GPUToggleFinished struct {
	Token domain.StageToken
	Err   error
}

// GraphLoaded carries a graph snapshot for rendering. Data may be a
// retained previous snapshot when Err is non-nil.
type GraphLoaded struct {
	Data  *domain.GraphData
	Epoch uint64
	Err   error
}

// NodeSelected signals a graph node was activated.
type NodeSelected struct {
	Node domain.GraphNode
}

// DocumentsLoaded carries the document list.
type DocumentsLoaded struct {
	Documents []domain.DocumentRecord
	Err       error
}

// SourceChanged signals the watched source directory changed on disk.
type SourceChanged struct{}

// ChatDelta carries one streamed content fragment.
type ChatDelta struct {
	Text string
}

// ChatDone signals the stream ended.
type ChatDone struct {
	Answer string
	Err    error
}

// ModelsLoaded carries the model catalog.
type ModelsLoaded struct {
	Entries []domain.ModelEntry
	Err     error
}

// ModelDownloaded signals a model download finished.
type ModelDownloaded struct {
	Name string
	Err  error
}
