package driven

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// Backend is the command surface the UI layer drives. Every call is
// request/response; the backend never pushes. Implementations must be
// safe for concurrent use.
type Backend interface {
	// FetchGraphData returns a fresh graph snapshot for the view mode.
	FetchGraphData(ctx context.Context, mode domain.GraphViewMode) (*domain.GraphData, error)

	// GetDocuments returns all documents with their chunks nested.
	GetDocuments(ctx context.Context) ([]domain.DocumentRecord, error)

	// IngestDocuments walks the directory, extracts text, chunks,
	// embeds and stores. Returns a human-readable status message.
	IngestDocuments(ctx context.Context, dirPath string) (string, error)

	// ProcessPDFs ingests only the PDF files under the directory.
	ProcessPDFs(ctx context.Context, dirPath string) (string, error)

	// ProcessPDFsGraph ingests PDFs then constructs the graph in one
	// pass. Returns the construction status message.
	ProcessPDFsGraph(ctx context.Context, dirPath string) (string, error)

	// ProcessKakaoLog normalises an exported chat log file and ingests
	// it as a single document.
	ProcessKakaoLog(ctx context.Context, filePath string) (string, error)

	// ConstructGraph extracts entities and relations from pending
	// chunks and summarises documents missing metadata.
	ConstructGraph(ctx context.Context) (string, error)

	// ToggleGPU persists the acceleration flag. Fails when the
	// configured runtime cannot switch.
	ToggleGPU(ctx context.Context, enable bool) error

	// SearchDocs embeds the query and returns a concatenated context
	// block from the best matching chunks.
	SearchDocs(ctx context.Context, query string) (string, error)

	// DownloadModel streams the file at url into the models directory.
	DownloadModel(ctx context.Context, url, filename string) error

	// LogNodeClick records a node activation. Callers fire and forget;
	// failures must never surface to the UI.
	LogNodeClick(ctx context.Context, node *domain.GraphNode) error
}
