package driving

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// IngestMode selects which ingest variant a stage runs.
type IngestMode int

const (
	// IngestAll processes every supported file under the source.
	IngestAll IngestMode = iota

	// IngestPDFs processes only PDF files.
	IngestPDFs

	// IngestPDFsGraph processes PDFs then constructs the graph.
	IngestPDFsGraph

	// IngestKakao normalises a chat log export before ingesting.
	IngestKakao
)

// String returns the mode name.
func (m IngestMode) String() string {
	switch m {
	case IngestAll:
		return "documents"
	case IngestPDFs:
		return "pdfs"
	case IngestPDFsGraph:
		return "pdfs+graph"
	case IngestKakao:
		return "kakao log"
	default:
		return "unknown"
	}
}

// PipelineSnapshot is a point-in-time copy of controller state for
// rendering. It carries values, never references.
type PipelineSnapshot struct {
	Status     domain.PipelineStatus
	Source     string
	Epoch      uint64
	GPUEnabled bool
	GPUPending bool
	LastResult string
}

// PipelineService drives the staged ingest pipeline. Stage calls are
// split so they can straddle an async boundary: Begin marks the stage
// in flight and issues a token, the blocking work runs elsewhere, and
// Finish applies the outcome. A Finish with a superseded token logs
// and changes nothing.
type PipelineService interface {
	// SelectSource stores the ingest source path. An empty path is a
	// no-op. A changed path resets status to idle.
	SelectSource(path string) error

	// Snapshot returns the current controller state.
	Snapshot() PipelineSnapshot

	// Entries returns the retained pipeline log, oldest first.
	Entries() []domain.LogEntry

	// Append adds a structured entry to the pipeline log.
	Append(level domain.LogLevel, message string)

	// BeginIngest marks an ingest in flight.
	BeginIngest() (domain.StageToken, error)

	// Ingest runs the backend ingest call for the selected source.
	Ingest(ctx context.Context, mode IngestMode, path string) (string, error)

	// FinishIngest applies an ingest outcome.
	FinishIngest(token domain.StageToken, result string, err error)

	// BeginGraphBuild marks a graph construction in flight.
	BeginGraphBuild() (domain.StageToken, error)

	// BuildGraph runs the backend graph construction call.
	BuildGraph(ctx context.Context) (string, error)

	// FinishGraphBuild applies a build outcome. Success advances the
	// refresh epoch.
	FinishGraphBuild(token domain.StageToken, result string, err error)

	// BeginToggleGPU flips the acceleration flag optimistically and
	// returns the tentative value.
	BeginToggleGPU() (domain.StageToken, bool, error)

	// ApplyGPU runs the backend toggle call.
	ApplyGPU(ctx context.Context, enable bool) error

	// FinishToggleGPU confirms the flip or rolls it back.
	FinishToggleGPU(token domain.StageToken, err error)
}
