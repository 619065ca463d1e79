package cli

import (
	"context"
	"errors"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// mockPipeline is a minimal pipeline controller for command tests. It
// records stage calls and applies outcomes without timing rules.
type mockPipeline struct {
	source    string
	seq       uint64
	ingests   []driving.IngestMode
	builds    int
	finished  []domain.StageToken
	result    string
	ingestErr error
	buildErr  error
	beginErr  error
}

var _ driving.PipelineService = (*mockPipeline)(nil)

func (m *mockPipeline) SelectSource(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	m.source = path
	return nil
}

func (m *mockPipeline) Snapshot() driving.PipelineSnapshot {
	return driving.PipelineSnapshot{Source: m.source}
}

func (m *mockPipeline) Entries() []domain.LogEntry { return nil }

func (m *mockPipeline) Append(domain.LogLevel, string) {}

func (m *mockPipeline) BeginIngest() (domain.StageToken, error) {
	if m.beginErr != nil {
		return domain.StageToken{}, m.beginErr
	}
	m.seq++
	return domain.StageToken{Stage: domain.StageIngest, Seq: m.seq}, nil
}

func (m *mockPipeline) Ingest(_ context.Context, mode driving.IngestMode, _ string) (string, error) {
	m.ingests = append(m.ingests, mode)
	return m.result, m.ingestErr
}

func (m *mockPipeline) FinishIngest(token domain.StageToken, _ string, _ error) {
	m.finished = append(m.finished, token)
}

func (m *mockPipeline) BeginGraphBuild() (domain.StageToken, error) {
	if m.beginErr != nil {
		return domain.StageToken{}, m.beginErr
	}
	m.seq++
	return domain.StageToken{Stage: domain.StageGraphBuild, Seq: m.seq}, nil
}

func (m *mockPipeline) BuildGraph(context.Context) (string, error) {
	m.builds++
	return m.result, m.buildErr
}

func (m *mockPipeline) FinishGraphBuild(token domain.StageToken, _ string, _ error) {
	m.finished = append(m.finished, token)
}

func (m *mockPipeline) BeginToggleGPU() (domain.StageToken, bool, error) {
	m.seq++
	return domain.StageToken{Stage: domain.StageToggleAccel, Seq: m.seq}, true, nil
}

func (m *mockPipeline) ApplyGPU(context.Context, bool) error { return nil }

func (m *mockPipeline) FinishToggleGPU(token domain.StageToken, _ error) {
	m.finished = append(m.finished, token)
}

// mockDocuments implements driving.DocumentService for command tests.
type mockDocuments struct {
	result    string
	searchErr error
}

var _ driving.DocumentService = (*mockDocuments)(nil)

func (m *mockDocuments) List(context.Context) ([]domain.DocumentRecord, error) {
	return nil, nil
}

func (m *mockDocuments) Search(context.Context, string) (string, error) {
	return m.result, m.searchErr
}
