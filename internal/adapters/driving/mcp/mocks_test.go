package mcp

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// mockDocumentService implements driving.DocumentService for tests.
type mockDocumentService struct {
	docs      []domain.DocumentRecord
	listErr   error
	result    string
	searchErr error
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) List(context.Context) ([]domain.DocumentRecord, error) {
	return m.docs, m.listErr
}

func (m *mockDocumentService) Search(context.Context, string) (string, error) {
	return m.result, m.searchErr
}

// mockGraphProvider implements driving.GraphProvider for tests.
type mockGraphProvider struct {
	data      *domain.GraphData
	err       error
	lastMode  domain.GraphViewMode
	lastEpoch uint64
}

var _ driving.GraphProvider = (*mockGraphProvider)(nil)

func (m *mockGraphProvider) Fetch(
	_ context.Context, mode domain.GraphViewMode, epoch uint64,
) (*domain.GraphData, error) {
	m.lastMode = mode
	m.lastEpoch = epoch
	return m.data, m.err
}

func (m *mockGraphProvider) LogNodeClick(*domain.GraphNode) {}

// mockPipelineService implements the snapshot part of
// driving.PipelineService for tests.
type mockPipelineService struct {
	driving.PipelineService
	snap driving.PipelineSnapshot
}

func (m *mockPipelineService) Snapshot() driving.PipelineSnapshot {
	return m.snap
}
