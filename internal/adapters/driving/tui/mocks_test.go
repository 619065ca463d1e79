package tui

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// MockPipelineService is a stateful fake of the pipeline controller.
type MockPipelineService struct {
	Snap     driving.PipelineSnapshot
	Log      []domain.LogEntry
	BeginErr error

	seq            uint64
	SelectedSource string
	IngestFunc     func(ctx context.Context, mode driving.IngestMode, path string) (string, error)
	BuildFunc      func(ctx context.Context) (string, error)
	ApplyGPUFunc   func(ctx context.Context, enable bool) error

	FinishedIngest []domain.StageToken
	FinishedBuild  []domain.StageToken
	FinishedToggle []domain.StageToken
}

var _ driving.PipelineService = (*MockPipelineService)(nil)

func (m *MockPipelineService) SelectSource(path string) error {
	if path != "" {
		m.SelectedSource = path
		m.Snap.Source = path
	}
	return nil
}

func (m *MockPipelineService) Snapshot() driving.PipelineSnapshot { return m.Snap }

func (m *MockPipelineService) Entries() []domain.LogEntry { return m.Log }

func (m *MockPipelineService) Append(level domain.LogLevel, message string) {
	m.Log = append(m.Log, domain.LogEntry{Level: level, Message: message})
}

func (m *MockPipelineService) begin(stage domain.PipelineStage) (domain.StageToken, error) {
	if m.BeginErr != nil {
		return domain.StageToken{}, m.BeginErr
	}
	m.seq++
	m.Snap.Status = domain.StatusLoading
	return domain.StageToken{Stage: stage, Seq: m.seq}, nil
}

func (m *MockPipelineService) BeginIngest() (domain.StageToken, error) {
	return m.begin(domain.StageIngest)
}

func (m *MockPipelineService) Ingest(ctx context.Context, mode driving.IngestMode, path string) (string, error) {
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, mode, path)
	}
	return "0 documents stored", nil
}

func (m *MockPipelineService) FinishIngest(token domain.StageToken, result string, err error) {
	m.FinishedIngest = append(m.FinishedIngest, token)
	m.finish(result, err)
}

func (m *MockPipelineService) BeginGraphBuild() (domain.StageToken, error) {
	return m.begin(domain.StageGraphBuild)
}

func (m *MockPipelineService) BuildGraph(ctx context.Context) (string, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx)
	}
	return "0 nodes, 0 edges", nil
}

func (m *MockPipelineService) FinishGraphBuild(token domain.StageToken, result string, err error) {
	m.FinishedBuild = append(m.FinishedBuild, token)
	if err == nil {
		m.Snap.Epoch++
	}
	m.finish(result, err)
}

func (m *MockPipelineService) BeginToggleGPU() (domain.StageToken, bool, error) {
	token, err := m.begin(domain.StageToggleAccel)
	if err != nil {
		return domain.StageToken{}, false, err
	}
	m.Snap.GPUEnabled = !m.Snap.GPUEnabled
	m.Snap.GPUPending = true
	return token, m.Snap.GPUEnabled, nil
}

func (m *MockPipelineService) ApplyGPU(ctx context.Context, enable bool) error {
	if m.ApplyGPUFunc != nil {
		return m.ApplyGPUFunc(ctx, enable)
	}
	return nil
}

func (m *MockPipelineService) FinishToggleGPU(token domain.StageToken, err error) {
	m.FinishedToggle = append(m.FinishedToggle, token)
	m.Snap.GPUPending = false
	if err != nil {
		m.Snap.GPUEnabled = !m.Snap.GPUEnabled
		m.Snap.Status = domain.StatusError
		return
	}
	m.Snap.Status = domain.StatusIdle
}

func (m *MockPipelineService) finish(result string, err error) {
	if err != nil {
		m.Snap.Status = domain.StatusError
		return
	}
	m.Snap.Status = domain.StatusSuccess
	if result != "" {
		m.Snap.LastResult = result
	}
}

// MockGraphProvider implements driving.GraphProvider with function fields.
type MockGraphProvider struct {
	FetchFunc    func(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error)
	ClickedNodes []string
}

var _ driving.GraphProvider = (*MockGraphProvider)(nil)

func (m *MockGraphProvider) Fetch(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, mode, epoch)
	}
	return &domain.GraphData{}, nil
}

func (m *MockGraphProvider) LogNodeClick(node *domain.GraphNode) {
	if node != nil {
		m.ClickedNodes = append(m.ClickedNodes, node.ID)
	}
}

// MockDocumentService implements driving.DocumentService with function fields.
type MockDocumentService struct {
	ListFunc   func(ctx context.Context) ([]domain.DocumentRecord, error)
	SearchFunc func(ctx context.Context, query string) (string, error)
}

var _ driving.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDocumentService) Search(ctx context.Context, query string) (string, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return "", nil
}

// MockChatService implements driving.ChatService with a function field.
type MockChatService struct {
	AskFunc func(ctx context.Context, question string, onDelta func(string)) (string, error)
}

var _ driving.ChatService = (*MockChatService)(nil)

func (m *MockChatService) Ask(ctx context.Context, question string, onDelta func(string)) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, onDelta)
	}
	return "", nil
}

// MockModelService implements driving.ModelService with function fields.
type MockModelService struct {
	ListFunc     func(ctx context.Context) ([]domain.ModelEntry, error)
	DownloadFunc func(ctx context.Context, entry domain.ModelEntry) error
}

var _ driving.ModelService = (*MockModelService)(nil)

func (m *MockModelService) List(ctx context.Context) ([]domain.ModelEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockModelService) Download(ctx context.Context, entry domain.ModelEntry) error {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, entry)
	}
	return nil
}
