package services

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
)

// MockBackend implements driven.Backend with overridable functions.
type MockBackend struct {
	FetchGraphDataFunc  func(ctx context.Context, mode domain.GraphViewMode) (*domain.GraphData, error)
	GetDocumentsFunc    func(ctx context.Context) ([]domain.DocumentRecord, error)
	IngestDocumentsFunc func(ctx context.Context, dirPath string) (string, error)
	ProcessPDFsFunc     func(ctx context.Context, dirPath string) (string, error)
	ProcessPDFsGFunc    func(ctx context.Context, dirPath string) (string, error)
	ProcessKakaoFunc    func(ctx context.Context, filePath string) (string, error)
	ConstructGraphFunc  func(ctx context.Context) (string, error)
	ToggleGPUFunc       func(ctx context.Context, enable bool) error
	SearchDocsFunc      func(ctx context.Context, query string) (string, error)
	DownloadModelFunc   func(ctx context.Context, url, filename string) error
	LogNodeClickFunc    func(ctx context.Context, node *domain.GraphNode) error
}

var _ driven.Backend = (*MockBackend)(nil)

func (m *MockBackend) FetchGraphData(ctx context.Context, mode domain.GraphViewMode) (*domain.GraphData, error) {
	if m.FetchGraphDataFunc != nil {
		return m.FetchGraphDataFunc(ctx, mode)
	}
	return &domain.GraphData{}, nil
}

func (m *MockBackend) GetDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.GetDocumentsFunc != nil {
		return m.GetDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) IngestDocuments(ctx context.Context, dirPath string) (string, error) {
	if m.IngestDocumentsFunc != nil {
		return m.IngestDocumentsFunc(ctx, dirPath)
	}
	return "", nil
}

func (m *MockBackend) ProcessPDFs(ctx context.Context, dirPath string) (string, error) {
	if m.ProcessPDFsFunc != nil {
		return m.ProcessPDFsFunc(ctx, dirPath)
	}
	return "", nil
}

func (m *MockBackend) ProcessPDFsGraph(ctx context.Context, dirPath string) (string, error) {
	if m.ProcessPDFsGFunc != nil {
		return m.ProcessPDFsGFunc(ctx, dirPath)
	}
	return "", nil
}

func (m *MockBackend) ProcessKakaoLog(ctx context.Context, filePath string) (string, error) {
	if m.ProcessKakaoFunc != nil {
		return m.ProcessKakaoFunc(ctx, filePath)
	}
	return "", nil
}

func (m *MockBackend) ConstructGraph(ctx context.Context) (string, error) {
	if m.ConstructGraphFunc != nil {
		return m.ConstructGraphFunc(ctx)
	}
	return "", nil
}

func (m *MockBackend) ToggleGPU(ctx context.Context, enable bool) error {
	if m.ToggleGPUFunc != nil {
		return m.ToggleGPUFunc(ctx, enable)
	}
	return nil
}

func (m *MockBackend) SearchDocs(ctx context.Context, query string) (string, error) {
	if m.SearchDocsFunc != nil {
		return m.SearchDocsFunc(ctx, query)
	}
	return "", nil
}

func (m *MockBackend) DownloadModel(ctx context.Context, url, filename string) error {
	if m.DownloadModelFunc != nil {
		return m.DownloadModelFunc(ctx, url, filename)
	}
	return nil
}

func (m *MockBackend) LogNodeClick(ctx context.Context, node *domain.GraphNode) error {
	if m.LogNodeClickFunc != nil {
		return m.LogNodeClickFunc(ctx, node)
	}
	return nil
}

// MockConfigStore implements driven.ConfigStore in memory.
type MockConfigStore struct {
	Config  domain.Config
	LoadErr error
	SaveErr error
	Saved   []domain.Config
}

var _ driven.ConfigStore = (*MockConfigStore)(nil)

func (m *MockConfigStore) Load() (domain.Config, error) {
	return m.Config, m.LoadErr
}

func (m *MockConfigStore) Save(cfg domain.Config) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Config = cfg
	m.Saved = append(m.Saved, cfg)
	return nil
}

func (m *MockConfigStore) Path() string { return "/tmp/config.toml" }

// MockStreamer implements driven.ChatStreamer.
type MockStreamer struct {
	StreamFunc func(ctx context.Context, messages []domain.ChatMessage, onDelta func(string)) (string, error)
}

var _ driven.ChatStreamer = (*MockStreamer)(nil)

func (m *MockStreamer) Stream(ctx context.Context, messages []domain.ChatMessage, onDelta func(string)) (string, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, messages, onDelta)
	}
	return "", nil
}
