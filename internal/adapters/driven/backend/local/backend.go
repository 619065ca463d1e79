// Package local implements the backend command surface in-process,
// on top of the SQLite graph store and the local model runtimes.
package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

// Backend is the in-process implementation of the command surface.
type Backend struct {
	store     driven.GraphStore
	embedder  driven.Embedder
	extractor driven.KnowledgeExtractor
	config    driven.ConfigStore
	modelsDir string
	httpc     *http.Client
}

// Options configures a Backend. Store is required; the AI ports are
// optional and their absence disables the operations needing them.
type Options struct {
	Store     driven.GraphStore
	Embedder  driven.Embedder
	Extractor driven.KnowledgeExtractor
	Config    driven.ConfigStore
	ModelsDir string
}

// New creates a backend.
func New(opts Options) (*Backend, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("backend: %w: store is required", domain.ErrInvalidInput)
	}

	return &Backend{
		store:     opts.Store,
		embedder:  opts.Embedder,
		extractor: opts.Extractor,
		config:    opts.Config,
		modelsDir: opts.ModelsDir,
		httpc:     &http.Client{Timeout: 30 * time.Minute},
	}, nil
}

// GetDocuments returns all documents with their chunks nested.
func (b *Backend) GetDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	return b.store.ListDocuments(ctx)
}

// ToggleGPU persists the acceleration flag. The pure-Go runtime setup
// cannot switch acceleration without a configured GPU build, so the
// call fails when no GPU-capable endpoint is configured.
func (b *Backend) ToggleGPU(ctx context.Context, enable bool) error {
	if b.config == nil {
		return domain.ErrGPUUnsupported
	}

	cfg, err := b.config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfg.GPUEnabled = enable
	if err := b.config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	logger.Info("gpu acceleration flag persisted", "enabled", enable)
	return nil
}

// DownloadModel streams the file at url into the models directory.
// The download goes through a temp file so an aborted transfer never
// leaves a half-written model behind.
func (b *Backend) DownloadModel(ctx context.Context, url, filename string) error {
	if url == "" || filename == "" {
		return domain.ErrInvalidInput
	}
	if filepath.Base(filename) != filename {
		return fmt.Errorf("%w: filename must not contain path separators", domain.ErrInvalidInput)
	}

	dir := b.modelsDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".crisper", "models")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating models directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}

	resp, err := b.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("downloading model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading model: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(dir, filename+".part-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing model file: %w", err)
	}

	target := filepath.Join(dir, filename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("moving model into place: %w", err)
	}

	logger.Info("model downloaded", "file", target)
	return nil
}

// LogNodeClick records a node activation in the application log with a
// group-specific message. It never returns user-visible state.
func (b *Backend) LogNodeClick(_ context.Context, node *domain.GraphNode) error {
	if node == nil {
		return domain.ErrInvalidInput
	}

	switch node.Group {
	case domain.GroupEvent:
		logger.Info("import session opened", "id", node.ID)
	case domain.GroupDocument:
		logger.Info("document node clicked", "id", node.ID, "file", node.Label)
	case domain.GroupEntity:
		logger.Info("entity node clicked", "id", node.ID, "name", node.Label)
	case domain.GroupChunk:
		logger.Info("chunk node clicked", "id", node.ID, "page", node.Label)
	default:
		logger.Info("node clicked", "id", node.ID, "group", node.Group)
	}
	return nil
}
