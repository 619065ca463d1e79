// Command crisper is the local knowledge graph application.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/ai/llamacpp"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/ai/ollamaembed"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/backend/local"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/catalog/httpcat"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/config/file"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driven/storage/sqlite"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/cli"
	"github.com/leehyunseo03/crisper-app/internal/core/services"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	llm := llamacpp.NewClient(cfg.LLMEndpoint)
	extractor := llamacpp.NewExtractor(llm)

	// Embedding is optional; without it ingest stores chunks unvectored
	// and semantic search is unavailable.
	embedder, err := ollamaembed.NewEmbeddingService(ollamaembed.Config{Model: cfg.EmbedModel})
	if err != nil {
		logger.Warn("embedding service unavailable", "err", err)
		embedder = nil
	}

	backend, err := local.New(local.Options{
		Store:     store,
		Embedder:  embedder,
		Extractor: extractor,
		Config:    configStore,
		ModelsDir: filepath.Join(cfg.DataDir, "models"),
	})
	if err != nil {
		return fmt.Errorf("initialising backend: %w", err)
	}

	catalog := httpcat.NewCatalog(cfg.CatalogURL)

	cli.SetServices(cli.Services{
		Pipeline: services.NewPipelineController(backend, configStore),
		Graph:    services.NewGraphDataAdapter(backend),
		Document: services.NewDocumentService(backend),
		Chat:     services.NewChatService(backend, llm),
		Model:    services.NewModelService(catalog, backend),
	})

	return cli.Execute()
}
