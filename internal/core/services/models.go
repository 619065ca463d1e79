package services

import (
	"context"
	"fmt"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// Ensure ModelService implements the interface.
var _ driving.ModelService = (*ModelService)(nil)

// ModelService lists catalog entries and downloads models.
type ModelService struct {
	catalog driven.ModelCatalog
	backend driven.Backend
}

// NewModelService creates a new model service.
func NewModelService(catalog driven.ModelCatalog, backend driven.Backend) *ModelService {
	return &ModelService{catalog: catalog, backend: backend}
}

// List returns the catalog entries.
func (s *ModelService) List(ctx context.Context) ([]domain.ModelEntry, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotFound
	}
	return s.catalog.List(ctx)
}

// Download fetches the model into the models directory.
func (s *ModelService) Download(ctx context.Context, entry domain.ModelEntry) error {
	if entry.URL == "" || entry.Filename == "" {
		return domain.ErrInvalidInput
	}
	if err := s.backend.DownloadModel(ctx, entry.URL, entry.Filename); err != nil {
		return fmt.Errorf("download %s: %w", entry.Filename, err)
	}
	return nil
}
