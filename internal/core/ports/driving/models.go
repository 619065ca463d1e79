package driving

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// ModelService lists and downloads models.
type ModelService interface {
	// List returns the catalog entries.
	List(ctx context.Context) ([]domain.ModelEntry, error)

	// Download fetches the model into the models directory.
	Download(ctx context.Context, entry domain.ModelEntry) error
}
