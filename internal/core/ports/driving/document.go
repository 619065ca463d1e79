package driving

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// DocumentService provides document listing and semantic search.
type DocumentService interface {
	// List returns all documents with chunks nested, newest first.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// Search returns a concatenated context block from the chunks
	// best matching the query.
	Search(ctx context.Context, query string) (string, error)
}
