package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService serves the document list and semantic search.
type DocumentService struct {
	backend driven.Backend
}

// NewDocumentService creates a new document service.
func NewDocumentService(backend driven.Backend) *DocumentService {
	return &DocumentService{backend: backend}
}

// List returns all documents with chunks nested, newest first.
// Chunks within a document are ordered by page index.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	docs, err := s.backend.GetDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("get documents: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	for i := range docs {
		chunks := docs[i].Chunks
		sort.SliceStable(chunks, func(a, b int) bool {
			return chunks[a].PageIndex < chunks[b].PageIndex
		})
	}

	return docs, nil
}

// Search returns a concatenated context block for the query.
func (s *DocumentService) Search(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", domain.ErrInvalidInput
	}
	return s.backend.SearchDocs(ctx, query)
}
