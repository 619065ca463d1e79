package local

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// Search parameters.
const (
	searchTopK = 5

	// searchMinScore filters near-orthogonal matches that would only
	// add noise to the context block.
	searchMinScore = 0.3
)

// SearchDocs embeds the query and returns a context block built from
// the best matching chunks, ranked by cosine similarity.
func (b *Backend) SearchDocs(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if b.embedder == nil {
		return "", domain.ErrEmbeddingUnavailable
	}

	queryVec, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := b.store.ListChunkEmbeddings(ctx)
	if err != nil {
		return "", fmt.Errorf("listing chunk embeddings: %w", err)
	}

	hits := rankChunks(queryVec, chunks, searchTopK, searchMinScore)
	if len(hits) == 0 {
		return domain.NoMatchMessage, nil
	}

	var sb strings.Builder
	for i, hit := range hits {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(hit.Chunk.Content)
	}
	return sb.String(), nil
}

// rankChunks scores every chunk against the query vector and returns
// the top k above the score floor, best first.
func rankChunks(query []float32, chunks []domain.ChunkRecord, k int, minScore float64) []domain.SearchHit {
	var hits []domain.SearchHit
	for _, chunk := range chunks {
		score := cosineSimilarity(query, chunk.Embedding)
		if score < minScore {
			continue
		}
		hits = append(hits, domain.SearchHit{Chunk: chunk, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// cosineSimilarity returns 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
