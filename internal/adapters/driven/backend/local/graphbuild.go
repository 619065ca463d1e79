package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// summariseInputLimit caps how much document text is sent to the model
// for summarisation.
const summariseInputLimit = 4000

// ConstructGraph runs knowledge extraction over pending chunks and
// summarises documents that still lack metadata. A chunk whose
// extraction fails stays pending and is retried on the next build.
func (b *Backend) ConstructGraph(ctx context.Context) (string, error) {
	if b.extractor == nil {
		return "", domain.ErrLLMUnavailable
	}

	chunks, err := b.store.ListUnprocessedChunks(ctx)
	if err != nil {
		return "", fmt.Errorf("listing pending chunks: %w", err)
	}

	entities := 0
	edges := 0
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		extraction, err := b.extractor.Extract(ctx, chunk.Content)
		if err != nil {
			logger.Warn("extraction failed, chunk stays pending",
				"chunk", chunk.ID, "error", err)
			continue
		}

		e, r, err := b.storeExtraction(ctx, chunk, extraction)
		if err != nil {
			return "", err
		}
		entities += e
		edges += r

		if err := b.store.MarkChunkProcessed(ctx, chunk.ID); err != nil {
			return "", fmt.Errorf("marking chunk processed: %w", err)
		}
	}

	if err := b.summariseDocuments(ctx); err != nil {
		return "", err
	}

	logger.Info("graph construction finished",
		"chunks", len(chunks), "entities", entities, "edges", edges)
	return fmt.Sprintf("%d nodes, %d edges", entities, edges), nil
}

// storeExtraction persists one chunk's extraction output. Entity names
// are deduplicated by the store; relation endpoints resolve through the
// same canonical IDs.
func (b *Backend) storeExtraction(ctx context.Context, chunk domain.ChunkRecord, ex *driven.Extraction) (int, int, error) {
	idsByName := make(map[string]string, len(ex.Entities))

	saved := 0
	for _, ent := range ex.Entities {
		name := strings.TrimSpace(ent.Name)
		if name == "" {
			continue
		}

		id, err := b.store.SaveEntity(ctx, &driven.Entity{Name: name, Type: ent.Type})
		if err != nil {
			return 0, 0, fmt.Errorf("saving entity %q: %w", name, err)
		}
		idsByName[strings.ToLower(name)] = id
		saved++

		mention := &driven.Edge{
			SourceID: chunk.ID,
			TargetID: id,
			Label:    domain.RelMentions,
		}
		if err := b.store.SaveEdge(ctx, mention); err != nil {
			return 0, 0, fmt.Errorf("saving mention edge: %w", err)
		}
	}

	edges := 0
	for _, rel := range ex.Relations {
		src, okSrc := idsByName[strings.ToLower(strings.TrimSpace(rel.Source))]
		dst, okDst := idsByName[strings.ToLower(strings.TrimSpace(rel.Target))]
		if !okSrc || !okDst || src == dst {
			continue
		}

		label := rel.Label
		if label == "" {
			label = domain.RelRelatesTo
		}

		edge := &driven.Edge{SourceID: src, TargetID: dst, Label: label}
		if err := b.store.SaveEdge(ctx, edge); err != nil {
			return 0, 0, fmt.Errorf("saving relation edge: %w", err)
		}
		edges++
	}

	return saved, edges, nil
}

// summariseDocuments backfills title/summary/tags for documents that
// have none yet. Failures are logged and skipped so one bad document
// never blocks the rest of the build.
func (b *Backend) summariseDocuments(ctx context.Context) error {
	docs, err := b.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	for _, doc := range docs {
		if doc.HasSummaryMetadata() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var sb strings.Builder
		for _, chunk := range doc.Chunks {
			if sb.Len() >= summariseInputLimit {
				break
			}
			sb.WriteString(chunk.Content)
			sb.WriteString("\n")
		}
		if sb.Len() == 0 {
			continue
		}

		text := sb.String()
		if runes := []rune(text); len(runes) > summariseInputLimit {
			text = string(runes[:summariseInputLimit])
		}

		summary, err := b.extractor.Summarise(ctx, text)
		if err != nil {
			logger.Warn("summarisation failed", "document", doc.ID, "error", err)
			continue
		}

		meta := &domain.DocumentMetadata{
			Title:   summary.Title,
			Summary: summary.Summary,
			Tags:    summary.Tags,
		}
		if err := b.store.UpdateDocumentMetadata(ctx, doc.ID, meta); err != nil {
			return fmt.Errorf("updating document metadata: %w", err)
		}
	}

	return nil
}
