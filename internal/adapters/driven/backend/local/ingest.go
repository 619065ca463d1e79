package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Chunking parameters. Chunks overlap so entity mentions straddling a
// boundary stay extractable.
const (
	chunkSize    = 1000
	chunkOverlap = 100
)

// IngestDocuments walks the directory and ingests every supported file.
func (b *Backend) IngestDocuments(ctx context.Context, dirPath string) (string, error) {
	return b.ingestDir(ctx, dirPath, false)
}

// ProcessPDFs ingests only the PDF files under the directory.
func (b *Backend) ProcessPDFs(ctx context.Context, dirPath string) (string, error) {
	return b.ingestDir(ctx, dirPath, true)
}

// ProcessPDFsGraph ingests PDFs then constructs the graph in one pass.
func (b *Backend) ProcessPDFsGraph(ctx context.Context, dirPath string) (string, error) {
	if _, err := b.ingestDir(ctx, dirPath, true); err != nil {
		return "", err
	}
	return b.ConstructGraph(ctx)
}

func (b *Backend) ingestDir(ctx context.Context, dirPath string, pdfOnly bool) (string, error) {
	if dirPath == "" {
		return "", fmt.Errorf("%w: directory path is empty", domain.ErrInvalidInput)
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		return "", fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dirPath)
	}

	var files []string
	err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dirPath {
				return filepath.SkipDir
			}
			return nil
		}
		if supportedFile(path, pdfOnly) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking source directory: %w", err)
	}

	if len(files) == 0 {
		return "No supported documents found.", nil
	}

	event := &driven.ImportEvent{
		ID:        uuid.NewString(),
		Source:    dirPath,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.store.SaveEvent(ctx, event); err != nil {
		return "", fmt.Errorf("saving import event: %w", err)
	}

	stored := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := extractText(ctx, path)
		if err != nil {
			logger.Warn("skipping unreadable file", "file", path, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("skipping empty file", "file", path)
			continue
		}

		if err := b.storeDocument(ctx, event.ID, filepath.Base(path), text); err != nil {
			return "", err
		}
		stored++
	}

	logger.Info("ingest finished", "dir", dirPath, "stored", stored)
	return fmt.Sprintf("%d documents stored", stored), nil
}

// storeDocument chunks, embeds and persists one document.
func (b *Backend) storeDocument(ctx context.Context, eventID, filename, text string) error {
	doc := &domain.DocumentRecord{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}

	for i, content := range chunkText(text, chunkSize, chunkOverlap) {
		chunk := domain.ChunkRecord{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Content:    content,
			PageIndex:  i + 1,
		}

		if b.embedder != nil {
			vec, err := b.embedder.Embed(ctx, content)
			if err != nil {
				logger.Warn("embedding failed, chunk stored without vector",
					"file", filename, "chunk", chunk.PageIndex, "error", err)
			} else {
				chunk.Embedding = vec
			}
		}

		doc.Chunks = append(doc.Chunks, chunk)
	}

	if err := b.store.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("saving document %s: %w", filename, err)
	}
	return nil
}

func supportedFile(path string, pdfOnly bool) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return true
	case ".txt", ".md":
		return !pdfOnly
	default:
		return false
	}
}

// extractText reads a file's text content. PDFs go through pdftotext;
// plain formats are read directly.
func extractText(ctx context.Context, path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), nil
	}

	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("%w: pdftotext not found in PATH", domain.ErrExtractionFailed)
	}

	// "-" writes the extracted text to stdout.
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext: %v", domain.ErrExtractionFailed, err)
	}
	return string(out), nil
}

// chunkText splits text into rune-based windows of at most size runes
// with the given overlap. Blank chunks are dropped.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	var chunks []string

	// Every window start below len(runes) emits a chunk, including the
	// trailing overlap-only window at the end of the text.
	step := size - overlap
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}
