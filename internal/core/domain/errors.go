package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSource indicates no source directory has been selected.
	ErrNoSource = errors.New("no source selected")

	// ErrStageInProgress indicates a pipeline stage is already running.
	ErrStageInProgress = errors.New("stage in progress")

	// ErrStaleStage indicates a finish call arrived for a superseded stage.
	ErrStaleStage = errors.New("stale stage result")

	// ErrLLMUnavailable indicates the completion endpoint is unreachable.
	// Graph construction and chat are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is unreachable.
	// Semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGPUUnsupported indicates the configured runtime cannot switch
	// hardware acceleration.
	ErrGPUUnsupported = errors.New("gpu acceleration unsupported")

	// ErrExtractionFailed indicates the knowledge extractor returned
	// output that could not be parsed even after repair.
	ErrExtractionFailed = errors.New("knowledge extraction failed")
)
