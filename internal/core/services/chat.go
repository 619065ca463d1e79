package services

import (
	"context"
	"fmt"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

const chatSystemPrompt = `You are a helpful assistant. Answer using only the
provided context. If the context does not contain the answer, say so.`

// ChatService answers questions grounded in ingested documents.
// Retrieval failures degrade to an uncontexted answer rather than
// failing the question.
type ChatService struct {
	backend  driven.Backend
	streamer driven.ChatStreamer
}

// NewChatService creates a new chat service.
func NewChatService(backend driven.Backend, streamer driven.ChatStreamer) *ChatService {
	return &ChatService{backend: backend, streamer: streamer}
}

// Ask retrieves context for the question and streams a completion.
func (s *ChatService) Ask(ctx context.Context, question string, onDelta func(string)) (string, error) {
	if question == "" {
		return "", domain.ErrInvalidInput
	}
	if s.streamer == nil {
		return "", domain.ErrLLMUnavailable
	}

	contextBlock, err := s.backend.SearchDocs(ctx, question)
	if err != nil {
		logger.Warn("retrieval failed, answering without context", "err", err)
		contextBlock = ""
	}

	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: chatSystemPrompt},
	}
	if contextBlock != "" && contextBlock != domain.NoMatchMessage {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleSystem,
			Content: "Context:\n" + contextBlock,
		})
	}
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: question,
	})

	answer, err := s.streamer.Stream(ctx, messages, onDelta)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return answer, nil
}
