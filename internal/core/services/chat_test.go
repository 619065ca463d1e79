package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// TestChatService_AskGroundsInRetrievedContext tests context injection
func TestChatService_AskGroundsInRetrievedContext(t *testing.T) {
	backend := &MockBackend{
		SearchDocsFunc: func(context.Context, string) (string, error) {
			return "Revenue grew 12% in Q3.", nil
		},
	}
	streamer := &MockStreamer{
		StreamFunc: func(_ context.Context, messages []domain.ChatMessage, onDelta func(string)) (string, error) {
			require.Len(t, messages, 3)
			assert.Equal(t, domain.RoleSystem, messages[1].Role)
			assert.Contains(t, messages[1].Content, "Revenue grew 12%")
			assert.Equal(t, domain.RoleUser, messages[2].Role)

			onDelta("Revenue ")
			onDelta("grew.")
			return "Revenue grew.", nil
		},
	}
	svc := NewChatService(backend, streamer)

	var streamed strings.Builder
	answer, err := svc.Ask(context.Background(), "how did revenue do?", func(d string) {
		streamed.WriteString(d)
	})
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew.", answer)
	assert.Equal(t, "Revenue grew.", streamed.String())
}

// TestChatService_AskSurvivesRetrievalFailure tests degradation
func TestChatService_AskSurvivesRetrievalFailure(t *testing.T) {
	backend := &MockBackend{
		SearchDocsFunc: func(context.Context, string) (string, error) {
			return "", errors.New("embedder down")
		},
	}
	streamer := &MockStreamer{
		StreamFunc: func(_ context.Context, messages []domain.ChatMessage, _ func(string)) (string, error) {
			// No context message when retrieval failed.
			require.Len(t, messages, 2)
			return "answer", nil
		},
	}
	svc := NewChatService(backend, streamer)

	answer, err := svc.Ask(context.Background(), "question", nil)
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

// TestChatService_AskSkipsNoMatchContext tests the no-match sentinel
func TestChatService_AskSkipsNoMatchContext(t *testing.T) {
	backend := &MockBackend{
		SearchDocsFunc: func(context.Context, string) (string, error) {
			return domain.NoMatchMessage, nil
		},
	}
	streamer := &MockStreamer{
		StreamFunc: func(_ context.Context, messages []domain.ChatMessage, _ func(string)) (string, error) {
			require.Len(t, messages, 2)
			return "answer", nil
		},
	}
	svc := NewChatService(backend, streamer)

	_, err := svc.Ask(context.Background(), "question", nil)
	require.NoError(t, err)
}

// TestChatService_AskValidation tests guard clauses
func TestChatService_AskValidation(t *testing.T) {
	svc := NewChatService(&MockBackend{}, &MockStreamer{})
	_, err := svc.Ask(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	svc = NewChatService(&MockBackend{}, nil)
	_, err = svc.Ask(context.Background(), "question", nil)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
