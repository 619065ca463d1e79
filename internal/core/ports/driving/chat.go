package driving

import "context"

// ChatService answers questions grounded in the ingested documents.
type ChatService interface {
	// Ask retrieves context for the question and streams a completion.
	// onDelta receives each content fragment; the full answer is
	// returned once the stream ends.
	Ask(ctx context.Context, question string, onDelta func(string)) (string, error)
}
