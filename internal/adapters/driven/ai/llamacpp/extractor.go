package llamacpp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.KnowledgeExtractor = (*Extractor)(nil)

const extractPrompt = `Extract named entities and the relations between them
from the text below. Respond with JSON only, no prose, in this shape:
{"entities":[{"name":"...","type":"..."}],"relations":[{"source":"...","target":"...","label":"..."}]}

Text:
%s`

const summarisePrompt = `Summarise the document below. Respond with JSON only,
no prose, in this shape:
{"title":"...","summary":"...","tags":["..."]}

Document:
%s`

// Extractor turns raw text into graph material via the completion
// endpoint. Model output is JSON-repaired before parsing since small
// local models routinely emit trailing commas or unquoted keys.
type Extractor struct {
	client *Client
}

// NewExtractor creates an extractor on top of the chat client.
func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

// Extract returns entities and relations found in the text.
func (e *Extractor) Extract(ctx context.Context, text string) (*driven.Extraction, error) {
	raw, err := e.client.Complete(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: fmt.Sprintf(extractPrompt, text)},
	}, 0.1)
	if err != nil {
		return nil, err
	}

	var out driven.Extraction
	if err := parseModelJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return &out, nil
}

// Summarise returns title, summary and tags for the text.
func (e *Extractor) Summarise(ctx context.Context, text string) (*driven.Summary, error) {
	raw, err := e.client.Complete(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: fmt.Sprintf(summarisePrompt, text)},
	}, 0.3)
	if err != nil {
		return nil, err
	}

	var out driven.Summary
	if err := parseModelJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return &out, nil
}

// parseModelJSON parses model output into out, trimming fences and
// repairing malformed JSON first.
func parseModelJSON(raw string, out any) error {
	cleaned := stripCodeFence(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return fmt.Errorf("json repair failed: %w", err)
	}

	logger.Debug("repaired model json", "before", len(cleaned), "after", len(repaired))
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("unmarshalling repaired json: %w", err)
	}
	return nil
}

// stripCodeFence removes a surrounding markdown code fence and any
// prose before the first brace.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.IndexAny(s, "{["); idx > 0 {
		s = s[idx:]
	}
	return s
}
