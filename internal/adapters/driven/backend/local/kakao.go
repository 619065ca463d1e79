package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// kakaoLinePattern matches one exported KakaoTalk message line:
// "[sender] [timestamp] message".
var kakaoLinePattern = regexp.MustCompile(`\[(.*?)\] \[(.*?)\] (.*)`)

// ProcessKakaoLog normalises an exported chat log and ingests it as a
// single document.
func (b *Backend) ProcessKakaoLog(ctx context.Context, filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("%w: file path is empty", domain.ErrInvalidInput)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading chat log: %w", err)
	}

	text := normaliseKakaoLog(string(data))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: chat log is empty", domain.ErrInvalidInput)
	}

	event := &driven.ImportEvent{
		ID:        uuid.NewString(),
		Source:    filePath,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.store.SaveEvent(ctx, event); err != nil {
		return "", fmt.Errorf("saving import event: %w", err)
	}

	if err := b.storeDocument(ctx, event.ID, filepath.Base(filePath), text); err != nil {
		return "", err
	}

	logger.Info("chat log ingested", "file", filePath)
	return "1 documents stored", nil
}

// normaliseKakaoLog strips export timestamps so chunks read as plain
// dialogue. Message lines become "sender: message"; lines that do not
// match the export format (dates, system notices) pass through.
func normaliseKakaoLog(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		m := kakaoLinePattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", m[1], m[3]))
	}
	return strings.Join(out, "\n")
}
