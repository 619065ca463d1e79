// Package logpanel renders the retained pipeline log.
package logpanel

import (
	"fmt"
	"strings"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// Panel renders the newest log entries, one per line.
type Panel struct {
	styles  *styles.Styles
	entries []domain.LogEntry
	height  int
	width   int
}

// NewPanel creates a log panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{
		styles: s,
		height: 8,
		width:  80,
	}
}

// SetEntries replaces the displayed entries. Input is oldest first, as
// the log ring returns it.
func (p *Panel) SetEntries(entries []domain.LogEntry) {
	p.entries = entries
}

// Entries returns the displayed entries.
func (p *Panel) Entries() []domain.LogEntry {
	return p.entries
}

// SetDimensions sets the panel size.
func (p *Panel) SetDimensions(width, height int) {
	p.width = width
	if height > 0 {
		p.height = height
	}
}

// View renders the newest entries that fit the panel height.
func (p *Panel) View() string {
	if len(p.entries) == 0 {
		return p.styles.Muted.Render("log empty")
	}

	start := 0
	if len(p.entries) > p.height {
		start = len(p.entries) - p.height
	}

	var b strings.Builder
	for i, entry := range p.entries[start:] {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.renderEntry(entry))
	}
	return b.String()
}

func (p *Panel) renderEntry(entry domain.LogEntry) string {
	line := fmt.Sprintf("%s %s", entry.Time.Format("15:04:05"), entry.Message)
	if maxLen := p.width - 2; maxLen > 10 && len(line) > maxLen {
		line = line[:maxLen-3] + "..."
	}

	switch entry.Level {
	case domain.LogError:
		return p.styles.Error.Render(line)
	case domain.LogWarn:
		return p.styles.Warning.Render(line)
	default:
		return p.styles.Muted.Render(line)
	}
}
