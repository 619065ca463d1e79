// Package documents provides the document list view component for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// View is the document list view. Documents expand in place to show
// their chunks with per-field display fallbacks; each chunk row can
// additionally reveal its raw content.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService

	documents    []domain.DocumentRecord
	expanded     map[string]bool
	revealed     map[string]bool
	selected     int
	scrollOffset int
	watcher      *watcher

	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		documents:       []domain.DocumentRecord{},
		expanded:        map[string]bool{},
		revealed:        map[string]bool{},
	}
}

// row addresses one selectable line: a document, or one chunk of an
// expanded document.
type row struct {
	doc   int
	chunk int // -1 for a document row
}

// rows flattens the visible hierarchy into the current selection order.
func (v *View) rows() []row {
	rows := make([]row, 0, len(v.documents))
	for i := range v.documents {
		rows = append(rows, row{doc: i, chunk: -1})
		if v.expanded[v.documents[i].ID] {
			for j := range v.documents[i].Chunks {
				rows = append(rows, row{doc: i, chunk: j})
			}
		}
	}
	return rows
}

// Init initialises the view and loads the document list.
func (v *View) Init() tea.Cmd {
	return v.loadDocuments()
}

// loadDocuments returns a command that loads all documents.
func (v *View) loadDocuments() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		docs, err := v.documentService.List(context.Background())
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// WatchSource starts watching the source directory and returns the
// command waiting for the first change. An empty path stops watching.
func (v *View) WatchSource(path string) tea.Cmd {
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
	if path == "" {
		return nil
	}

	w, err := newWatcher(path)
	if err != nil {
		// Watching is best effort; the list still reloads manually.
		return nil
	}
	v.watcher = w
	return v.watcher.waitCmd()
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.documents = msg.Documents
			v.err = nil
			if v.selected >= len(v.rows()) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.SourceChanged:
		// Reload and re-arm the watcher.
		cmds := []tea.Cmd{v.loadDocuments()}
		if v.watcher != nil {
			cmds = append(cmds, v.watcher.waitCmd())
		}
		return v, tea.Batch(cmds...)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.rows())-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter", " ":
		v.toggleSelected()
	case "r":
		return v, v.loadDocuments()
	case "tab":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewGraph}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// toggleSelected expands a document row or reveals a chunk row's raw
// content.
func (v *View) toggleSelected() {
	rows := v.rows()
	if v.selected >= len(rows) {
		return
	}

	r := rows[v.selected]
	if r.chunk < 0 {
		id := v.documents[r.doc].ID
		v.expanded[id] = !v.expanded[id]
		// Collapsing removes rows below; keep the selection in range.
		if remaining := len(v.rows()); v.selected >= remaining && remaining > 0 {
			v.selected = remaining - 1
		}
		return
	}

	id := v.documents[r.doc].Chunks[r.chunk].ID
	v.revealed[id] = !v.revealed[id]
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns how many rows fit the viewport.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Documents (%d)", len(v.documents))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents ingested yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	rows := v.rows()
	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(rows) && i < v.scrollOffset+visibleItems; i++ {
		r := rows[i]
		doc := &v.documents[r.doc]
		if r.chunk < 0 {
			b.WriteString(v.renderDocument(i, doc))
			b.WriteString("\n")
		} else {
			b.WriteString(v.renderChunk(i, &doc.Chunks[r.chunk]))
		}
	}

	if len(rows) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(rows)),
			len(rows))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderDocument renders one document row.
func (v *View) renderDocument(index int, doc *domain.DocumentRecord) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	marker := "+"
	if v.expanded[doc.ID] {
		marker = "-"
	}

	line := fmt.Sprintf("%s%s %s  (%d chunks)", indicator, marker, doc.DisplayTitle(), len(doc.Chunks))
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderChunk renders one chunk row with display fallbacks. Raw content
// stays hidden until the row is toggled open.
func (v *View) renderChunk(index int, chunk *domain.ChunkRecord) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	marker := "+"
	if v.revealed[chunk.ID] {
		marker = "-"
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(indicator)
	b.WriteString(v.styles.Subtitle.Render(marker + " " + chunk.DisplayTitle()))
	b.WriteString("\n      ")
	b.WriteString(v.styles.Muted.Render(truncate(chunk.DisplaySummary(), v.width-8)))
	b.WriteString("\n")

	if tags := chunk.DisplayTags(); len(tags) > 0 {
		b.WriteString("      ")
		b.WriteString(v.styles.Help.Render("#" + strings.Join(tags, " #")))
		b.WriteString("\n")
	}

	if v.revealed[chunk.ID] {
		for _, line := range wrapLines(chunk.Content, v.width-8) {
			b.WriteString("      ")
			b.WriteString(v.styles.Normal.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// wrapLines hard-wraps text to the given rune width.
func wrapLines(s string, width int) []string {
	if width < 10 {
		width = 10
	}

	var out []string
	for _, line := range strings.Split(s, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}

func truncate(s string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] expand/reveal  [r] reload  [tab] graph  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current document list.
func (v *View) Documents() []domain.DocumentRecord {
	return v.documents
}

// SelectedIndex returns the selected row index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// IsExpanded reports whether the document with the given ID is expanded.
func (v *View) IsExpanded(id string) bool {
	return v.expanded[id]
}

// IsRevealed reports whether the chunk with the given ID shows its raw
// content.
func (v *View) IsRevealed(id string) bool {
	return v.revealed[id]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Close releases the directory watcher.
func (v *View) Close() {
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
}
