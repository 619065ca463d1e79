// Package models provides the model catalog view for the TUI.
package models

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

// View is the model catalog and download view.
type View struct {
	styles *styles.Styles
	model  driving.ModelService

	entries     []domain.ModelEntry
	selected    int
	downloading string
	message     string
	err         error
	loading     bool

	width  int
	height int
	ready  bool
}

// NewView creates a new models view.
func NewView(s *styles.Styles, model driving.ModelService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		model:  model,
	}
}

// Init initialises the view and loads the catalog.
func (v *View) Init() tea.Cmd {
	return v.loadCatalog()
}

// loadCatalog returns a command that fetches the catalog.
func (v *View) loadCatalog() tea.Cmd {
	if v.model == nil {
		return nil
	}
	v.loading = true
	return func() tea.Msg {
		entries, err := v.model.List(context.Background())
		return messages.ModelsLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the models view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ModelsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.entries = msg.Entries
			v.err = nil
			if v.selected >= len(v.entries) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.ModelDownloaded:
		v.downloading = ""
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.message = fmt.Sprintf("%s downloaded", msg.Name)
			v.err = nil
		}
		return v, nil

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
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "enter":
		if v.downloading != "" || v.selected >= len(v.entries) || v.model == nil {
			return v, nil
		}
		entry := v.entries[v.selected]
		v.downloading = entry.Name
		v.message = ""
		v.err = nil
		return v, func() tea.Msg {
			err := v.model.Download(context.Background(), entry)
			return messages.ModelDownloaded{Name: entry.Name, Err: err}
		}
	case "r":
		return v, v.loadCatalog()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// View renders the models view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Models"))
	b.WriteString("\n\n")

	switch {
	case v.model == nil:
		b.WriteString(v.styles.Muted.Render("No model catalog configured."))
		b.WriteString("\n")
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading catalog..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("Catalog is empty."))
		b.WriteString("\n")
	default:
		for i, entry := range v.entries {
			b.WriteString(v.renderEntry(i, entry))
			b.WriteString("\n")
		}
	}

	if v.downloading != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Downloading " + v.downloading + "..."))
		b.WriteString("\n")
	}
	if v.message != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] download  [r] reload  [esc] back"))
	return b.String()
}

// renderEntry renders one catalog row.
func (v *View) renderEntry(index int, entry domain.ModelEntry) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	size := formatSize(entry.SizeBytes)
	line := fmt.Sprintf("%s%s  %s", indicator, entry.Name, size)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// formatSize renders a byte count for humans.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n > 0:
		return fmt.Sprintf("%d B", n)
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the loaded catalog.
func (v *View) Entries() []domain.ModelEntry {
	return v.entries
}

// SelectedIndex returns the selected entry index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
