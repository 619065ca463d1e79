// Package nodedetail shows details for a single graph node.
package nodedetail

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// View renders one selected graph node.
type View struct {
	styles *styles.Styles
	node   *domain.GraphNode
	width  int
	height int
	ready  bool
}

// NewView creates a new node detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetNode sets the node to display.
func (v *View) SetNode(node domain.GraphNode) {
	v.node = &node
}

// Node returns the displayed node.
func (v *View) Node() *domain.GraphNode {
	return v.node
}

// Update handles messages for the node detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewGraph}
			}
		}
	}
	return v, nil
}

// View renders the node detail view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Node"))
	b.WriteString("\n\n")

	if v.node == nil {
		b.WriteString(v.styles.Muted.Render("No node selected."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Node(v.node.Group).Render("● "))
	b.WriteString(v.styles.Subtitle.Render(v.node.Label))
	b.WriteString("\n\n")

	rows := []struct{ name, value string }{
		{"ID", v.node.ID},
		{"Group", v.node.Group},
		{"Info", v.node.Info},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(v.styles.Normal.Render(row.name + ":  "))
		b.WriteString(v.styles.Muted.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[esc] back to graph"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
