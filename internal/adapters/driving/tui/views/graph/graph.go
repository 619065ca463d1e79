// Package graph provides the knowledge graph view for the TUI.
package graph

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

// Zoom limits. Link labels for unrelated links appear at or above the
// threshold; links touching the hovered node always show theirs.
const (
	zoomMin            = 0.25
	zoomMax            = 4.0
	zoomStep           = 0.25
	linkLabelThreshold = 1.0
)

// View is the knowledge graph view.
type View struct {
	styles   *styles.Styles
	graph    driving.GraphProvider
	pipeline driving.PipelineService

	data    *domain.GraphData
	mode    domain.GraphViewMode
	epoch   uint64
	hovered int
	zoom    float64
	fit     bounds
	fitted  bool
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new graph view.
func NewView(s *styles.Styles, graph driving.GraphProvider, pipeline driving.PipelineService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		graph:    graph,
		pipeline: pipeline,
		mode:     domain.ViewModeFull,
		zoom:     1.0,
		width:    80,
		height:   24,
	}
}

// Init initialises the view and loads the current snapshot.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the graph for the current mode at the current epoch.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	mode := v.mode
	epoch := v.pipeline.Snapshot().Epoch
	return func() tea.Msg {
		data, err := v.graph.Fetch(context.Background(), mode, epoch)
		return messages.GraphLoaded{Data: data, Epoch: epoch, Err: err}
	}
}

// Update handles messages for the graph view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.GraphLoaded:
		v.loading = false
		v.err = msg.Err
		// A failed refresh may still carry the previous snapshot.
		if msg.Data != nil {
			v.setData(msg.Data, msg.Epoch)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// setData installs a snapshot, runs the layout and fits the viewport.
// The fit happens once per snapshot; zooming afterwards never refits.
func (v *View) setData(data *domain.GraphData, epoch uint64) {
	sameSnapshot := v.data != nil && v.epoch == epoch && v.fitted
	v.data = data
	v.epoch = epoch

	runLayout(v.data)

	if !sameSnapshot {
		v.fit = fitBounds(v.data.Nodes)
		v.fitted = true
		v.hovered = 0
		v.zoom = 1.0
	}
	if v.hovered >= len(v.data.Nodes) {
		v.hovered = 0
	}
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "right":
		v.moveHover(1)
	case "down", "j", "left":
		v.moveHover(-1)

	case "+", "=":
		v.zoom = clampZoom(v.zoom + zoomStep)
	case "-":
		v.zoom = clampZoom(v.zoom - zoomStep)

	case "m":
		if v.mode == domain.ViewModeFull {
			v.mode = domain.ViewModeEntities
		} else {
			v.mode = domain.ViewModeFull
		}
		v.fitted = false
		return v, v.Reload()

	case "r":
		return v, v.Reload()

	case "enter":
		if node := v.HoveredNode(); node != nil {
			v.graph.LogNodeClick(node)
			selected := *node
			return v, func() tea.Msg {
				return messages.NodeSelected{Node: selected}
			}
		}

	case "tab":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}

	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

func (v *View) moveHover(delta int) {
	if v.data == nil || len(v.data.Nodes) == 0 {
		return
	}
	n := len(v.data.Nodes)
	v.hovered = ((v.hovered+delta)%n + n) % n
}

func clampZoom(z float64) float64 {
	if z < zoomMin {
		return zoomMin
	}
	if z > zoomMax {
		return zoomMax
	}
	return z
}

// View renders the graph view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Graph (%s, zoom %.2gx)", v.mode, v.zoom)
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading graph..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		if v.data != nil {
			b.WriteString(v.styles.Muted.Render("showing last good snapshot"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.data == nil || len(v.data.Nodes) == 0 {
		b.WriteString(v.styles.Muted.Render("Graph is empty. Ingest documents and build the graph first."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.renderCanvas())
	b.WriteString("\n")
	b.WriteString(v.renderHoverDetail())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderCanvas draws nodes and links onto a character grid.
func (v *View) renderCanvas() string {
	width := v.width - 2
	height := v.canvasHeight()
	if width < 10 {
		width = 10
	}

	type cell struct {
		ch      string
		group   string
		link    bool
		hovered bool
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	hoveredID := ""
	if node := v.HoveredNode(); node != nil {
		hoveredID = node.ID
	}

	// Links first so nodes draw over them.
	for _, l := range v.data.Links {
		if l.SourceRef == nil || l.TargetRef == nil {
			continue
		}
		x0, y0, ok0 := project(l.SourceRef.X, l.SourceRef.Y, v.fit, width, height, v.zoom)
		x1, y1, ok1 := project(l.TargetRef.X, l.TargetRef.Y, v.fit, width, height, v.zoom)
		if !ok0 || !ok1 {
			continue
		}
		connected := l.ConnectedTo(hoveredID)
		plotLine(x0, y0, x1, y1, func(x, y int) {
			if grid[y][x].ch == "" {
				grid[y][x] = cell{ch: "·", link: true, hovered: connected}
			}
		})
	}

	for i, n := range v.data.Nodes {
		x, y, ok := project(n.X, n.Y, v.fit, width, height, v.zoom)
		if !ok {
			continue
		}
		grid[y][x] = cell{ch: "●", group: n.Group, hovered: i == v.hovered}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := grid[y][x]
			switch {
			case c.ch == "":
				b.WriteString(" ")
			case c.hovered:
				b.WriteString(v.styles.Highlight.Render(c.ch))
			case c.link:
				b.WriteString(v.styles.Muted.Render(c.ch))
			default:
				b.WriteString(v.styles.Node(c.group).Render(c.ch))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderHoverDetail shows the hovered node and its links. Labels of
// unrelated links only appear above the zoom threshold.
func (v *View) renderHoverDetail() string {
	node := v.HoveredNode()
	if node == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Node(node.Group).Render("● "))
	b.WriteString(v.styles.Subtitle.Render(node.Label))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%s]", node.Group)))
	b.WriteString("\n")

	shown := 0
	for _, l := range v.data.Links {
		connected := l.ConnectedTo(node.ID)
		if !showLinkLabel(v.zoom, connected) {
			continue
		}
		if shown >= 4 {
			b.WriteString(v.styles.Muted.Render("  ..."))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("  %s -%s-> %s", endpointLabel(l.SourceRef, l.Source),
			l.Label, endpointLabel(l.TargetRef, l.Target))
		if connected {
			b.WriteString(v.styles.Highlight.Render(line))
		} else {
			b.WriteString(v.styles.Muted.Render(line))
		}
		b.WriteString("\n")
		shown++
	}
	return b.String()
}

// showLinkLabel reports whether a link's label is visible at the given
// zoom. Links touching the hovered node always show theirs.
func showLinkLabel(zoom float64, connected bool) bool {
	return connected || zoom >= linkLabelThreshold
}

func endpointLabel(ref *domain.GraphNode, id string) string {
	if ref != nil && ref.Label != "" {
		return ref.Label
	}
	return id
}

// plotLine visits every cell on the segment using Bresenham's walk.
func plotLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (v *View) canvasHeight() int {
	h := v.height - 12
	if h < 6 {
		h = 6
	}
	return h
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[j/k] hover  [enter] details  [+/-] zoom  [m] mode  [r] reload  [tab] documents  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// HoveredNode returns the node under the hover cursor, or nil.
func (v *View) HoveredNode() *domain.GraphNode {
	if v.data == nil || v.hovered < 0 || v.hovered >= len(v.data.Nodes) {
		return nil
	}
	return v.data.Nodes[v.hovered]
}

// Mode returns the active view mode.
func (v *View) Mode() domain.GraphViewMode {
	return v.mode
}

// Zoom returns the current zoom factor.
func (v *View) Zoom() float64 {
	return v.zoom
}

// Data returns the rendered snapshot.
func (v *View) Data() *domain.GraphData {
	return v.data
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
