package graph

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// Force-directed layout parameters. The seed is fixed so the same
// snapshot always settles into the same arrangement.
const (
	layoutRepulsion = 1.0
	layoutRate      = 0.05
	layoutUpdates   = 30
	layoutTheta     = 0.1
	layoutMaxSteps  = 300
)

// runLayout positions every node with a force-directed pass and
// resolves link endpoint references. Positions are written into the
// nodes in place; the snapshot must be a private copy.
func runLayout(data *domain.GraphData) {
	if data == nil || len(data.Nodes) == 0 {
		return
	}

	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(data.Nodes))
	for i, n := range data.Nodes {
		id := int64(i)
		ids[n.ID] = id
		g.AddNode(simple.Node(id))
	}

	for _, l := range data.Links {
		src, okSrc := ids[l.Source]
		dst, okDst := ids[l.Target]
		if !okSrc || !okDst || src == dst {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(src), T: simple.Node(dst)})
	}

	eades := layout.EadesR2{
		Repulsion: layoutRepulsion,
		Rate:      layoutRate,
		Updates:   layoutUpdates,
		Theta:     layoutTheta,
		Src:       rand.NewPCG(1, 1),
	}
	optimizer := layout.NewOptimizerR2(g, eades.Update)
	for steps := 0; optimizer.Update() && steps < layoutMaxSteps; steps++ {
	}

	for i, n := range data.Nodes {
		coord := optimizer.Coord2(int64(i))
		n.X = coord.X
		n.Y = coord.Y
	}

	resolveRefs(data)
}

// resolveRefs points every link at its endpoint node structs.
func resolveRefs(data *domain.GraphData) {
	byID := make(map[string]*domain.GraphNode, len(data.Nodes))
	for _, n := range data.Nodes {
		byID[n.ID] = n
	}
	for _, l := range data.Links {
		l.SourceRef = byID[l.Source]
		l.TargetRef = byID[l.Target]
	}
}

// bounds is the world-space extent of a settled layout.
type bounds struct {
	minX, maxX float64
	minY, maxY float64
}

// fitBounds computes the extent covering every node. Computed once per
// snapshot when the layout settles; zooming afterwards never refits.
func fitBounds(nodes []*domain.GraphNode) bounds {
	if len(nodes) == 0 {
		return bounds{maxX: 1, maxY: 1}
	}

	b := bounds{
		minX: math.Inf(1), maxX: math.Inf(-1),
		minY: math.Inf(1), maxY: math.Inf(-1),
	}
	for _, n := range nodes {
		b.minX = math.Min(b.minX, n.X)
		b.maxX = math.Max(b.maxX, n.X)
		b.minY = math.Min(b.minY, n.Y)
		b.maxY = math.Max(b.maxY, n.Y)
	}

	// Degenerate single-point layouts still need a non-zero extent.
	if b.maxX-b.minX < 1e-9 {
		b.minX -= 0.5
		b.maxX += 0.5
	}
	if b.maxY-b.minY < 1e-9 {
		b.minY -= 0.5
		b.maxY += 0.5
	}
	return b
}

// project maps a world coordinate to a cell on a width x height grid,
// scaled around the bounds centre by zoom. The second return is false
// when the cell falls outside the grid.
func project(x, y float64, b bounds, width, height int, zoom float64) (int, int, bool) {
	if width < 1 || height < 1 || zoom <= 0 {
		return 0, 0, false
	}

	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	spanX := (b.maxX - b.minX) / zoom
	spanY := (b.maxY - b.minY) / zoom

	col := int(math.Round((x - cx + spanX/2) / spanX * float64(width-1)))
	// Terminal rows grow downward; world Y grows upward.
	row := int(math.Round((cy + spanY/2 - y) / spanY * float64(height-1)))

	if col < 0 || col >= width || row < 0 || row >= height {
		return 0, 0, false
	}
	return col, row, true
}
