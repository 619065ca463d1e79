package domain

// Node groups as stored and rendered. Group drives colour and glyph size.
const (
	GroupDocument = "document"
	GroupEntity   = "entity"
	GroupChunk    = "chunk"
	GroupEvent    = "event"
)

// Relation labels carried on graph links.
const (
	RelImported  = "imported"
	RelContains  = "contains"
	RelMentions  = "mentions"
	RelRelatesTo = "relates_to"
)

// Display sizes per node group.
const (
	ValEvent    = 20
	ValDocument = 15
	ValEntity   = 12
	ValChunk    = 5
)

// GraphViewMode selects which slice of the graph a fetch returns.
type GraphViewMode string

const (
	// ViewModeFull returns every node and edge.
	ViewModeFull GraphViewMode = "full"

	// ViewModeEntities returns entities and the documents mentioning them.
	ViewModeEntities GraphViewMode = "entities"
)

// GraphNode is a renderable node. X and Y are runtime layout state and
// are mutated in place by the layout engine; they are never persisted.
type GraphNode struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Label string `json:"label"`
	Info  string `json:"info,omitempty"`
	Val   int    `json:"val"`

	X float64 `json:"-"`
	Y float64 `json:"-"`
}

// GraphLink is a renderable edge. Source and Target are node IDs;
// SourceRef and TargetRef are resolved by the layout engine on first
// tick and are nil until then.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`

	SourceRef *GraphNode `json:"-"`
	TargetRef *GraphNode `json:"-"`
}

// GraphData is one complete snapshot of the graph. Snapshots are
// replaced wholesale; they are never merged or patched.
type GraphData struct {
	Nodes []*GraphNode `json:"nodes"`
	Links []*GraphLink `json:"links"`
}

// Clone returns a deep copy with fresh node structs and link refs
// cleared. The layout engine mutates node positions in place, so every
// consumer must receive its own copy.
func (g *GraphData) Clone() *GraphData {
	if g == nil {
		return nil
	}

	out := &GraphData{
		Nodes: make([]*GraphNode, len(g.Nodes)),
		Links: make([]*GraphLink, len(g.Links)),
	}

	for i, n := range g.Nodes {
		cp := *n
		out.Nodes[i] = &cp
	}

	for i, l := range g.Links {
		out.Links[i] = &GraphLink{
			Source: l.Source,
			Target: l.Target,
			Label:  l.Label,
		}
	}

	return out
}

// ConnectedTo reports whether the link touches the given node ID.
// A nil hover never matches.
func (l *GraphLink) ConnectedTo(nodeID string) bool {
	if nodeID == "" {
		return false
	}
	return l.Source == nodeID || l.Target == nodeID
}
