package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// SearchInput is the input schema for the search_docs tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question to find supporting document chunks for"`
}

// SearchOutput is the output schema for the search_docs tool.
type SearchOutput struct {
	// Context is the best matching chunks concatenated into one block.
	Context string `json:"context"`
}

// GraphInput is the input schema for the fetch_graph_data tool.
type GraphInput struct {
	Mode string `json:"mode,omitempty" jsonschema:"graph view mode: full (default) or entities"`
}

// GraphOutput is the output schema for the fetch_graph_data tool.
type GraphOutput struct {
	Nodes []GraphNodeOutput `json:"nodes"`
	Links []GraphLinkOutput `json:"links"`
}

// GraphNodeOutput represents a single graph node.
type GraphNodeOutput struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Label string `json:"label"`
	Info  string `json:"info,omitempty"`
}

// GraphLinkOutput represents a single graph edge.
type GraphLinkOutput struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Semantic search over the ingested documents, returning a context block",
	}, s.handleSearchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_graph_data",
		Description: "Fetch the current knowledge graph as nodes and edges",
	}, s.handleFetchGraph)
}

// handleSearchDocs handles the search_docs tool invocation.
func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	block, err := s.ports.Document.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{Context: block}, nil
}

// handleFetchGraph handles the fetch_graph_data tool invocation.
func (s *Server) handleFetchGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GraphInput,
) (*mcp.CallToolResult, GraphOutput, error) {
	mode := domain.ViewModeFull
	if input.Mode == string(domain.ViewModeEntities) {
		mode = domain.ViewModeEntities
	}

	var epoch uint64
	if s.ports.Pipeline != nil {
		epoch = s.ports.Pipeline.Snapshot().Epoch
	}

	data, err := s.ports.Graph.Fetch(ctx, mode, epoch)
	if err != nil {
		return nil, GraphOutput{}, err
	}

	output := GraphOutput{
		Nodes: make([]GraphNodeOutput, len(data.Nodes)),
		Links: make([]GraphLinkOutput, len(data.Links)),
	}
	for i, n := range data.Nodes {
		output.Nodes[i] = GraphNodeOutput{
			ID:    n.ID,
			Group: n.Group,
			Label: n.Label,
			Info:  n.Info,
		}
	}
	for i, l := range data.Links {
		output.Links[i] = GraphLinkOutput{
			Source: l.Source,
			Target: l.Target,
			Label:  l.Label,
		}
	}

	return nil, output, nil
}
