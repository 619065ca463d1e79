// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Crisper. It exposes the local knowledge graph and document search
// to AI assistants.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrMissingGraphProvider is returned when the graph provider is not provided.
var ErrMissingGraphProvider = errors.New("mcp: graph provider is required")
