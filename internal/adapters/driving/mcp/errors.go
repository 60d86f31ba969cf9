// Package mcp provides an MCP (Model Context Protocol) server adapter for
// knowledge-rag. It exposes the knowledge base to AI assistants as search
// and listing tools.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("mcp: source service is required")
