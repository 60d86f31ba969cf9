package mcp

import (
	"github.com/praxishq/knowledge-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers similarity queries.
	Query driving.QueryService

	// Source lists indexed sources.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
