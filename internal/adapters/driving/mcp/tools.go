package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// SearchKnowledgeInput is the input schema for the search_knowledge tool.
type SearchKnowledgeInput struct {
	Query   string   `json:"query" jsonschema:"natural language query to search for"`
	TopK    int      `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5, max 10)"`
	Sources []string `json:"sources,omitempty" jsonschema:"optional: filter results to specific source documents"`
}

// SearchKnowledgeOutput is the output schema for the search_knowledge tool.
type SearchKnowledgeOutput struct {
	Query   string            `json:"query"`
	Results []domain.QueryHit `json:"results"`
	Total   int               `json:"total"`
}

// ListSourcesInput is the (empty) input schema for list_knowledge_sources.
type ListSourcesInput struct{}

// ListSourcesOutput is the output schema for the list_knowledge_sources tool.
type ListSourcesOutput struct {
	Sources []domain.SourceInfo `json:"sources"`
	Stats   SourceStats         `json:"stats"`
}

// SourceStats summarises the knowledge base for the listing tool.
type SourceStats struct {
	TotalSources int `json:"totalSources"`
	TotalChunks  int `json:"totalChunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_knowledge",
		Description: "Search the knowledge base for relevant information. " +
			"Returns the most similar indexed chunks with their source " +
			"document, page and relevance score. Use this tool when you " +
			"need authoritative information from the indexed documents.",
	}, s.handleSearchKnowledge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list_knowledge_sources",
		Description: "List all documents in the knowledge base with their " +
			"page counts, indexed chunk counts and main topics. Use this " +
			"tool to discover what knowledge is available before searching.",
	}, s.handleListSources)
}

// handleSearchKnowledge handles the search_knowledge tool invocation.
func (s *Server) handleSearchKnowledge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchKnowledgeInput,
) (*mcp.CallToolResult, SearchKnowledgeOutput, error) {
	opts := domain.QueryOptions{
		TopK:    input.TopK,
		Sources: input.Sources,
	}

	result, err := s.ports.Query.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchKnowledgeOutput{}, err
	}

	output := SearchKnowledgeOutput{
		Query:   result.Query,
		Results: result.Results,
		Total:   result.Total,
	}

	return textResult(formatSearchResults(result)), output, nil
}

// handleListSources handles the list_knowledge_sources tool invocation.
func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}

	stats, err := s.ports.Source.Stats(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}

	output := ListSourcesOutput{
		Sources: sources,
		Stats: SourceStats{
			TotalSources: stats.TotalSources,
			TotalChunks:  stats.TotalChunks,
		},
	}

	return textResult(formatSourceList(sources, stats)), output, nil
}

// textResult wraps markdown text as a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
