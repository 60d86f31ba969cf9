package mcp

import (
	"fmt"
	"math"
	"strings"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// formatSearchResults renders a query result as markdown for display in
// the calling assistant.
func formatSearchResults(result *domain.QueryResult) string {
	if result.Total == 0 {
		return fmt.Sprintf("No results found for query: %q", result.Query)
	}

	var b strings.Builder
	b.WriteString("## Knowledge Base Search Results\n")
	fmt.Fprintf(&b, "**Query:** %s\n", result.Query)
	fmt.Fprintf(&b, "**Found:** %d relevant chunks\n\n", result.Total)

	for i, r := range result.Results {
		fmt.Fprintf(&b, "### Result %d (%d%% match)\n", i+1, int(math.Round(r.Relevance*100)))
		fmt.Fprintf(&b, "**Source:** %s (page %d)\n\n", r.Source, r.Page)
		b.WriteString(r.Content)
		b.WriteString("\n\n---\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// formatSourceList renders the indexed sources as a markdown table.
func formatSourceList(sources []domain.SourceInfo, stats domain.Stats) string {
	var b strings.Builder
	b.WriteString("## Knowledge Base Sources\n")
	fmt.Fprintf(&b, "**Total:** %d documents, %d chunks\n\n", stats.TotalSources, stats.TotalChunks)

	b.WriteString("| Document | Pages | Chunks | Topics |\n")
	b.WriteString("|----------|-------|--------|--------|\n")
	for _, s := range sources {
		fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", s.Name, s.Pages, s.Chunks, strings.Join(s.Topics, ", "))
	}

	return b.String()
}
