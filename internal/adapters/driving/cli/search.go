package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

var (
	searchTopK    int
	searchSources []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Embeds the query and returns the most similar indexed chunks,
ranked by cosine similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (default 5, max 10)")
	searchCmd.Flags().StringArrayVar(&searchSources, "source", nil, "filter results to specific source documents")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := domain.QueryOptions{
		TopK:    searchTopK,
		Sources: searchSources,
	}

	result, err := queryService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}

	return outputSearchText(cmd, result)
}

func outputSearchJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Total == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("%s\n\n", headerStyle.Render(fmt.Sprintf("%d results", result.Total)))
	for i, hit := range result.Results {
		score := accentStyle.Render(fmt.Sprintf("%.2f", hit.Relevance))
		cmd.Printf("  [%d] %s (page %d, %s)\n", i+1, hit.Source, hit.Page, score)
		cmd.Printf("      %s\n\n", hit.Content)
	}

	return nil
}
