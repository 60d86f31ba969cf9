package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesJSON bool

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List indexed documents",
	RunE:  runSources,
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}

	stats, err := sourceService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	if sourcesJSON {
		data, err := json.MarshalIndent(map[string]any{
			"sources": sources,
			"stats":   stats,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sources: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(sources) == 0 {
		cmd.Println("Knowledge base is empty. Run 'knowledge-rag index' first.")
		return nil
	}

	cmd.Printf("%s\n\n", headerStyle.Render(
		fmt.Sprintf("%d documents, %d chunks", stats.TotalSources, stats.TotalChunks)))
	for _, s := range sources {
		cmd.Printf("  %s\n", accentStyle.Render(s.Name))
		cmd.Printf("    %s %d pages, %d chunks\n", labelStyle.Render("size:"), s.Pages, s.Chunks)
		cmd.Printf("    %s %s\n", labelStyle.Render("topics:"), strings.Join(s.Topics, ", "))
	}

	return nil
}
