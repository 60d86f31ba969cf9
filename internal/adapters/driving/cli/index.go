package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Rebuild the knowledge base from a directory of documents",
	Long: `Clears the knowledge base, then extracts, chunks, embeds and stores
every supported document (.pdf, .md, .markdown, .txt) in the directory.
Without an argument the knowledge base's own document directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	dir := knowledgeLoc.DocsDir
	if len(args) > 0 {
		dir = args[0]
	}

	cmd.Printf("%s %s\n", headerStyle.Render("Indexing"), dir)
	cmd.Printf("  %s %s, chunk size %d, overlap %d\n\n",
		labelStyle.Render("model:"), embedService.ModelName(),
		textChunker.ChunkSize(), textChunker.Overlap())

	summary, err := indexService.Run(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("  %s %d/%d files\n", labelStyle.Render("Indexed:"), summary.Indexed, summary.Files)
	if summary.Skipped > 0 {
		cmd.Printf("  %s %d files\n", warnStyle.Render("Skipped:"), summary.Skipped)
	}
	cmd.Printf("  %s %d\n", labelStyle.Render("Chunks:"), summary.Chunks)
	cmd.Printf("  %s ~%d\n", labelStyle.Render("Tokens:"), summary.EstimatedTokens)
	cmd.Printf("  %s %s\n", labelStyle.Render("Took:"), summary.Duration.Round(time.Millisecond))

	return nil
}
