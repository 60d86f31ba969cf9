package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/praxishq/knowledge-rag/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-index automatically when documents change",
	Long: `Watches a document directory and rebuilds the knowledge base after
changes settle. Edits arriving within the debounce window coalesce into
a single indexing run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-indexing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	dir := knowledgeLoc.DocsDir
	if len(args) > 0 {
		dir = args[0]
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// Index once up front so the watcher starts from a current state.
	if _, err := indexService.Run(cmd.Context(), dir); err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}

	cmd.Printf("%s %s\n", headerStyle.Render("Watching"), dir)

	ctx := cmd.Context()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Change detected: %s", event)
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-pending:
			pending = nil
			summary, err := indexService.Run(ctx, dir)
			if err != nil {
				logger.Warn("Re-indexing failed: %v", err)
				continue
			}
			cmd.Printf("Re-indexed %d files (%d chunks)\n", summary.Indexed, summary.Chunks)
		}
	}
}
