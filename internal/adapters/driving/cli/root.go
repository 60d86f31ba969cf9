// Package cli provides the cobra command tree for knowledge-rag.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praxishq/knowledge-rag/internal/adapters/driven/config/file"
	"github.com/praxishq/knowledge-rag/internal/adapters/driven/embedding/ollama"
	"github.com/praxishq/knowledge-rag/internal/adapters/driven/embedding/openai"
	"github.com/praxishq/knowledge-rag/internal/adapters/driven/extract"
	"github.com/praxishq/knowledge-rag/internal/adapters/driven/storage/sqlite"
	"github.com/praxishq/knowledge-rag/internal/chunker"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driving"
	"github.com/praxishq/knowledge-rag/internal/core/services"
	"github.com/praxishq/knowledge-rag/internal/location"
	"github.com/praxishq/knowledge-rag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by initServices for the command handlers.
var (
	queryService  driving.QueryService
	indexService  driving.IndexService
	sourceService driving.SourceService

	knowledgeLoc *location.Location
	vectorStore  driven.VectorStore
	embedService driven.EmbeddingService
	configStore  driven.ConfigStore
	textChunker  *chunker.Chunker
)

var rootCmd = &cobra.Command{
	Use:   "knowledge-rag",
	Short: "Local RAG knowledge base with MCP integration",
	Long: `knowledge-rag indexes local documents (PDF, markdown, text) into a
SQLite vector store and answers similarity queries over them, either
from the command line or through an MCP server for AI assistants.

A directory containing .knowledge/ holds a project-local knowledge
base; otherwise the global base under ~/.knowledge-rag/data is used.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// initServices wires the adapters and core services before any command
// handler runs. Commands that never touch the knowledge base skip it.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	loc, err := location.Resolve(cwd)
	if err != nil {
		return fmt.Errorf("resolving knowledge base location: %w", err)
	}
	knowledgeLoc = loc
	logger.Debug("Using %s knowledge base at %s", loc.Type, loc.DBPath)

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg

	store, err := sqlite.NewStore(loc.DBPath)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	if err := store.Initialize(cmd.Context()); err != nil {
		store.Close() //nolint:errcheck
		return fmt.Errorf("initializing vector store: %w", err)
	}
	vectorStore = store

	embedder, err := newEmbedder(cfg)
	if err != nil {
		store.Close() //nolint:errcheck
		return err
	}
	embedService = embedder

	textChunker = newChunker(cfg)
	queryService = services.NewQueryService(store, embedder)
	indexService = services.NewIndexService(store, embedder, extract.DefaultRegistry(), textChunker)
	sourceService = services.NewSourceService(store)

	return nil
}

func closeServices() error {
	if embedService != nil {
		embedService.Close() //nolint:errcheck
	}
	if vectorStore != nil {
		return vectorStore.Close()
	}
	return nil
}

// newEmbedder selects the embedding provider from environment and config.
// The environment wins so MCP clients can configure the server without a
// config file.
func newEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")
	if v := os.Getenv("KNOWLEDGE_EMBEDDING_PROVIDER"); v != "" {
		provider = v
	}

	model := cfg.GetString("embedding.model")
	if v := os.Getenv("OLLAMA_EMBED_MODEL"); v != "" {
		model = v
	}

	switch provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  model,
		})
	case "", "ollama":
		baseURL := cfg.GetString("embedding.base_url")
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			baseURL = v
		}
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           baseURL,
			Model:             model,
			RequestsPerSecond: float64(cfg.GetInt("embedding.requests_per_second")),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// newChunker builds a chunker from config, falling back to defaults.
func newChunker(cfg driven.ConfigStore) *chunker.Chunker {
	var opts []chunker.Option
	if size := cfg.GetInt("chunker.size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunker.overlap"); overlap > 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return chunker.New(opts...)
}
