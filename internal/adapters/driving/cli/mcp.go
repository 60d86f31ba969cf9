package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praxishq/knowledge-rag/internal/adapters/driving/mcp"
	"github.com/praxishq/knowledge-rag/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the knowledge base
to AI assistants via the search_knowledge and list_knowledge_sources tools.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  knowledge-rag mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  knowledge-rag mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "knowledge-rag": {
        "command": "/path/to/knowledge-rag",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := cmd.Context()
	logger.Info("Serving %s knowledge base at %s", knowledgeLoc.Type, knowledgeLoc.DBPath)

	if stats, err := sourceService.Stats(ctx); err == nil && stats.TotalChunks == 0 {
		logger.Warn("Knowledge base is empty. Run 'knowledge-rag index' first.")
	}
	if err := embedService.Ping(ctx); err != nil {
		logger.Warn("Embedding service unreachable: %v", err)
	}

	ports := &mcp.Ports{
		Query:  queryService,
		Source: sourceService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
