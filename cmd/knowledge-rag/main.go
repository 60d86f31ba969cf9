// knowledge-rag is a local RAG knowledge base over PDF, markdown and
// text documents, with CLI and MCP server frontends.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/praxishq/knowledge-rag/internal/adapters/driving/cli"
)

func main() {
	// Optional .env for provider credentials and endpoints.
	godotenv.Load() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
