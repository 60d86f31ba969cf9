package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// The returned slice matches the input order regardless of how the
	// underlying requests execute.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This must match the dimensions of vectors already in the store.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to warn early, never to abort an indexing run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
