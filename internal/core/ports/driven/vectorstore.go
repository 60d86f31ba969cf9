package driven

import (
	"context"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// VectorStore persists chunks and sources and answers exact
// nearest-neighbour queries by brute-force cosine scan.
type VectorStore interface {
	// Initialize idempotently ensures the persisted schema exists.
	Initialize(ctx context.Context) error

	// InsertChunk appends one chunk row and returns its assigned ID.
	// The embedding is stored as a fixed-width binary encoding of
	// 32-bit floats. Invalidates the embedding cache.
	InsertChunk(ctx context.Context, content, source string, page, chunkIndex int, embedding []float32) (int64, error)

	// PutSource upserts a source by name with a refreshed timestamp.
	// Replacing a source does not delete its previously stored chunks;
	// indexing runs always Clear first, so orphans cannot arise through
	// the supported pipeline.
	PutSource(ctx context.Context, name, path string, pages int) error

	// Search returns up to topK chunks ordered by ascending cosine
	// distance to the query vector, optionally filtered to the given
	// source names. A candidate with no cached embedding sorts last
	// with distance +Inf rather than failing the query.
	Search(ctx context.Context, query []float32, topK int, sources []string) ([]domain.SearchResult, error)

	// ListSources returns one entry per source with its live chunk count.
	ListSources(ctx context.Context) ([]domain.SourceInfo, error)

	// Stats returns store-wide counts.
	Stats(ctx context.Context) (domain.Stats, error)

	// Clear deletes all chunks and sources and invalidates the cache.
	Clear(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
