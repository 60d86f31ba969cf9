package driving

import (
	"context"
	"time"
)

// IndexSummary reports the outcome of an indexing run.
type IndexSummary struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Files is the number of eligible files found.
	Files int

	// Indexed is the number of files stored successfully.
	Indexed int

	// Skipped is the number of files skipped after per-file failures.
	Skipped int

	// Chunks is the total number of chunks stored.
	Chunks int

	// EstimatedTokens approximates embedded tokens as the per-file sum
	// of ceil(len(extracted text)/4).
	EstimatedTokens int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// IndexService rebuilds the knowledge base from a source directory.
type IndexService interface {
	// Run clears the store, then extracts, chunks, embeds and stores
	// every eligible file in dir. A per-file failure is logged and
	// skipped; it never aborts the run.
	Run(ctx context.Context, dir string) (*IndexSummary, error)
}
