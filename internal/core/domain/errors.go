package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// reachable. Queries fail without embeddings; indexing warns and
	// proceeds per file.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrExtractionFailed indicates document text could not be read or
	// parsed. Caught per file by the indexer, never aborts a run.
	ErrExtractionFailed = errors.New("extraction failed")
)
