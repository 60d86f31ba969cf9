package domain

import "time"

// MinChunkLength is the minimum content length for a chunk to be kept.
// Spans shorter than this after trimming carry too little context to be
// useful search results and are discarded by the chunker.
const MinChunkLength = 50

// ChunkSpan is a chunker-produced span of document text before embedding.
// Index is the ordinal position within the source document.
type ChunkSpan struct {
	// Content is the trimmed text of the span.
	Content string

	// Page is the document page the span starts on (1-based).
	Page int

	// Index is the ordinal position within the source, starting at 0.
	Index int
}

// Chunk represents a stored span of document text with its embedding.
type Chunk struct {
	// ID is the store-assigned identifier.
	ID int64

	// Content is the text content of this chunk.
	Content string

	// Source is the filename of the document this chunk came from.
	Source string

	// Page is the document page this chunk starts on (1-based).
	Page int

	// ChunkIndex is the ordinal position within the source document.
	ChunkIndex int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// Source represents a single ingested document.
type Source struct {
	// Name is the unique key for the source (filename).
	Name string

	// Path is the original location the document was read from.
	Path string

	// Pages is the page count reported by extraction.
	Pages int

	// IndexedAt is when the source was last indexed.
	IndexedAt time.Time
}

// SourceInfo summarises an indexed source for listings.
type SourceInfo struct {
	// Name is the source filename.
	Name string `json:"name"`

	// Pages is the page count recorded at indexing time.
	Pages int `json:"pages"`

	// Chunks is the live count of chunk rows for this source.
	Chunks int `json:"chunks"`

	// Topics are heuristic labels derived from the filename.
	Topics []string `json:"topics"`
}

// Stats holds simple store-wide counts.
type Stats struct {
	TotalChunks  int `json:"total_chunks"`
	TotalSources int `json:"total_sources"`
}
