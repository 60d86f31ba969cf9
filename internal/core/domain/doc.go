// Package domain defines the core business entities for the knowledge base.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A stored span of document text with its embedding
//   - ChunkSpan: A chunker-produced span before embedding
//   - Source: An ingested document, identified by filename
//   - SearchResult: A stored chunk ranked by cosine distance
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
