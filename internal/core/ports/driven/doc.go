// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VectorStore: Persists chunks and sources, answers similarity queries
//   - EmbeddingService: Turns text into fixed-dimension vectors
//   - Extractor / ExtractorRegistry: Produce plain text from documents
//
// # Optional Interfaces
//
//   - ConfigStore: File-backed application configuration
//   - CommandRunner: Subprocess seam used by the PDF extractor
package driven
