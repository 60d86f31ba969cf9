package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/knowledge-rag/internal/chunker"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driving"
	"github.com/praxishq/knowledge-rag/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService rebuilds the knowledge base from a directory of documents.
// Every run is a full rebuild: the store is cleared, then each eligible
// file is extracted, chunked, embedded and stored. A failure in one file
// never aborts the run; the file is logged and skipped.
type IndexService struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
	registry driven.ExtractorRegistry
	chunker  *chunker.Chunker
}

// NewIndexService creates a new index service.
// A nil chunker uses the default chunk size and overlap.
func NewIndexService(
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	registry driven.ExtractorRegistry,
	ch *chunker.Chunker,
) *IndexService {
	if ch == nil {
		ch = chunker.New()
	}
	return &IndexService{
		store:    store,
		embedder: embedder,
		registry: registry,
		chunker:  ch,
	}
}

// Run rebuilds the knowledge base from dir.
func (s *IndexService) Run(ctx context.Context, dir string) (*driving.IndexSummary, error) {
	start := time.Now()
	summary := &driving.IndexSummary{RunID: uuid.New().String()}

	logger.Section("Indexing")
	logger.Info("Run %s: indexing %s with model %s", summary.RunID, dir, s.embedder.ModelName())

	// 1. Check the embedding service is reachable. An unreachable service
	// is worth a warning up front, but individual files still get their
	// own chance: the endpoint may come up mid-run.
	if err := s.embedder.Ping(ctx); err != nil {
		logger.Warn("Embedding service unreachable: %v", err)
	}

	// 2. List eligible files before clearing, so an unreadable directory
	// leaves the existing knowledge base intact.
	files, err := s.eligibleFiles(dir)
	if err != nil {
		return nil, err
	}
	summary.Files = len(files)

	// 3. Full rebuild: drop everything previously stored.
	if err := s.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear store: %w", err)
	}

	// 4. Process each file independently.
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		chunks, chars, err := s.indexFile(ctx, name, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			summary.Skipped++
			continue
		}

		summary.Indexed++
		summary.Chunks += chunks
		summary.EstimatedTokens += (chars + 3) / 4
	}

	summary.Duration = time.Since(start)
	logger.Info("Run %s: %d/%d files indexed, %d chunks, ~%d tokens in %s",
		summary.RunID, summary.Indexed, summary.Files, summary.Chunks,
		summary.EstimatedTokens, summary.Duration.Round(time.Millisecond))

	return summary, nil
}

// eligibleFiles returns the names of supported files in dir, in the
// lexical order os.ReadDir provides. Subdirectories are not descended.
func (s *IndexService) eligibleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string //nolint:prealloc
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := s.registry.ForPath(entry.Name()); err != nil {
			logger.Debug("Ignoring unsupported file %s", entry.Name())
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// indexFile extracts, chunks, embeds and stores a single file. It
// returns the number of chunks stored and the length of the extracted
// text, which feeds the run's token estimate. Panics from extraction or
// embedding are converted to errors so one bad file cannot take down
// the run.
func (s *IndexService) indexFile(ctx context.Context, name, path string) (chunks, chars int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic indexing %s: %v", name, r)
		}
	}()

	extractor, err := s.registry.ForPath(path)
	if err != nil {
		return 0, 0, err
	}

	result, err := extractor.Extract(ctx, path)
	if err != nil {
		return 0, 0, err
	}
	chars = len(result.Text)

	spans := s.chunker.Chunk(result.Text)
	if len(spans) == 0 {
		logger.Debug("%s produced no chunks", name)
		if err := s.store.PutSource(ctx, name, path, result.PageCount); err != nil {
			return 0, 0, fmt.Errorf("store source: %w", err)
		}
		return 0, chars, nil
	}

	texts := make([]string, len(spans))
	for i, span := range spans {
		texts[i] = span.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, 0, fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(spans) {
		return 0, 0, fmt.Errorf("embed: got %d embeddings for %d chunks", len(embeddings), len(spans))
	}

	for i, span := range spans {
		if _, err := s.store.InsertChunk(ctx, span.Content, name, span.Page, span.Index, embeddings[i]); err != nil {
			return 0, 0, fmt.Errorf("store chunk %d: %w", span.Index, err)
		}
	}

	if err := s.store.PutSource(ctx, name, path, result.PageCount); err != nil {
		return 0, 0, fmt.Errorf("store source: %w", err)
	}

	logger.Debug("Indexed %s: %d chunks across %d pages", name, len(spans), result.PageCount)
	return len(spans), chars, nil
}
