package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driving"
	"github.com/praxishq/knowledge-rag/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers similarity queries by embedding the query text
// and scanning the vector store.
type QueryService struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
}

// NewQueryService creates a new query service.
func NewQueryService(store driven.VectorStore, embedder driven.EmbeddingService) *QueryService {
	return &QueryService{
		store:    store,
		embedder: embedder,
	}
}

// Search embeds the query and returns the closest stored chunks.
func (s *QueryService) Search(ctx context.Context, query string, opts domain.QueryOptions) (*domain.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.QueryResult{Query: query, Results: []domain.QueryHit{}}, nil
	}

	topK := opts.TopK
	switch {
	case topK <= 0:
		topK = domain.DefaultTopK
	case topK > domain.MaxTopK:
		topK = domain.MaxTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.Search(ctx, embedding, topK, opts.Sources)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}

	logger.Debug("Query %q matched %d chunks (topK=%d)", query, len(results), topK)

	hits := make([]domain.QueryHit, len(results))
	for i, r := range results {
		hits[i] = domain.QueryHit{
			Content:   r.Chunk.Content,
			Source:    r.Chunk.Source,
			Page:      r.Chunk.Page,
			Relevance: math.Round(r.Relevance*100) / 100,
		}
	}

	return &domain.QueryResult{
		Query:   query,
		Results: hits,
		Total:   len(hits),
	}, nil
}
