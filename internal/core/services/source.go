package services

import (
	"context"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService exposes read access to indexed sources.
type SourceService struct {
	store driven.VectorStore
}

// NewSourceService creates a new source service.
func NewSourceService(store driven.VectorStore) *SourceService {
	return &SourceService{store: store}
}

// List returns every indexed source with live chunk counts.
func (s *SourceService) List(ctx context.Context) ([]domain.SourceInfo, error) {
	return s.store.ListSources(ctx)
}

// Stats returns store-wide counts.
func (s *SourceService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.Stats(ctx)
}
