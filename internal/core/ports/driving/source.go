package driving

import (
	"context"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// SourceService exposes read access to indexed sources.
type SourceService interface {
	// List returns every indexed source with live chunk counts and
	// derived topics. An empty list is a normal outcome.
	List(ctx context.Context) ([]domain.SourceInfo, error)

	// Stats returns store-wide counts.
	Stats(ctx context.Context) (domain.Stats, error)
}
