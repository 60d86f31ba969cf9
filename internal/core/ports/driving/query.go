package driving

import (
	"context"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// QueryService answers similarity queries against the knowledge base.
type QueryService interface {
	// Search embeds the query text and returns the closest stored
	// chunks. An empty result is a normal outcome. Embedding failures
	// propagate to the caller.
	Search(ctx context.Context, query string, opts domain.QueryOptions) (*domain.QueryResult, error)
}
