package sqlite

import (
	"context"
	"sync"
)

// embeddingCache is a read-through cache of decoded chunk embeddings,
// keyed by chunk ID. It is invalidated on every insert and clear and
// lazily rebuilt on the next search. The mutex guards against a reader
// observing a half-populated map when the MCP server handles concurrent
// tool calls; the store itself still assumes a single writer.
type embeddingCache struct {
	mu      sync.Mutex
	vectors map[int64][]float32
}

// Invalidate drops the cached vectors. The next EnsureLoaded rebuilds.
func (c *embeddingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors = nil
}

// EnsureLoaded returns the cached vectors, calling load to rebuild them
// first if the cache was invalidated. The returned map must be treated
// as read-only.
func (c *embeddingCache) EnsureLoaded(
	ctx context.Context,
	load func(context.Context) (map[int64][]float32, error),
) (map[int64][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vectors != nil {
		return c.vectors, nil
	}

	vectors, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.vectors = vectors
	return c.vectors, nil
}
