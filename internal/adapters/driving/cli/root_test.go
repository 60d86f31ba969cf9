package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/knowledge-rag/internal/adapters/driven/config/file"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
)

func testConfig(t *testing.T, values map[string]any) driven.ConfigStore {
	t.Helper()

	// Neutralise environment overrides so the config values decide.
	t.Setenv("KNOWLEDGE_EMBEDDING_PROVIDER", "")
	t.Setenv("OLLAMA_EMBED_MODEL", "")
	t.Setenv("OLLAMA_BASE_URL", "")

	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, cfg.Set(k, v))
	}
	return cfg
}

func TestNewEmbedder_OllamaFromConfig(t *testing.T) {
	cfg := testConfig(t, map[string]any{
		"embedding.provider":            "ollama",
		"embedding.model":               "all-minilm",
		"embedding.requests_per_second": 5,
	})

	svc, err := newEmbedder(cfg)
	require.NoError(t, err)
	defer svc.Close() //nolint:errcheck

	assert.Equal(t, "all-minilm", svc.ModelName())
	assert.Equal(t, 384, svc.Dimensions())
}

func TestNewEmbedder_DefaultsToOllama(t *testing.T) {
	cfg := testConfig(t, nil)

	svc, err := newEmbedder(cfg)
	require.NoError(t, err)
	defer svc.Close() //nolint:errcheck

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
}

func TestNewEmbedder_UnknownProvider(t *testing.T) {
	cfg := testConfig(t, map[string]any{"embedding.provider": "pinecone"})

	_, err := newEmbedder(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pinecone")
}

func TestNewChunker_FromConfig(t *testing.T) {
	cfg := testConfig(t, map[string]any{
		"chunker.size":    800,
		"chunker.overlap": 150,
	})

	c := newChunker(cfg)
	assert.Equal(t, 800, c.ChunkSize())
	assert.Equal(t, 150, c.Overlap())
}
