package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/knowledge-rag/internal/adapters/driven/extract"
	"github.com/praxishq/knowledge-rag/internal/adapters/driven/storage/sqlite"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
)

// stubEmbedder is a deterministic embedding service for tests. It maps
// text to a three-dimensional vector by keyword occurrence so that
// similarity ordering is predictable.
type stubEmbedder struct {
	pingErr error
	failOn  string
}

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failOn != "" && strings.Contains(text, e.failOn) {
		return nil, errors.New("embedding refused")
	}
	v := []float32{0, 0, 1}
	if strings.Contains(text, "gravity") {
		v = []float32{1, 0, 0}
	} else if strings.Contains(text, "cooking") {
		v = []float32{0, 1, 0}
	}
	return v, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int            { return 3 }
func (e *stubEmbedder) ModelName() string          { return "stub-embed" }
func (e *stubEmbedder) Ping(context.Context) error { return e.pingErr }
func (e *stubEmbedder) Close() error               { return nil }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "knowledge.db"))
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

// A paragraph comfortably above the minimum chunk length.
func para(topic string) string {
	return "This paragraph discusses " + topic + " in enough detail that the chunker keeps it as a searchable chunk of text."
}

func TestIndexService_Run(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	embedder := &stubEmbedder{}
	svc := NewIndexService(store, embedder, extract.DefaultRegistry(), nil)

	dir := t.TempDir()
	// The two physics paragraphs fit in a single 500-char chunk.
	physics := para("gravity") + "\n\n" + para("gravity and orbits")
	recipes := para("cooking")
	writeDoc(t, dir, "physics.md", physics)
	writeDoc(t, dir, "recipes.txt", recipes)
	writeDoc(t, dir, "image.png", "not indexable")

	summary, err := svc.Run(ctx, dir)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 2, summary.Indexed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 2, summary.Chunks)

	// Tokens are estimated per file from the extracted text length.
	wantTokens := (len(physics)+3)/4 + (len(recipes)+3)/4
	assert.Equal(t, wantTokens, summary.EstimatedTokens)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalChunks)
	assert.Equal(t, 2, stats.TotalSources)

	sources, err := store.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
}

func TestIndexService_Run_SkipsFailingFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	embedder := &stubEmbedder{failOn: "poison"}
	svc := NewIndexService(store, embedder, extract.DefaultRegistry(), nil)

	dir := t.TempDir()
	writeDoc(t, dir, "bad.md", para("poison that the embedder rejects"))
	writeDoc(t, dir, "good.md", para("gravity"))

	summary, err := svc.Run(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Chunks)

	// Only the good file's source is recorded.
	sources, err := store.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "good.md", sources[0].Name)
}

func TestIndexService_Run_RebuildClearsPreviousIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewIndexService(store, &stubEmbedder{}, extract.DefaultRegistry(), nil)

	dir := t.TempDir()
	writeDoc(t, dir, "old.md", para("gravity"))

	_, err := svc.Run(ctx, dir)
	require.NoError(t, err)

	// Replace the corpus and re-run.
	require.NoError(t, os.Remove(filepath.Join(dir, "old.md")))
	writeDoc(t, dir, "new.md", para("cooking"))

	summary, err := svc.Run(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)

	sources, err := store.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "new.md", sources[0].Name)
}

func TestIndexService_Run_UnreadableDirectory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewIndexService(store, &stubEmbedder{}, extract.DefaultRegistry(), nil)

	// Seed the store, then attempt a run against a missing directory.
	writeDocDir := t.TempDir()
	writeDoc(t, writeDocDir, "keep.md", para("gravity"))
	_, err := svc.Run(ctx, writeDocDir)
	require.NoError(t, err)

	_, err = svc.Run(ctx, filepath.Join(writeDocDir, "missing"))
	require.Error(t, err)

	// The failed run must not have cleared the existing index.
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalChunks)
}

func TestIndexService_Run_PingFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	embedder := &stubEmbedder{pingErr: errors.New("connection refused")}
	svc := NewIndexService(store, embedder, extract.DefaultRegistry(), nil)

	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", para("gravity"))

	summary, err := svc.Run(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
}

func TestIndexService_Run_EmptyFileStillRecordsSource(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewIndexService(store, &stubEmbedder{}, extract.DefaultRegistry(), nil)

	dir := t.TempDir()
	writeDoc(t, dir, "empty.md", "too short")

	summary, err := svc.Run(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 0, summary.Chunks)
	// Extracted text still counts toward the token estimate.
	assert.Equal(t, (len("too short")+3)/4, summary.EstimatedTokens)

	sources, err := store.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, 0, sources[0].Chunks)
}
