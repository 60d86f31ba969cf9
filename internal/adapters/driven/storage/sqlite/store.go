// Package sqlite provides the SQLite-backed vector store.
//
// Chunks and sources live in two tables created by embedded migrations.
// Embeddings are stored as little-endian float32 BLOBs and mirrored in a
// lazily rebuilt in-memory cache; similarity queries are an exact
// brute-force cosine scan over all candidates. That is adequate while the
// store holds hundreds to low thousands of chunks; Search is the one seam
// where an approximate index could later be substituted without touching
// callers.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/praxishq/knowledge-rag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/praxishq/knowledge-rag/internal/core/domain"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is the SQLite-backed vector store.
type Store struct {
	db    *sql.DB
	path  string
	cache embeddingCache
}

// NewStore opens (creating if necessary) the database at dbPath.
// WAL mode allows concurrent readers during a writer's transaction; the
// design still assumes a single writer process.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: %w: empty database path", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Store{
		db:   db,
		path: dbPath,
	}, nil
}

// Initialize runs all pending migrations. Safe to call repeatedly.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies pending .up.sql migrations in version order.
func (s *Store) migrate(ctx context.Context, fsys embed.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// InsertChunk appends one chunk row and invalidates the embedding cache.
func (s *Store) InsertChunk(
	ctx context.Context, content, source string, page, chunkIndex int, embedding []float32,
) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (content, source, page, chunk_index, embedding)
		VALUES (?, ?, ?, ?, ?)
	`, content, source, page, chunkIndex, float32SliceToBytes(embedding))
	if err != nil {
		return 0, fmt.Errorf("inserting chunk: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading chunk id: %w", err)
	}

	s.cache.Invalidate()

	return id, nil
}

// PutSource upserts a source by name with a refreshed timestamp.
// Chunks stored under the same source name are left in place; callers
// replacing a source without a preceding Clear inherit the old chunks.
func (s *Store) PutSource(ctx context.Context, name, path string, pages int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (name, path, pages, indexed_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path,
			pages = excluded.pages,
			indexed_at = CURRENT_TIMESTAMP
	`, name, path, pages)
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Search scans every candidate chunk and returns the topK closest by
// cosine distance.
func (s *Store) Search(
	ctx context.Context, query []float32, topK int, sources []string,
) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	vectors, err := s.cache.EnsureLoaded(ctx, s.loadEmbeddings)
	if err != nil {
		return nil, fmt.Errorf("loading embedding cache: %w", err)
	}

	candidates, err := s.candidateChunks(ctx, sources)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, chunk := range candidates {
		embedding, ok := vectors[chunk.ID]
		if !ok {
			// A missing cached embedding ranks last instead of failing
			results = append(results, domain.SearchResult{
				Chunk:     chunk,
				Distance:  math.Inf(1),
				Relevance: 0,
			})
			continue
		}

		distance := cosineDistance(query, embedding)
		results = append(results, domain.SearchResult{
			Chunk:     chunk,
			Distance:  distance,
			Relevance: 1 - distance,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ListSources returns one entry per source with a live chunk count taken
// from the chunks table, so counts reflect actual rows even if a source
// row was replaced without clearing chunks.
func (s *Store) ListSources(ctx context.Context) ([]domain.SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.pages, COUNT(c.id) AS chunks
		FROM sources s
		LEFT JOIN chunks c ON c.source = s.name
		GROUP BY s.name
		ORDER BY s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var infos []domain.SourceInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info domain.SourceInfo
		if err := rows.Scan(&info.Name, &info.Pages, &info.Chunks); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		info.Topics = domain.ExtractTopics(info.Name)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return infos, nil
}

// Stats returns store-wide counts.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&stats.TotalChunks); err != nil {
		return domain.Stats{}, fmt.Errorf("counting chunks: %w", err)
	}

	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sources")
	if err := row.Scan(&stats.TotalSources); err != nil {
		return domain.Stats{}, fmt.Errorf("counting sources: %w", err)
	}

	return stats, nil
}

// Clear deletes all chunks and sources and invalidates the cache.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sources"); err != nil {
		return fmt.Errorf("clearing sources: %w", err)
	}

	s.cache.Invalidate()

	return nil
}

// loadEmbeddings reads and decodes every stored embedding.
func (s *Store) loadEmbeddings(ctx context.Context) (map[int64][]float32, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, embedding FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	vectors := make(map[int64][]float32)
	for rows.Next() {
		var id int64
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		vectors[id] = bytesToFloat32Slice(blob)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	return vectors, nil
}

// candidateChunks loads chunk rows (without embeddings), optionally
// filtered to the given source names.
func (s *Store) candidateChunks(ctx context.Context, sources []string) ([]domain.Chunk, error) {
	query := "SELECT id, content, source, page, chunk_index FROM chunks"

	args := make([]any, 0, len(sources))
	if len(sources) > 0 {
		placeholders := strings.Repeat("?,", len(sources))
		query += " WHERE source IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, src := range sources {
			args = append(args, src)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.Content, &chunk.Source,
			&chunk.Page, &chunk.ChunkIndex); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// cosineDistance is 1 - cosine similarity. A zero-magnitude vector on
// either side yields 1 (neutral), avoiding division by zero. The result
// ranges over [0, 2].
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	magnitude := math.Sqrt(normA) * math.Sqrt(normB)
	if magnitude == 0 {
		return 1
	}

	return 1 - dot/magnitude
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return []byte{}
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
