package domain

// DefaultTopK is the number of results returned when none is requested.
const DefaultTopK = 5

// MaxTopK is the upper bound on requested results.
const MaxTopK = 10

// SearchResult represents a single similarity hit from the vector store.
type SearchResult struct {
	// Chunk is the matched chunk (without its embedding).
	Chunk Chunk

	// Distance is the cosine distance to the query vector, in [0, 2].
	// A chunk with no cached embedding is assigned +Inf and sorts last.
	Distance float64

	// Relevance is 1 - Distance. Identical-direction vectors score 1.0.
	Relevance float64
}

// QueryOptions configures a knowledge-base query.
type QueryOptions struct {
	// TopK is the maximum number of results. Defaults to DefaultTopK.
	TopK int

	// Sources filters results to specific source filenames.
	Sources []string
}

// QueryHit is the public shape of one query result.
type QueryHit struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Page    int    `json:"page"`

	// Relevance is rounded to two decimal places.
	Relevance float64 `json:"relevance"`
}

// QueryResult is the outcome of a knowledge-base query.
// An empty Results slice is a normal outcome, not an error.
type QueryResult struct {
	Query   string     `json:"query"`
	Results []QueryHit `json:"results"`
	Total   int        `json:"total"`
}
