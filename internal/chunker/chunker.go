// Package chunker splits normalised document text into bounded,
// overlapping spans with page-number tracking.
package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 100

var (
	crlf       = strings.NewReplacer("\r\n", "\n")
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	paraSplit  = regexp.MustCompile(`\n\n+`)
	whitespace = regexp.MustCompile(`\s+`)
	pageMarker = regexp.MustCompile(`(?i)^page\s*\d+`)
	digits     = regexp.MustCompile(`\d+`)
)

// Chunker splits document text into overlapping spans.
// Splitting is paragraph-first to preserve semantic boundaries; paragraphs
// longer than the chunk size fall back to greedy word packing with a
// character-based sliding overlap.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for forward progress
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured chunk size in characters.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in characters.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into ordered spans. Paragraphs matching "page N" on
// their own paragraph boundary update the current page and are consumed as
// markers, not content. Spans whose trimmed content is shorter than
// domain.MinChunkLength are discarded.
//
// Chunking is pure CPU work; it never blocks.
func (c *Chunker) Chunk(text string) []domain.ChunkSpan {
	cleaned := normalise(text)
	if cleaned == "" {
		return nil
	}

	paragraphs := paraSplit.Split(cleaned, -1)

	var spans []domain.ChunkSpan
	current := ""
	page := 1
	index := 0

	flush := func() {
		spans = append(spans, domain.ChunkSpan{
			Content: strings.TrimSpace(current),
			Page:    page,
			Index:   index,
		})
		index++
	}

	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}

		if pageMarker.MatchString(trimmed) {
			if num := digits.FindString(trimmed); num != "" {
				if n, err := strconv.Atoi(num); err == nil {
					page = n
				}
			}
			continue
		}

		if len(current)+len(trimmed)+1 <= c.chunkSize {
			if current == "" {
				current = trimmed
			} else {
				current += "\n\n" + trimmed
			}
			continue
		}

		if current != "" {
			flush()
		}

		if len(trimmed) > c.chunkSize {
			// Paragraph too large for a single chunk: pack words greedily,
			// seeding each sub-chunk with the tail of the previous one.
			words := whitespace.Split(trimmed, -1)
			current = ""

			for _, word := range words {
				if len(current)+len(word)+1 <= c.chunkSize {
					if current == "" {
						current = word
					} else {
						current += " " + word
					}
					continue
				}

				if current != "" {
					flush()
				}

				tail := overlapTail(current, c.overlap)
				if tail == "" {
					current = word
				} else {
					current = tail + " " + word
				}
			}
		} else {
			tail := overlapTail(current, c.overlap)
			if tail == "" {
				current = trimmed
			} else {
				current = tail + "\n\n" + trimmed
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		spans = append(spans, domain.ChunkSpan{
			Content: strings.TrimSpace(current),
			Page:    page,
			Index:   index,
		})
	}

	return filterShort(spans)
}

// normalise collapses CRLF to LF, runs of 3+ newlines to exactly two,
// runs of spaces and tabs to one space, and trims the result.
func normalise(text string) string {
	cleaned := crlf.Replace(text)
	cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// overlapTail returns the trailing overlap characters of s.
// An overlap longer than s clamps to the whole string.
func overlapTail(s string, overlap int) string {
	start := len(s) - overlap
	if start < 0 {
		start = 0
	}
	return s[start:]
}

// filterShort drops spans under the minimum content length.
func filterShort(spans []domain.ChunkSpan) []domain.ChunkSpan {
	kept := spans[:0]
	for _, span := range spans {
		if len(span.Content) >= domain.MinChunkLength {
			kept = append(kept, span)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
