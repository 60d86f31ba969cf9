package chunker

import (
	"strings"
	"testing"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.ChunkSize())
		}
		if c.Overlap() != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.Overlap())
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c := New(WithChunkSize(800), WithOverlap(50))
		if c.ChunkSize() != 800 {
			t.Errorf("expected chunkSize 800, got %d", c.ChunkSize())
		}
		if c.Overlap() != 50 {
			t.Errorf("expected overlap 50, got %d", c.Overlap())
		}
	})

	t.Run("overlap exceeding chunk size is reduced", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.Overlap() >= c.ChunkSize() {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero and negative values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.ChunkSize())
		}
		if c.Overlap() != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", c.Overlap())
		}
	})
}

func TestChunker_Chunk_EmptyInput(t *testing.T) {
	c := New()

	for _, input := range []string{"", "   ", "\n\n\n", "\t \r\n"} {
		if spans := c.Chunk(input); len(spans) != 0 {
			t.Errorf("expected no spans for %q, got %d", input, len(spans))
		}
	}
}

func TestChunker_Chunk_ShortContentDiscarded(t *testing.T) {
	c := New()

	spans := c.Chunk("too short to keep")
	if len(spans) != 0 {
		t.Fatalf("expected content under %d chars to be discarded, got %d spans",
			domain.MinChunkLength, len(spans))
	}
}

func TestChunker_Chunk_MinimumLengthFloor(t *testing.T) {
	c := New(WithChunkSize(200), WithOverlap(20))

	// Mix of keepable paragraphs and a trailing short fragment.
	text := strings.Repeat("alpha beta gamma delta epsilon zeta. ", 20) +
		"\n\nshort tail"

	for _, span := range c.Chunk(text) {
		if len(span.Content) < domain.MinChunkLength {
			t.Errorf("span %d under floor: %d chars", span.Index, len(span.Content))
		}
	}
}

func TestChunker_Chunk_ParagraphExactlyChunkSizeNotSplit(t *testing.T) {
	size := 120
	c := New(WithChunkSize(size), WithOverlap(30))

	paragraph := strings.Repeat("x", size)
	spans := c.Chunk(paragraph)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Content != paragraph {
		t.Error("paragraph equal to chunk size should be kept whole")
	}
}

func TestChunker_Chunk_PageMarkers(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet consectetur. ", 3)
	text := long + "\n\nPage 2\n\n" + long + "\n\npage 3\n\n" + long

	c := New(WithChunkSize(150), WithOverlap(20))
	spans := c.Chunk(text)

	if len(spans) < 3 {
		t.Fatalf("expected at least 3 spans, got %d", len(spans))
	}

	// Spans carry the page that is current when they flush. The first
	// paragraph is still buffered when the Page 2 marker arrives, so it
	// flushes tagged page 2.
	if spans[0].Page != 2 {
		t.Errorf("first span: expected page 2, got %d", spans[0].Page)
	}

	sawPage2, sawPage3 := false, false
	for _, span := range spans {
		if strings.Contains(strings.ToLower(span.Content), "page") {
			t.Errorf("page marker leaked into content: %q", span.Content)
		}
		switch span.Page {
		case 2:
			sawPage2 = true
		case 3:
			sawPage3 = true
		}
	}
	if !sawPage2 || !sawPage3 {
		t.Errorf("expected spans on pages 2 and 3 (saw2=%t saw3=%t)", sawPage2, sawPage3)
	}
}

func TestChunker_Chunk_SpansFlushedBeforeMarkerKeepPageOne(t *testing.T) {
	// An oversized first paragraph flushes sub-chunks before the marker
	// is seen; those spans are tagged page 1.
	long := strings.Repeat("alpha beta gamma delta epsilon zeta eta theta. ", 7)
	text := long + "\n\nPage 2\n\n" + long

	c := New(WithChunkSize(150), WithOverlap(20))
	spans := c.Chunk(text)

	if len(spans) < 3 {
		t.Fatalf("expected at least 3 spans, got %d", len(spans))
	}
	if spans[0].Page != 1 {
		t.Errorf("first span: expected page 1, got %d", spans[0].Page)
	}
	if spans[len(spans)-1].Page != 2 {
		t.Errorf("last span: expected page 2, got %d", spans[len(spans)-1].Page)
	}
}

func TestChunker_Chunk_PageMarkerMidParagraphIgnored(t *testing.T) {
	// A marker embedded mid-paragraph is content, not a page change.
	text := "Intro sentence that mentions Page 9 inline and keeps going " +
		"with enough words to clear the minimum length floor easily."

	c := New(WithChunkSize(500), WithOverlap(100))
	spans := c.Chunk(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Page != 1 {
		t.Errorf("expected page 1, got %d", spans[0].Page)
	}
}

func TestChunker_Chunk_IndexesStrictlyIncreasing(t *testing.T) {
	text := strings.Repeat("one two three four five six seven eight nine ten. ", 60)

	c := New(WithChunkSize(200), WithOverlap(40))
	spans := c.Chunk(text)

	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Index <= spans[i-1].Index {
			t.Errorf("index not increasing at span %d: %d then %d",
				i, spans[i-1].Index, spans[i].Index)
		}
	}
}

func TestChunker_Chunk_WordPackingOverlap(t *testing.T) {
	overlap := 30
	c := New(WithChunkSize(150), WithOverlap(overlap))

	// A single oversized paragraph forces the word-packing path.
	text := strings.Repeat("overlapword ", 100)
	spans := c.Chunk(text)

	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}

	for i := 1; i < len(spans); i++ {
		prev := spans[i-1].Content
		n := overlap
		if n > len(prev) {
			n = len(prev)
		}
		suffix := strings.TrimSpace(prev[len(prev)-n:])
		if !strings.HasPrefix(spans[i].Content, suffix) {
			t.Errorf("span %d does not start with previous span's %d-char tail:\nprev tail %q\nnext %q",
				i, n, suffix, spans[i].Content[:min(len(spans[i].Content), 60)])
		}
	}
}

func TestChunker_Chunk_NoParagraphDropped(t *testing.T) {
	paragraphs := []string{
		"First paragraph with enough text to matter in the output stream of the chunker.",
		"Second paragraph, also long enough to survive the minimum length filter applied at the end.",
		"Third paragraph closing out the document with yet more filler text for good measure.",
	}
	text := strings.Join(paragraphs, "\n\n")

	c := New(WithChunkSize(120), WithOverlap(20))
	spans := c.Chunk(text)

	joined := ""
	for _, span := range spans {
		joined += span.Content + "\n\n"
	}
	for _, p := range paragraphs {
		if !strings.Contains(joined, p) {
			t.Errorf("paragraph missing from output: %q", p)
		}
	}
}

func TestChunker_Chunk_Normalisation(t *testing.T) {
	text := "First  line\twith   runs\r\nof whitespace that should collapse " +
		"down to single spaces in the emitted chunk content here.\n\n\n\n" +
		"Second paragraph separated by too many blank lines, still its own paragraph."

	c := New(WithChunkSize(90), WithOverlap(0))
	spans := c.Chunk(text)

	if len(spans) < 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if strings.Contains(spans[0].Content, "  ") || strings.Contains(spans[0].Content, "\t") {
		t.Errorf("whitespace runs not collapsed: %q", spans[0].Content)
	}
}
