package driven

import "context"

// ExtractResult is the output of document text extraction.
type ExtractResult struct {
	// Text is the extracted plain text. Page breaks in paginated
	// formats are flattened into inline "Page N" markers on their own
	// paragraph, which the chunker consumes.
	Text string

	// PageCount is the number of pages; 1 for unpaginated formats.
	PageCount int
}

// Extractor produces plain text from a document file.
// Extraction is an external collaborator of the indexing pipeline; the
// core treats it as an opaque (text, pageCount) function.
type Extractor interface {
	// Extensions returns the lowercased file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract reads the file and returns its text and page count.
	Extract(ctx context.Context, path string) (*ExtractResult, error)
}

// ExtractorRegistry selects an extractor for a file path.
type ExtractorRegistry interface {
	// ForPath returns the extractor for the path's extension, or
	// domain.ErrUnsupportedType if none is registered.
	ForPath(path string) (Extractor, error)

	// Extensions returns all registered extensions.
	Extensions() []string
}

// CommandRunner executes an external command and returns its stdout.
// It exists so extractors that shell out (pdftotext) can be tested
// without the binary installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
