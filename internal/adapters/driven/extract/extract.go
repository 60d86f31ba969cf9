// Package extract produces plain text from local document files.
//
// Extraction sits at the boundary of the indexing pipeline: the core only
// sees (text, pageCount). Markdown and text files are read verbatim with
// a page count of 1. PDFs are converted by a pdftotext subprocess; its
// form-feed page breaks are flattened into inline "Page N" markers that
// the chunker consumes for page tracking.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
	"github.com/praxishq/knowledge-rag/internal/core/ports/driven"
)

// Registry routes file paths to extractors by extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// DefaultRegistry returns a registry handling pdf, markdown and text files.
func DefaultRegistry() *Registry {
	return NewRegistry(NewText(), NewPDF(nil))
}

// ForPath returns the extractor for the path's extension.
func (r *Registry) ForPath(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}
	return e, nil
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Text extracts markdown and plain text files verbatim.
type Text struct{}

// Ensure Text implements the interface.
var _ driven.Extractor = (*Text)(nil)

// NewText creates a text extractor.
func NewText() *Text {
	return &Text{}
}

// Extensions returns the handled file extensions.
func (e *Text) Extensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// Extract reads the file verbatim. Unpaginated formats report one page.
func (e *Text) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, path, err)
	}

	return &driven.ExtractResult{
		Text:      string(data),
		PageCount: 1,
	}, nil
}

// PDF extracts PDF files by shelling out to pdftotext.
type PDF struct {
	runner driven.CommandRunner
}

// Ensure PDF implements the interface.
var _ driven.Extractor = (*PDF)(nil)

// NewPDF creates a PDF extractor. A nil runner uses os/exec.
func NewPDF(runner driven.CommandRunner) *PDF {
	if runner == nil {
		runner = execRunner{}
	}
	return &PDF{runner: runner}
}

// Extensions returns the handled file extensions.
func (e *PDF) Extensions() []string {
	return []string{".pdf"}
}

// Extract converts the PDF to text. pdftotext separates pages with form
// feeds; each break becomes an inline "Page N" marker so downstream
// chunking can tag chunks with their page.
func (e *PDF) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, path, err)
	}

	pages := strings.Split(string(out), "\f")
	// pdftotext terminates the final page with a form feed too
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			fmt.Fprintf(&b, "\n\nPage %d\n\n", i+1)
		}
		b.WriteString(page)
	}

	return &driven.ExtractResult{
		Text:      b.String(),
		PageCount: len(pages),
	}, nil
}
