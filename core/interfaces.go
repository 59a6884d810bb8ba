// Package core defines the pipeline interfaces for coursemd.
// Each stage of the conversion pipeline is a small, testable interface:
// sanitize → convert → normalize, then render for combined summaries.
package core

// SummaryMeta describes a combined document handed to a Renderer.
type SummaryMeta struct {
	Title       string
	Dir         string
	Sources     []string
	GeneratedAt string // RFC 3339
}

// Sanitizer reduces raw HTML to content-only HTML.
type Sanitizer interface {
	Sanitize(html string) (string, error)
}

// Converter turns sanitized HTML into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// TextNormalizer cleans up converted Markdown text.
type TextNormalizer interface {
	Normalize(markdown string) string
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta SummaryMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
