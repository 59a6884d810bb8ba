// Package render provides output renderers for combined summaries.
// This file implements the Markdown renderer, a passthrough that keeps
// the summary exactly as assembled.
package render

import (
	"github.com/gaurav-prasanna/coursemd/core"
)

// MarkdownRenderer writes Markdown as-is.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(markdown string, _ core.SummaryMeta) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
