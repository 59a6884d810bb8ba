// Package normalize implements the TextNormalizer interface.
// It tidies converted Markdown: no byte-order mark, no blank lines at
// either end, and no blank line directly under a video link.
package normalize

import (
	"strings"
	"unicode"
)

const (
	bom = "\ufeff"
	// videoMarker identifies a line holding a canonical watch URL.
	videoMarker = "youtube.com/watch?v="
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// MarkdownNormalizer trims and tidies Markdown text.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize implements core.TextNormalizer.
func (n *MarkdownNormalizer) Normalize(markdown string) string {
	return Normalize(markdown)
}

// Normalize strips leading BOMs, drops blank lines before the first and
// after the last content line, and removes blank lines following a video
// link. All-blank input is returned with only its BOM removed and its
// line breaks unified.
func Normalize(markdown string) string {
	markdown = strings.TrimLeft(markdown, bom)
	// Every line break style ends a line: \r\n, then any lone \r.
	markdown = lineBreaks.Replace(markdown)

	lines := strings.Split(markdown, "\n")

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	end := len(lines) - 1
	for end >= 0 && isBlank(lines[end]) {
		end--
	}
	if start > end {
		return markdown
	}

	kept := lines[start : end+1]
	result := make([]string, 0, len(kept))
	afterVideo := false
	for _, line := range kept {
		if afterVideo && isBlank(line) {
			continue
		}
		result = append(result, line)
		afterVideo = strings.Contains(line, videoMarker)
	}

	out := strings.Join(result, "\n")
	if strings.HasPrefix(out, bom) {
		// A BOM hidden behind leading blank lines is now in front.
		return Normalize(out)
	}
	return out
}

// isBlank reports whether line holds only whitespace or stray BOMs.
func isBlank(line string) bool {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	}) == ""
}
