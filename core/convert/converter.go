// Package convert implements the Converter interface.
// It turns sanitized HTML into Markdown with html-to-markdown, keeping
// hyperlinks and never wrapping lines.
package convert

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownConverter converts HTML to Markdown using html-to-markdown.
type MarkdownConverter struct {
	conv *converter.Converter
}

// New creates a MarkdownConverter with the commonmark and table plugins.
// Text is not backslash-escaped, so watch URLs such as
// https://www.youtube.com/watch?v=a_b stay intact.
func New() *MarkdownConverter {
	return &MarkdownConverter{
		conv: converter.NewConverter(
			converter.WithEscapeMode(converter.EscapeModeDisabled),
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithStrongDelimiter("**"),
				),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert converts a sanitized HTML document into Markdown.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
