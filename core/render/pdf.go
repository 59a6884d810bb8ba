// Package render — PDF renderer.
// Lays out a combined course summary as an A4 PDF using gofpdf: week
// headings by level, paragraphs, lists, fenced code and section rules.
// Images are not embedded; their alt text is kept.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/coursemd/core"
)

var (
	numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)
	italicRegex       = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRegex   = regexp.MustCompile("`([^`]+)`")
	imageRegex        = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRegex         = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	ruleRegex         = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.SummaryMeta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 text before drawing it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.MultiCell(0, 9, tr(meta.Title), "", "L", false)
		pdf.Ln(2)
	}
	if meta.GeneratedAt != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Generated: "+meta.GeneratedAt), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	inCodeBlock := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case ruleRegex.MatchString(trimmed):
			drawRule(pdf)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(trimmed, "# "))), level)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case numberedItemRegex.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	if level == 1 {
		pdf.Ln(4)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// drawRule draws a thin horizontal line across the printable width.
func drawRule(pdf *gofpdf.Fpdf) {
	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	y := pdf.GetY() + 2
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, y, width-right, y)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Ln(5)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = imageRegex.ReplaceAllString(text, "[image: $1]")
	text = linkRegex.ReplaceAllString(text, "$1 ($2)")
	return strings.TrimSpace(text)
}
