// Package sanitize implements the Sanitizer interface.
// It reduces a course page to its content by:
//  1. Replacing embedded video players with plain watch URLs
//  2. Removing head, scripts, styles and decorative containers
//  3. Pruning elements left empty by the steps above
//  4. Dropping id attributes and inline event handlers
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// DefaultVideoHost is the marker looked for in iframe sources.
	DefaultVideoHost = "youtube"
	// WatchURLPrefix is the canonical form embedded players are rewritten to.
	WatchURLPrefix = "https://www.youtube.com/watch?v="
)

// DefaultDecorativeClasses mark containers that carry no course content.
var DefaultDecorativeClasses = []string{"banner-img", "card-graphic"}

var videoIDRegex = regexp.MustCompile(`(?:embed/|v=|v/|watch\?v=)([a-zA-Z0-9_-]+)`)

// Inline handlers may be quoted either way, so they are stripped from the
// serialized output rather than through the tree.
var (
	handlerDoubleQuoted = regexp.MustCompile(` on\w+="[^"]*"`)
	handlerSingleQuoted = regexp.MustCompile(` on\w+='[^']*'`)
)

// voidElements never have children and are kept by empty pruning.
var voidElements = map[string]bool{
	"img": true, "br": true, "hr": true, "input": true,
	"meta": true, "link": true, "area": true, "base": true,
	"col": true, "embed": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// Options configures an HTMLSanitizer.
type Options struct {
	VideoHost         string
	DecorativeClasses []string
}

// rule is one named transformation over the parsed document.
type rule struct {
	name  string
	apply func(doc *goquery.Document)
}

// HTMLSanitizer strips presentational markup from course pages.
type HTMLSanitizer struct {
	opts  Options
	rules []rule
}

// New creates an HTMLSanitizer with the default video host and classes.
func New() *HTMLSanitizer {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an HTMLSanitizer. Empty fields take their defaults.
func NewWithOptions(opts Options) *HTMLSanitizer {
	if opts.VideoHost == "" {
		opts.VideoHost = DefaultVideoHost
	}
	if len(opts.DecorativeClasses) == 0 {
		opts.DecorativeClasses = DefaultDecorativeClasses
	}

	s := &HTMLSanitizer{opts: opts}
	// Order matters: pruning must see the document after every removal.
	s.rules = []rule{
		{"video", s.replaceVideos},
		{"head", removeSelector("head")},
		{"script", removeSelector("script")},
		{"style", removeSelector("style")},
		{"decorative", removeSelector(classSelector(opts.DecorativeClasses))},
		{"empty", pruneEmpty},
		{"ids", func(doc *goquery.Document) { doc.Find("[id]").RemoveAttr("id") }},
	}
	return s
}

// Sanitize parses html leniently, applies every rule in order and returns
// the serialized result.
func (s *HTMLSanitizer) Sanitize(input string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, r := range s.rules {
		r.apply(doc)
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing HTML: %w", err)
	}

	out = handlerDoubleQuoted.ReplaceAllString(out, "")
	out = handlerSingleQuoted.ReplaceAllString(out, "")
	return out, nil
}

// VideoID extracts the video identifier from an embed or watch URL.
func VideoID(src string) (string, bool) {
	m := videoIDRegex.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// replaceVideos swaps each recognized iframe for its watch URL as plain text.
func (s *HTMLSanitizer) replaceVideos(doc *goquery.Document) {
	host := strings.ToLower(s.opts.VideoHost)

	doc.Find("iframe").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !strings.Contains(strings.ToLower(src), host) {
			return
		}
		id, ok := VideoID(src)
		if !ok {
			return
		}

		// Drop trailing whitespace so the link is not followed by a blank line.
		node := sel.Get(0)
		if next := node.NextSibling; next != nil && next.Type == html.TextNode &&
			strings.TrimSpace(next.Data) == "" {
			node.Parent.RemoveChild(next)
		}

		sel.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: WatchURLPrefix + id})
	})
}

// pruneEmpty removes elements with neither text nor child elements,
// repeating until a pass removes nothing since parents can become empty.
func pruneEmpty(doc *goquery.Document) {
	for {
		removed := 0
		doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
			if voidElements[goquery.NodeName(sel)] {
				return
			}
			if sel.Children().Length() > 0 || strings.TrimSpace(sel.Text()) != "" {
				return
			}
			sel.Remove()
			removed++
		})
		if removed == 0 {
			return
		}
	}
}

func removeSelector(selector string) func(doc *goquery.Document) {
	return func(doc *goquery.Document) {
		doc.Find(selector).Remove()
	}
}

func classSelector(classes []string) string {
	sels := make([]string, 0, len(classes))
	for _, c := range classes {
		sels = append(sels, "."+c)
	}
	return strings.Join(sels, ", ")
}
