// Package refs finds the local files a course page depends on: images it
// shows and the text alternatives it links to.
package refs

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Refs lists the local files referenced by one page, by base name.
type Refs struct {
	Images           []string
	TextAlternatives []string
}

// Scan parses html and collects image sources and text-alternative links.
// It must run before sanitizing, which may drop the anchors.
func Scan(html string) (Refs, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Refs{}, fmt.Errorf("parsing HTML: %w", err)
	}

	images := NewSet()
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if name, ok := LocalName(src); ok {
			images.Add(name)
		}
	})

	alternatives := NewSet()
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if !IsTextAlternative(s.Text()) {
			return
		}
		href, _ := s.Attr("href")
		if name, ok := LocalName(href); ok {
			alternatives.Add(name)
		}
	})

	return Refs{
		Images:           images.All(),
		TextAlternatives: alternatives.All(),
	}, nil
}
