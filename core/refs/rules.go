// Package refs — reference resolution rules.
// Decides which href/src values point at files that live beside the page.
package refs

import (
	"net/url"
	"path"
	"strings"
)

// LocalName reduces a reference to the base name of a file expected beside
// the page. Remote references (any scheme or host), fragments, and empty
// paths are rejected.
func LocalName(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}

	parsed, err := url.Parse(strings.ReplaceAll(ref, "\\", "/"))
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "" || parsed.Host != "" {
		return "", false
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == ".." {
		return "", false
	}
	return name, true
}

// IsTextAlternative reports whether link text announces a text alternative.
func IsTextAlternative(linkText string) bool {
	text := strings.ToLower(strings.Join(strings.Fields(linkText), " "))
	return strings.Contains(text, "text alternative") || strings.Contains(text, "text version")
}
