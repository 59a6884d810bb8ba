// Package output — unit numbers and file naming.
package output

import (
	"path/filepath"
	"strings"
)

const (
	markdownExt   = ".md"
	textAltSuffix = "_text_alternative"
	staleHTMLGlob = "cleaned*.html"
)

// UnitNumber returns the leading run of ASCII digits in the base name of
// path, or "" if the name does not start with a digit.
func UnitNumber(path string) string {
	name := filepath.Base(path)
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	return name[:end]
}

// IsUnitName reports whether name is made only of ASCII digits.
func IsUnitName(name string) bool {
	return name != "" && UnitNumber(name) == name
}

// IsStale reports whether name is a leftover intermediate file.
func IsStale(name string) bool {
	matched, _ := filepath.Match(staleHTMLGlob, filepath.Base(name))
	return matched
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MarkdownName maps a source file name to its Markdown artifact name.
func MarkdownName(path string) string {
	return Stem(path) + markdownExt
}

// TextAlternativeName maps a companion file to its artifact name.
func TextAlternativeName(path string) string {
	return Stem(path) + textAltSuffix + markdownExt
}
