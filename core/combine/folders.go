// Package combine builds the weekly and course-wide summary documents
// from the Markdown artifacts sitting in numbered unit folders.
package combine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/coursemd/core/output"
)

var firstNumberRegex = regexp.MustCompile(`\d+`)

// NumberedFolders lists the subdirectories of dir whose names are all
// digits, in numeric order ("2" before "10").
func NumberedFolders(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var units []string
	for _, e := range entries {
		if e.IsDir() && output.IsUnitName(e.Name()) {
			units = append(units, e.Name())
		}
	}
	sort.Slice(units, func(i, j int) bool {
		return CompareNumeric(units[i], units[j]) < 0
	})
	return units, nil
}

// CompareNumeric orders two digit strings by value without parsing them,
// so arbitrarily long numbers work. Equal values fall back to the raw string.
func CompareNumeric(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// FirstNumber returns the first run of digits in name, if any.
func FirstNumber(name string) (string, bool) {
	m := firstNumberRegex.FindString(name)
	return m, m != ""
}
