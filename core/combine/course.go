package combine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

// CombinedName is the stem of the course-wide summary.
const CombinedName = "combined"

// Course concatenates every weekly summary and every top-level Markdown file
// whose name contains "Summary". Files are ordered by the first number in
// their name; names without a number come last. It returns the combined
// Markdown and the files it used, in order.
func Course(ctx context.Context, fs afero.Fs, dir string) (string, []string, error) {
	units, err := NumberedFolders(fs, dir)
	if err != nil {
		return "", nil, err
	}

	var files []string
	for _, unit := range units {
		weekly := filepath.Join(dir, unit, WeeklyName(unit))
		exists, err := afero.Exists(fs, weekly)
		if err != nil {
			return "", nil, fmt.Errorf("checking %s: %w", weekly, err)
		}
		if exists {
			files = append(files, weekly)
		}
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" && strings.Contains(e.Name(), "Summary") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sortByFirstNumber(files)

	var b strings.Builder
	for _, path := range files {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", path, err)
		}
		b.WriteString(strings.TrimSpace(string(data)))
		b.WriteString(Separator)
	}

	logging.FromContext(ctx).Debug("combined summary assembled", logging.FieldCount, len(files))
	return b.String(), files, nil
}

// sortByFirstNumber orders paths by the first number in their base name,
// numberless names last, ties by path.
func sortByFirstNumber(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, oki := FirstNumber(filepath.Base(paths[i]))
		nj, okj := FirstNumber(filepath.Base(paths[j]))
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case oki && okj:
			if c := CompareNumeric(ni, nj); c != 0 {
				return c < 0
			}
		}
		return paths[i] < paths[j]
	})
}
