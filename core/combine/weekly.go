package combine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/coursemd/core/normalize"
	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

// Separator closes every section of a summary.
const Separator = "\n\n---\n\n"

var weeklyNameRegex = regexp.MustCompile(`^week_\d+\.md$`)

// WeeklyName returns the file name of the weekly summary for unit.
func WeeklyName(unit string) string {
	return "week_" + unit + ".md"
}

// IntroductionName returns the course-level introduction file for unit.
func IntroductionName(unit string) string {
	return "Introduction to Week " + unit + ".md"
}

// Weekly writes <dir>/<unit>/week_<unit>.md from every Markdown file under
// the unit folder. It returns written=false, without error, when the folder
// holds no Markdown.
func Weekly(ctx context.Context, fs afero.Fs, dir, unit string) (string, bool, error) {
	logger := logging.FromContext(logging.With(ctx, logging.FieldUnit, unit))
	folder := filepath.Join(dir, unit)

	files, err := unitMarkdown(fs, folder)
	if err != nil {
		return "", false, err
	}
	if len(files) == 0 {
		logger.Info("no markdown files found")
		return "", false, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Week %s\n\n", unit)

	intro := filepath.Join(dir, IntroductionName(unit))
	exists, err := afero.Exists(fs, intro)
	if err != nil {
		return "", false, fmt.Errorf("checking %s: %w", intro, err)
	}
	if exists {
		data, err := afero.ReadFile(fs, intro)
		if err != nil {
			return "", false, fmt.Errorf("reading %s: %w", intro, err)
		}
		if text := normalize.Normalize(string(data)); strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	} else {
		logger.Debug("no introduction", logging.FieldFile, intro)
	}

	for _, path := range files {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", false, fmt.Errorf("reading %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		fmt.Fprintf(&b, "## %s\n\n", stem)
		b.WriteString(normalize.Normalize(string(data)))
		b.WriteString(Separator)
	}

	out := filepath.Join(folder, WeeklyName(unit))
	if err := afero.WriteFile(fs, out, []byte(b.String()), 0o644); err != nil {
		return "", false, fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Info("created weekly summary", logging.FieldOutput, out, logging.FieldCount, len(files))
	return out, true, nil
}

// unitMarkdown lists the Markdown files anywhere under folder, skipping
// weekly summaries, sorted by full path.
func unitMarkdown(fs afero.Fs, folder string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".md" || weeklyNameRegex.MatchString(info.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", folder, err)
	}
	sort.Strings(files)
	return files, nil
}
