// Package batch drives a whole conversion run over one directory:
// every HTML page is routed in turn, then the weekly summaries and the
// course-wide summary are rebuilt.
//
// A failing page is logged and skipped; it never stops the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/coursemd/core"
	"github.com/gaurav-prasanna/coursemd/core/combine"
	"github.com/gaurav-prasanna/coursemd/core/convert"
	"github.com/gaurav-prasanna/coursemd/core/normalize"
	"github.com/gaurav-prasanna/coursemd/core/output"
	"github.com/gaurav-prasanna/coursemd/core/render"
	"github.com/gaurav-prasanna/coursemd/core/sanitize"
	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

// ErrNotDirectory is returned when the configured target is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// SummaryTitle is the title handed to renderers of the combined summary.
const SummaryTitle = "Course Summary"

// Config controls a Driver.
type Config struct {
	// Dir is the directory holding the HTML pages.
	Dir string
	// PDF also renders the combined summary as combined.pdf.
	PDF bool
}

// Report summarizes a finished run.
type Report struct {
	Processed []string
	Failed    map[string]error
	Weekly    []string
	Combined  []string
}

// Driver runs the full pipeline over one directory.
type Driver struct {
	fs        afero.Fs
	cfg       Config
	router    *output.Router
	renderers []core.Renderer
	now       func() time.Time
}

// New creates a Driver with the standard sanitize → convert → normalize
// pipeline. The Markdown renderer is always used; PDF is optional.
func New(fs afero.Fs, cfg Config) *Driver {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	renderers := []core.Renderer{render.NewMarkdownRenderer()}
	if cfg.PDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}

	return &Driver{
		fs:        fs,
		cfg:       cfg,
		router:    output.NewRouter(fs, sanitize.New(), convert.New(), normalize.New()),
		renderers: renderers,
		now:       time.Now,
	}
}

// Run converts every page, then writes the weekly and combined summaries.
// Only a bad target directory or cancellation ends it with an error.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	info, err := d.fs.Stat(d.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", d.cfg.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, d.cfg.Dir)
	}

	report := &Report{Failed: make(map[string]error)}

	if err := d.convertAll(ctx, report); err != nil {
		return report, err
	}
	if err := d.combineWeeks(ctx, report); err != nil {
		return report, err
	}
	if err := d.combineCourse(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// Pages lists the HTML files directly in dir, sorted by name. Leftover
// cleaned*.html files are not pages.
func Pages(fs afero.Fs, dir string) ([]string, error) {
	matches, err := afero.Glob(fs, filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("listing HTML files in %s: %w", dir, err)
	}

	pages := make([]string, 0, len(matches))
	for _, m := range matches {
		if output.IsStale(m) {
			continue
		}
		if info, err := fs.Stat(m); err == nil && info.IsDir() {
			continue
		}
		pages = append(pages, m)
	}
	sort.Strings(pages)
	return pages, nil
}

func (d *Driver) convertAll(ctx context.Context, report *Report) error {
	logger := logging.FromContext(ctx)

	pages, err := Pages(d.fs, d.cfg.Dir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		logger.Info("no HTML files found", logging.FieldDir, d.cfg.Dir)
		return nil
	}

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("conversion interrupted: %w", err)
		}
		logger.Debug("processing", logging.FieldFile, page, logging.FieldCount, fmt.Sprintf("%d/%d", i+1, len(pages)))

		if _, err := d.router.Route(ctx, page); err != nil {
			logger.Error("conversion failed", logging.FieldFile, page, logging.FieldError, err)
			report.Failed[page] = err
			continue
		}
		report.Processed = append(report.Processed, page)
	}
	return nil
}

func (d *Driver) combineWeeks(ctx context.Context, report *Report) error {
	units, err := combine.NumberedFolders(d.fs, d.cfg.Dir)
	if err != nil {
		return err
	}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("weekly combination interrupted: %w", err)
		}
		path, written, err := combine.Weekly(ctx, d.fs, d.cfg.Dir, unit)
		if err != nil {
			logging.FromContext(ctx).Error("weekly summary failed", logging.FieldUnit, unit, logging.FieldError, err)
			continue
		}
		if written {
			report.Weekly = append(report.Weekly, path)
		}
	}
	return nil
}

func (d *Driver) combineCourse(ctx context.Context, report *Report) error {
	logger := logging.FromContext(ctx)

	markdown, sources, err := combine.Course(ctx, d.fs, d.cfg.Dir)
	if err != nil {
		logger.Error("combined summary failed", logging.FieldError, err)
		return nil
	}

	meta := core.SummaryMeta{
		Title:       SummaryTitle,
		Dir:         d.cfg.Dir,
		Sources:     sources,
		GeneratedAt: d.now().UTC().Format(time.RFC3339),
	}

	for _, r := range d.renderers {
		data, err := r.Render(markdown, meta)
		if err != nil {
			logger.Error("rendering combined summary failed", logging.FieldOutput, r.Extension(), logging.FieldError, err)
			continue
		}
		out := filepath.Join(d.cfg.Dir, combine.CombinedName+r.Extension())
		if err := afero.WriteFile(d.fs, out, data, 0o644); err != nil {
			logger.Error("writing combined summary failed", logging.FieldOutput, out, logging.FieldError, err)
			continue
		}
		report.Combined = append(report.Combined, out)
		logger.Info("combined markdown files", logging.FieldCount, len(sources), logging.FieldOutput, out)
	}
	return nil
}
