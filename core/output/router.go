// Package output places converted course pages on disk.
// Each page becomes <stem>.md, written beside the source and then moved
// into a folder named after the page's unit number (e.g. 3-intro.html →
// 3/3-intro.md). Referenced images and text alternatives follow it.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/coursemd/core"
	"github.com/gaurav-prasanna/coursemd/core/refs"
	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

// ErrNotHTML is returned when Route is given a file without an .html extension.
var ErrNotHTML = errors.New("not an HTML file")

// Result describes where one routed document and its companions ended up.
type Result struct {
	Source           string
	Markdown         string
	Unit             string
	TextAlternatives []string
	Images           []string
	Removed          []string
}

// Router converts single course pages and places their artifacts.
type Router struct {
	fs         afero.Fs
	sanitizer  core.Sanitizer
	converter  core.Converter
	normalizer core.TextNormalizer
}

// NewRouter creates a Router that reads and writes through fs.
func NewRouter(fs afero.Fs, sanitizer core.Sanitizer, converter core.Converter, normalizer core.TextNormalizer) *Router {
	return &Router{
		fs:         fs,
		sanitizer:  sanitizer,
		converter:  converter,
		normalizer: normalizer,
	}
}

// Route converts the HTML document at path and places the Markdown artifact,
// its text alternatives and its images. The source file is left in place.
func (r *Router) Route(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("route %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".html") {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, path)
	}

	ctx = logging.With(ctx, logging.FieldSource, filepath.Base(path))
	logger := logging.FromContext(ctx)

	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	html := string(raw)

	found, err := refs.Scan(html)
	if err != nil {
		return nil, fmt.Errorf("scanning references in %s: %w", path, err)
	}

	markdown, err := r.toMarkdown(html)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	sourceDir := filepath.Dir(path)
	result := &Result{
		Source: path,
		Unit:   UnitNumber(path),
	}

	// The artifact is written beside the source first, then moved.
	besideSource := filepath.Join(sourceDir, MarkdownName(path))
	if err := afero.WriteFile(r.fs, besideSource, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", besideSource, err)
	}
	result.Markdown = besideSource

	targetDir := sourceDir
	if result.Unit != "" {
		targetDir = filepath.Join(sourceDir, result.Unit)
		if err := r.fs.MkdirAll(targetDir, 0o755); err != nil {
			return result, fmt.Errorf("creating unit folder %s: %w", targetDir, err)
		}
		moved := filepath.Join(targetDir, filepath.Base(besideSource))
		if err := r.fs.Rename(besideSource, moved); err != nil {
			return result, fmt.Errorf("moving %s to %s: %w", besideSource, moved, err)
		}
		result.Markdown = moved
	}
	logger.Info("converted", logging.FieldFile, path, logging.FieldOutput, result.Markdown)

	for _, name := range found.TextAlternatives {
		written, err := r.writeTextAlternative(ctx, sourceDir, targetDir, name)
		if err != nil {
			return result, err
		}
		if written != "" {
			result.TextAlternatives = append(result.TextAlternatives, written)
		}
	}

	for _, name := range found.Images {
		copied, err := r.copyImage(ctx, sourceDir, targetDir, name)
		if err != nil {
			return result, err
		}
		if copied != "" {
			result.Images = append(result.Images, copied)
		}
	}

	removed, err := RemoveStale(ctx, r.fs, sourceDir)
	result.Removed = removed
	if err != nil {
		return result, err
	}

	return result, nil
}

// toMarkdown runs html through sanitize → convert → normalize.
func (r *Router) toMarkdown(html string) (string, error) {
	cleaned, err := r.sanitizer.Sanitize(html)
	if err != nil {
		return "", fmt.Errorf("sanitize: %w", err)
	}
	markdown, err := r.converter.Convert(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return r.normalizer.Normalize(markdown), nil
}

// writeTextAlternative converts a linked companion page if it exists beside
// the source. It returns "" when the companion is absent.
func (r *Router) writeTextAlternative(ctx context.Context, sourceDir, targetDir, name string) (string, error) {
	logger := logging.FromContext(ctx)

	companion := filepath.Join(sourceDir, name)
	exists, err := afero.Exists(r.fs, companion)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", companion, err)
	}
	if !exists {
		logger.Info("text alternative not found", logging.FieldFile, companion)
		return "", nil
	}

	raw, err := afero.ReadFile(r.fs, companion)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", companion, err)
	}
	markdown, err := r.toMarkdown(string(raw))
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", companion, err)
	}

	dest := filepath.Join(targetDir, TextAlternativeName(name))
	if err := afero.WriteFile(r.fs, dest, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	logger.Info("created text alternative", logging.FieldOutput, dest)
	return dest, nil
}

// copyImage copies an image into the target folder. It returns "" when the
// image is absent or already in place.
func (r *Router) copyImage(ctx context.Context, sourceDir, targetDir, name string) (string, error) {
	src := filepath.Join(sourceDir, name)
	dst := filepath.Join(targetDir, name)
	if src == dst {
		return "", nil
	}

	exists, err := afero.Exists(r.fs, src)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", src, err)
	}
	if !exists {
		logging.FromContext(ctx).Debug("image not found", logging.FieldFile, src)
		return "", nil
	}

	if err := CopyFile(r.fs, src, dst); err != nil {
		return "", err
	}
	logging.FromContext(ctx).Info("copied image", logging.FieldOutput, dst)
	return dst, nil
}

// CopyFile copies src to dst, keeping the permission bits and modification
// time of the source.
func CopyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("copying %s: is a directory", src)
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	if err := fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}

// RemoveStale deletes cleaned*.html files left in dir by the old two-pass
// converter. No matches is not an error.
func RemoveStale(ctx context.Context, fs afero.Fs, dir string) ([]string, error) {
	matches, err := afero.Glob(fs, filepath.Join(dir, staleHTMLGlob))
	if err != nil {
		return nil, fmt.Errorf("listing stale files in %s: %w", dir, err)
	}

	var removed []string
	for _, m := range matches {
		if err := fs.Remove(m); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", m, err)
		}
		removed = append(removed, m)
		logging.FromContext(ctx).Info("removed stale file", logging.FieldFile, m)
	}
	return removed, nil
}
