package output

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/coursemd/core/convert"
	"github.com/gaurav-prasanna/coursemd/core/normalize"
	"github.com/gaurav-prasanna/coursemd/core/sanitize"
	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

const courseDir = "/course"

func newTestRouter(fs afero.Fs) *Router {
	return NewRouter(fs, sanitize.New(), convert.New(), normalize.New())
}

func quietContext() context.Context {
	return logging.WithLogger(context.Background(), logging.New(&bytes.Buffer{}, "error"))
}

func writeFile(t *testing.T, fs afero.Fs, name, content string) string {
	t.Helper()
	path := filepath.Join(courseDir, name)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(courseDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestUnitNumber(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"3-intro.html", "3"},
		{"/course/12_lecture.html", "12"},
		{"007 Bond.html", "007"},
		{"readme.html", ""},
		{"/course/10/notes.html", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, UnitNumber(tc.path))
		})
	}
}

func TestNaming(t *testing.T) {
	assert.True(t, IsUnitName("10"))
	assert.False(t, IsUnitName("10a"))
	assert.False(t, IsUnitName(""))

	assert.Equal(t, "3-intro", Stem("/course/3-intro.html"))
	assert.Equal(t, "3-intro.md", MarkdownName("3-intro.html"))
	assert.Equal(t, "alt_text_alternative.md", TextAlternativeName("alt.html"))

	assert.True(t, IsStale("/course/cleaned.html"))
	assert.True(t, IsStale("cleaned_1-intro.html"))
	assert.False(t, IsStale("1-cleaned.html"))
}

func TestRouteIntoUnitFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "3-intro.html", `<html><body><h1>Intro</h1><p>Hello</p></body></html>`)

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	assert.Equal(t, "3", res.Unit)
	assert.Equal(t, filepath.Join(courseDir, "3", "3-intro.md"), res.Markdown)
	assert.Equal(t, "# Intro\n\nHello", readFile(t, fs, "3/3-intro.md"))

	beside, err := afero.Exists(fs, filepath.Join(courseDir, "3-intro.md"))
	require.NoError(t, err)
	assert.False(t, beside, "artifact is moved, not copied")

	source, err := afero.Exists(fs, src)
	require.NoError(t, err)
	assert.True(t, source, "source document is never deleted")
}

func TestRouteKeepsVideoWatchURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "2-video.html", `<html><body><p>Watch</p>`+
		`<iframe src="https://www.youtube.com/embed/a_b_c-d"></iframe>`+"\n\n"+
		`<p>After</p></body></html>`)

	_, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	md := readFile(t, fs, "2/2-video.md")
	assert.Contains(t, md, "https://www.youtube.com/watch?v=a_b_c-d")
	assert.NotContains(t, md, `\_`)
}

func TestRouteTagsLogLinesWithSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "4-notes.html", `<p>Notes</p>`)

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&buf, "info"))
	_, err := newTestRouter(fs).Route(ctx, src)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "source=4-notes.html")
}

func TestRouteReusesExistingFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "3/old.md", "old")
	src := writeFile(t, fs, "3-intro.html", `<p>Again</p>`)

	_, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	assert.Equal(t, "old", readFile(t, fs, "3/old.md"))
	assert.Equal(t, "Again", readFile(t, fs, "3/3-intro.md"))
}

func TestRouteWithoutUnitStaysBesideSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "readme.html", `<p>Read me</p>`)

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	assert.Empty(t, res.Unit)
	assert.Equal(t, filepath.Join(courseDir, "readme.md"), res.Markdown)
	assert.Equal(t, "Read me", readFile(t, fs, "readme.md"))
}

func TestRouteCopiesImages(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "diagram.png", "PNGDATA")
	modTime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fs.Chtimes(filepath.Join(courseDir, "diagram.png"), modTime, modTime))
	src := writeFile(t, fs, "1-lecture.html",
		`<body><p><img src="diagram.png" alt="Diagram"></p><img src="missing.png"><img src="https://x.org/a.png"></body>`)

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(courseDir, "1", "diagram.png")}, res.Images)
	assert.Equal(t, "PNGDATA", readFile(t, fs, "1/diagram.png"))
	assert.Equal(t, "PNGDATA", readFile(t, fs, "diagram.png"), "images are copied, not moved")

	info, err := fs.Stat(filepath.Join(courseDir, "1", "diagram.png"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))

	assert.Contains(t, readFile(t, fs, "1/1-lecture.md"), "![Diagram](diagram.png)")
}

func TestRouteSkipsImageCopyWithoutUnit(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "diagram.png", "PNGDATA")
	src := writeFile(t, fs, "notes.html", `<p><img src="diagram.png"></p>`)

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)
	assert.Empty(t, res.Images)
}

func TestRouteTextAlternatives(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "chart-alt.html", `<html><head><title>x</title></head><body><p>Chart as text</p></body></html>`)
	src := writeFile(t, fs, "2-data.html", `<body><p>Chart</p>
<a href="chart-alt.html">Text alternative</a>
<a href="gone.html">text version</a></body>`)

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	want := filepath.Join(courseDir, "2", "chart-alt_text_alternative.md")
	assert.Equal(t, []string{want}, res.TextAlternatives)
	assert.Equal(t, "Chart as text", readFile(t, fs, "2/chart-alt_text_alternative.md"))
}

func TestRouteRemovesStaleFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "cleaned.html", "<p>old</p>")
	writeFile(t, fs, "cleaned_2.html", "<p>old</p>")
	src := writeFile(t, fs, "1-a.html", "<p>A</p>")

	res, err := newTestRouter(fs).Route(quietContext(), src)
	require.NoError(t, err)

	assert.Len(t, res.Removed, 2)
	for _, name := range []string{"cleaned.html", "cleaned_2.html"} {
		exists, err := afero.Exists(fs, filepath.Join(courseDir, name))
		require.NoError(t, err)
		assert.False(t, exists, name)
	}
}

func TestRemoveStaleWithoutMatches(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(courseDir, 0o755))

	removed, err := RemoveStale(quietContext(), fs, courseDir)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRouteErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	router := newTestRouter(fs)

	t.Run("missing file", func(t *testing.T) {
		_, err := router.Route(quietContext(), filepath.Join(courseDir, "1-missing.html"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1-missing.html")
	})

	t.Run("not html", func(t *testing.T) {
		_, err := router.Route(quietContext(), filepath.Join(courseDir, "notes.txt"))
		assert.True(t, errors.Is(err, ErrNotHTML))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(quietContext())
		cancel()
		_, err := router.Route(ctx, filepath.Join(courseDir, "1-a.html"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/course/dir", 0o755))

	err := CopyFile(fs, "/course/dir", "/course/copy")
	assert.Error(t, err)
}
