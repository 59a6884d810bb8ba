package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"diagram.png", "diagram.png", true},
		{"./images/diagram.png", "diagram.png", true},
		{"images\\chart.jpg", "chart.jpg", true},
		{"alt.html#section", "alt.html", true},
		{"photo.png?v=2", "photo.png", true},
		{"my%20file.html", "my file.html", true},
		{"https://cdn.example.com/a.png", "", false},
		{"//cdn.example.com/a.png", "", false},
		{"data:image/png;base64,AAAA", "", false},
		{"mailto:someone@example.com", "", false},
		{"#top", "", false},
		{"", "", false},
		{"  ", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			got, ok := LocalName(tc.ref)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsTextAlternative(t *testing.T) {
	assert.True(t, IsTextAlternative("Text Alternative"))
	assert.True(t, IsTextAlternative("Download the\n   text\n   version here"))
	assert.True(t, IsTextAlternative("TEXT VERSION"))
	assert.False(t, IsTextAlternative("Read the transcript"))
}

func TestSet(t *testing.T) {
	s := NewSet()
	s.Add("b.png")
	s.Add("a.png")
	s.Add("b.png")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"b.png", "a.png"}, s.All())
}

func TestScan(t *testing.T) {
	html := `<html><body>
<img src="diagram.png" alt="Diagram">
<img src="https://cdn.example.com/logo.png">
<p><img src="images/diagram.png"></p>
<img alt="no source">
<a href="1-lecture-alt.html">
   Text alternative
</a>
<a href="notes.html">Notes</a>
<a href="https://example.com/alt.html">Text version</a>
<a href="chart-text.html">Chart (text version)</a>
</body></html>`

	got, err := Scan(html)
	require.NoError(t, err)

	assert.Equal(t, []string{"diagram.png"}, got.Images)
	assert.Equal(t, []string{"1-lecture-alt.html", "chart-text.html"}, got.TextAlternatives)
}

func TestScanEmpty(t *testing.T) {
	got, err := Scan("")
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.TextAlternatives)
}
