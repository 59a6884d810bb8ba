package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/coursemd/internal/logging"
)

func TestRootCommandFlags(t *testing.T) {
	assert.Equal(t, "coursemd", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	for _, name := range []string{"dir", "pdf"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, ".", rootCmd.Flags().Lookup("dir").DefValue)
}

func TestRootCommandRejectsArguments(t *testing.T) {
	rootCmd.SetArgs([]string{"unexpected"})
	defer rootCmd.SetArgs(nil)

	assert.Error(t, rootCmd.Execute())
}

func TestRootCommandRunsPipeline(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)
	logging.SetDefault(logging.New(&bytes.Buffer{}, "info"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-intro.html"), []byte("<h1>Intro</h1><p>Hi</p>"), 0o644))

	rootCmd.SetArgs([]string{"--dir", dir})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "1", "1-intro.md"))
	assert.FileExists(t, filepath.Join(dir, "1", "week_1.md"))
	assert.FileExists(t, filepath.Join(dir, "combined.md"))
}
