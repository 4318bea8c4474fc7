package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesEmbedded(t *testing.T) {
	pages, err := Pages("")
	require.NoError(t, err)

	for _, name := range []string{"index.html", "static/js/app.js", "static/css/style.css"} {
		_, err := fs.Stat(pages, name)
		assert.NoError(t, err, name)
	}
}

func TestPagesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>local</h1>"), 0o644))

	pages, err := Pages(dir)
	require.NoError(t, err)

	body, err := fs.ReadFile(pages, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>local</h1>", string(body))
}

func TestPagesBadDir(t *testing.T) {
	_, err := Pages(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Pages(file)
	assert.Error(t, err)
}
