package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infranest/internal/archive"
)

func TestZipRoundTrip(t *testing.T) {
	files := map[string]string{
		"README.md":        "# hello\n",
		"app/models.py":    "class Post: pass\n",
		"integrity.json":   "{}",
	}

	data, err := archive.Zip(files, "blog-api")
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, r.File, 3)

	got := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		got[f.Name] = string(content)
	}

	assert.Equal(t, "# hello\n", got["blog-api/README.md"])
	assert.Equal(t, "class Post: pass\n", got["blog-api/app/models.py"])
	assert.Equal(t, "{}", got["blog-api/integrity.json"])
}

func TestZipSortedEntries(t *testing.T) {
	files := map[string]string{
		"z.txt": "z",
		"a.txt": "a",
		"m.txt": "m",
	}
	data, err := archive.Zip(files, "p")
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"p/a.txt", "p/m.txt", "p/z.txt"}, names)
}

func TestZipDeterministic(t *testing.T) {
	files := map[string]string{
		"b.txt": "beta",
		"a.txt": "alpha",
	}
	first, err := archive.Zip(files, "proj")
	require.NoError(t, err)
	second, err := archive.Zip(files, "proj")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestZipEmpty(t *testing.T) {
	data, err := archive.Zip(nil, "empty")
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, r.File)
}
