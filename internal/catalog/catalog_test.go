package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infranest/internal/catalog"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "blog.yaml", `
meta:
  name: blog-api
  description: A blog backend
models: {}
`)
	writeTemplate(t, dir, "shop.yml", `
meta:
  name: shop
  description: A shop backend
models: {}
`)
	writeTemplate(t, dir, "notes.txt", "not a template")

	c, err := catalog.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	blog, ok := c.Get("blog")
	require.True(t, ok)
	assert.Equal(t, "A blog backend", blog.Description)
	assert.Contains(t, blog.Content, "name: blog-api")

	_, ok = c.Get("notes")
	assert.False(t, ok)
}

func TestLoadMissingDir(t *testing.T) {
	c, err := catalog.Load(filepath.Join(t.TempDir(), "nowhere"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())
}

func TestListSorted(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "zeta.yaml", "meta: {description: z}")
	writeTemplate(t, dir, "alpha.yaml", "meta: {description: a}")

	c, err := catalog.Load(dir)
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}

func TestDescribeToleratesBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "broken.yaml", "meta: [not: a mapping")

	c, err := catalog.Load(dir)
	require.NoError(t, err)

	tpl, ok := c.Get("broken")
	require.True(t, ok)
	assert.Empty(t, tpl.Description)
}
