// Package catalog loads the starter specification library: ready-made
// DSL documents users can fetch, tweak, and submit for generation.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is one starter specification.
type Template struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Catalog is an immutable set of templates keyed by name.
type Catalog struct {
	templates map[string]Template
}

// Load reads every .yaml/.yml file under dir. A missing directory is
// not an error; it yields an empty catalog.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{templates: map[string]Template{}}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), ext)
		c.templates[name] = Template{
			Name:        name,
			Description: describe(content),
			Content:     string(content),
		}
	}
	return c, nil
}

// describe pulls meta.description out of a template document. Parse
// failures degrade to an empty description; the template itself still
// loads and will be validated on use.
func describe(content []byte) string {
	var doc struct {
		Meta struct {
			Description string `yaml:"description"`
		} `yaml:"meta"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return ""
	}
	return doc.Meta.Description
}

// List returns all templates sorted by name.
func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the named template.
func (c *Catalog) Get(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Len reports the number of loaded templates.
func (c *Catalog) Len() int { return len(c.templates) }
