package dsl

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Raw is a decoded but not yet validated specification. Doc is the
// generic view the validator walks; the retained document node keeps
// the mapping order of the source text, which the normalizer needs to
// preserve field declaration order.
type Raw struct {
	Doc  map[string]any
	node *yaml.Node
}

// Decode parses a YAML or JSON specification document. YAML is a
// superset of JSON, so one decoder covers both wire formats.
func Decode(data []byte) (*Raw, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("decode spec: empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode spec: document must be a mapping")
	}
	var m map[string]any
	if err := doc.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return &Raw{Doc: m, node: doc}, nil
}

// FromMap wraps an already-decoded document, as received from callers
// that did their own deserialization (the LLM front end hands over
// decoded structures). Go maps carry no order, so the document is
// re-marshalled first; mapping order becomes sorted key order.
func FromMap(doc map[string]any) (*Raw, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode spec: %w", err)
	}
	return Decode(data)
}

// keysAt returns the keys of the mapping reached by path, in document
// order. Returns nil when the path does not lead to a mapping.
func (r *Raw) keysAt(path ...string) []string {
	n := r.node
	for _, p := range path {
		n = childValue(n, p)
		if n == nil {
			return nil
		}
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

// ModelNames returns declared model names in document order.
func (r *Raw) ModelNames() []string {
	if keys := r.keysAt("models"); keys != nil {
		return keys
	}
	// shape errors are the validator's problem; fall back to a
	// stable order so error lists stay deterministic
	if m, ok := r.Doc["models"].(map[string]any); ok {
		return sortedKeys(m)
	}
	return nil
}

// FieldNames returns the field names of a model in document order.
func (r *Raw) FieldNames(model string) []string {
	if keys := r.keysAt("models", model, "fields"); keys != nil {
		return keys
	}
	if m, ok := mapPath(r.Doc, "models", model, "fields"); ok {
		return sortedKeys(m)
	}
	return nil
}

func childValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func mapPath(m map[string]any, path ...string) (map[string]any, bool) {
	cur := m
	for _, p := range path {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
