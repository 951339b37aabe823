package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infranest/internal/dsl"
)

func TestNormalizeCanonical(t *testing.T) {
	spec, err := dsl.Normalize(decode(t, validDoc))
	require.NoError(t, err)

	assert.Equal(t, "blog-api", spec.Meta.Name)
	assert.Equal(t, "0.1.0", spec.Meta.Version)
	assert.Equal(t, "django", spec.Meta.Framework)
	assert.Equal(t, "postgres", spec.Meta.Database)

	require.Len(t, spec.Models, 2)
	assert.Equal(t, "Author", spec.Models[0].Name)
	assert.Equal(t, "Post", spec.Models[1].Name)

	post, ok := spec.Model("Post")
	require.True(t, ok)
	require.Len(t, post.Relationships, 1)
	assert.Equal(t, "cascade", post.Relationships[0].OnDelete)
}

func TestNormalizePreservesFieldOrder(t *testing.T) {
	spec, err := dsl.Normalize(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      zulu:
        type: string
      alpha:
        type: string
      id:
        type: uuid
        primary_key: true
      mike:
        type: string
`))
	require.NoError(t, err)
	require.Len(t, spec.Models, 1)

	var names []string
	for _, f := range spec.Models[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"zulu", "alpha", "id", "mike"}, names)
}

func TestNormalizeInjectsPrimaryKeyFirst(t *testing.T) {
	spec, err := dsl.Normalize(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      title:
        type: string
`))
	require.NoError(t, err)

	fields := spec.Models[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "uuid", fields[0].Type)
	assert.True(t, fields[0].PrimaryKey)
	assert.True(t, fields[0].AutoGenerated)
	assert.Equal(t, "title", fields[1].Name)
}

func TestNormalizeRespectsUnflaggedID(t *testing.T) {
	// a user-declared id without the primary_key flag stays as-is and
	// no synthetic field is injected
	spec, err := dsl.Normalize(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: integer
      title:
        type: string
`))
	require.NoError(t, err)

	fields := spec.Models[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "integer", fields[0].Type)
	assert.False(t, fields[0].PrimaryKey)
	assert.False(t, fields[0].AutoGenerated)
}

func TestNormalizeDefaults(t *testing.T) {
	spec, err := dsl.Normalize(decode(t, `
meta:
  name: app
  framework: django
models:
  Author:
    fields:
      id:
        type: uuid
        primary_key: true
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
    relationships:
      - type: foreign_key
        target: Author
api:
  endpoints:
    - path: /stats
      method: get
`))
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", spec.Meta.Version)

	post, ok := spec.Model("Post")
	require.True(t, ok)
	require.Len(t, post.Relationships, 1)
	assert.Equal(t, "cascade", post.Relationships[0].OnDelete)

	require.NotNil(t, spec.API)
	assert.Equal(t, "/api/v1", spec.API.BasePath)
	require.Len(t, spec.API.Endpoints, 1)
	assert.Equal(t, "GET", spec.API.Endpoints[0].Method)
}

func TestNormalizeFieldModifiers(t *testing.T) {
	spec, err := dsl.Normalize(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Task:
    fields:
      id:
        type: uuid
        primary_key: true
      priority:
        type: integer
        required: true
        min_value: 1
        max_value: 5
        default: 3
        help_text: Urgency from 1 to 5
      state:
        type: choice
        choices: [todo, doing, done]
`))
	require.NoError(t, err)

	task := spec.Models[0]
	priority := task.Fields[1]
	assert.True(t, priority.Required)
	require.NotNil(t, priority.MinValue)
	require.NotNil(t, priority.MaxValue)
	assert.Equal(t, 1.0, *priority.MinValue)
	assert.Equal(t, 5.0, *priority.MaxValue)
	assert.Equal(t, 3, priority.Default)
	assert.Equal(t, "Urgency from 1 to 5", priority.HelpText)

	state := task.Fields[2]
	assert.Equal(t, []string{"todo", "doing", "done"}, state.Choices)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      title:
        type: string
`)
	_, err := dsl.Normalize(raw)
	require.NoError(t, err)

	fields, _ := raw.Doc["models"].(map[string]any)["Post"].(map[string]any)["fields"].(map[string]any)
	_, injected := fields["id"]
	assert.False(t, injected)
}
