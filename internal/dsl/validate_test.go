package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infranest/internal/dsl"
)

func decode(t *testing.T, doc string) *dsl.Raw {
	t.Helper()
	raw, err := dsl.Decode([]byte(doc))
	require.NoError(t, err)
	return raw
}

const validDoc = `
meta:
  name: blog-api
  version: 0.1.0
  framework: django
  database: postgres

models:
  Author:
    fields:
      id:
        type: uuid
        primary_key: true
      display_name:
        type: string
        required: true
        max_length: 100
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
      title:
        type: string
        required: true
        max_length: 200
      status:
        type: choice
        choices: [draft, published]
        default: draft
    relationships:
      - type: foreign_key
        target: Author
        on_delete: cascade
`

func TestValidateAccepts(t *testing.T) {
	res := dsl.Validate(decode(t, validDoc))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateMissingSections(t *testing.T) {
	res := dsl.Validate(decode(t, `{"other": 1}`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Missing required section: meta")
	assert.Contains(t, res.Errors, "Missing required section: models")
}

func TestValidateMissingMetaFields(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  description: nothing else
models: {}
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Missing required field in meta: name")
	assert.Contains(t, res.Errors, "Missing required field in meta: version")
	assert.Contains(t, res.Errors, "Missing required field in meta: framework")
}

func TestValidateProjectName(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: "My App!"
  version: "1.0"
  framework: django
models: {}
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors,
		"Project name must contain only lowercase letters, numbers, hyphens, and underscores")
}

func TestValidateUnsupportedFramework(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: laravel
models: {}
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Unsupported framework: laravel. Supported: django, go-fiber, rails")
}

func TestValidateModelName(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: rails
models:
  blogPost:
    fields:
      id:
        type: uuid
        primary_key: true
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors,
		"Model name 'blogPost' must start with an uppercase letter and contain only letters and numbers")
}

func TestValidateModelWithoutFields(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: rails
models:
  Post:
    description: no fields here
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Model 'Post' must have a 'fields' section")
}

func TestValidateScalarFieldDefinition(t *testing.T) {
	// a field declared as a bare scalar has no type mapping
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
      title: string
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Field 'title' in model 'Post' must have a 'type'")
}

func TestValidateFieldMissingType(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
      title:
        required: true
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Field 'title' in model 'Post' must have a 'type'")
}

func TestValidateInvalidFieldType(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
      title:
        type: varchar
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Invalid field type 'varchar' for field 'title' in model 'Post'")
}

func TestValidateNoPrimaryKeyWarns(t *testing.T) {
	res := dsl.Validate(decode(t, `
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
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings,
		"Model 'Post' has no primary key. An 'id' field will be auto-generated.")
}

func TestValidateMultiplePrimaryKeys(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
      slug:
        type: string
        primary_key: true
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Model 'Post' has multiple primary keys")
}

func TestValidateRelationshipTarget(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models:
  Post:
    fields:
      id:
        type: uuid
        primary_key: true
    relationships:
      - type: foreign_key
        target: Author
        on_delete: cascade
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors,
		"Relationship target 'Author' in model 'Post' is not defined in models")
}

func TestValidateOnDelete(t *testing.T) {
	missing := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
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
`))
	assert.True(t, missing.Valid)
	assert.Contains(t, missing.Warnings,
		"Relationship to 'Author' in model 'Post' has no on_delete policy; defaulting to cascade")

	unknown := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
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
        on_delete: obliterate
`))
	assert.False(t, unknown.Valid)
	assert.Contains(t, unknown.Errors,
		"Invalid on_delete policy 'obliterate' in model 'Post'. Supported: cascade, protect, set_null, set_default")
}

func TestValidateAuthProvider(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models: {}
auth:
  provider: saml
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Unsupported auth provider: saml. Supported: jwt, oauth2, custom")
}

func TestValidateAPIEndpoints(t *testing.T) {
	res := dsl.Validate(decode(t, `
meta:
  name: app
  version: "1.0"
  framework: django
models: {}
api:
  endpoints:
    - method: GET
    - path: /stats
`))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "API endpoint #1 must have a 'path'")
	assert.Contains(t, res.Errors, "API endpoint #2 must have a 'method'")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// one pass reports every applicable rule, not just the first
	res := dsl.Validate(decode(t, `
meta:
  name: "Bad Name"
  framework: laravel
models:
  post:
    description: no fields
`))
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 4)
}
