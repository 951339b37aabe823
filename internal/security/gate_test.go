package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infranest/internal/dsl"
	"infranest/internal/security"
)

func doc(extra map[string]any) map[string]any {
	d := map[string]any{
		"meta": map[string]any{
			"name":      "app",
			"version":   "1.0",
			"framework": "django",
		},
		"models": map[string]any{
			"Post": map[string]any{
				"fields": map[string]any{
					"title": map[string]any{"type": "string"},
				},
			},
		},
	}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

func TestScanPassesCleanDocument(t *testing.T) {
	rep := security.Scan(doc(nil))
	assert.True(t, rep.Passed)
	assert.Empty(t, rep.Category)
}

func TestScanDangerousPatterns(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		category string
	}{
		{"eval", "eval(request.body)", security.CategoryCodeExecution},
		{"exec", "exec ('ls')", security.CategoryCodeExecution},
		{"system", "system('reboot')", security.CategoryCodeExecution},
		{"dunder import", "__import__('os')", security.CategoryDynamicImport},
		{"importlib", "importlib.import_module('x')", security.CategoryDynamicImport},
		{"subprocess", "subprocess.run(['ls'])", security.CategoryDynamicImport},
		{"os.system", "os.system('rm -rf /tmp/x')", security.CategoryOSCommand},
		{"os.popen", "os.popen('whoami')", security.CategoryOSCommand},
		{"file write", "open('/etc/passwd', 'w')", security.CategoryFileWrite},
		{"script tag", "<script>alert(1)</script>", security.CategoryScriptInjection},
		{"iframe", "<iframe>phish</iframe>", security.CategoryScriptInjection},
		{"javascript url", "javascript:alert(1)", security.CategoryScriptInjection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := security.Scan(doc(map[string]any{"description": tc.payload}))
			assert.False(t, rep.Passed)
			assert.Equal(t, tc.category, rep.Category)
		})
	}
}

func TestScanFieldNameSQLMeta(t *testing.T) {
	for _, name := range []string{"title--", "a;b", "x/*y", "who@where", "char (1)"} {
		d := doc(nil)
		models := d["models"].(map[string]any)
		models["Post"].(map[string]any)["fields"] = map[string]any{
			name: map[string]any{"type": "string"},
		}
		rep := security.Scan(d)
		assert.False(t, rep.Passed, "field name %q must fail", name)
		assert.Equal(t, security.CategorySQLFieldName, rep.Category)
		// the matched text is attacker-controlled and never echoed
		assert.NotContains(t, rep.Detail, name)
		assert.Contains(t, rep.Detail, "Post")
	}
}

func TestScanSpec(t *testing.T) {
	spec := &dsl.Spec{
		Meta: dsl.Meta{Name: "app"},
		Models: []dsl.Model{{
			Name: "Post",
			Fields: []dsl.Field{
				{Name: "title", Type: "string", Default: "hello"},
			},
		}},
	}
	assert.True(t, security.ScanSpec(spec).Passed)

	spec.Models[0].Fields[0].Default = "__import__('os')"
	rep := security.ScanSpec(spec)
	assert.False(t, rep.Passed)
	assert.Equal(t, security.CategoryDynamicImport, rep.Category)
}

func TestHash(t *testing.T) {
	// sha256 of the empty string
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		security.Hash(""))
	assert.Equal(t, security.Hash("abc"), security.Hash("abc"))
	assert.NotEqual(t, security.Hash("abc"), security.Hash("abd"))
}

func TestManifest(t *testing.T) {
	files := map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	}
	m := security.Manifest(files)
	require.Len(t, m, 2)
	assert.Equal(t, security.Hash("alpha"), m["a.txt"])
	assert.Equal(t, security.Hash("beta"), m["b.txt"])
}
