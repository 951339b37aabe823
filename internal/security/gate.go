// Package security is the pre-generation gate: it scans a
// specification for injection-style patterns and computes content
// hashes over generated output for tamper evidence. The scan is
// defense-in-depth on top of whatever encoding the generated projects
// do themselves, not a replacement for it.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"

	"infranest/internal/dsl"
)

// Pattern categories reported on a failed scan. The raw matched text
// is attacker-controlled and is deliberately not echoed back.
const (
	CategoryCodeExecution   = "code execution"
	CategoryDynamicImport   = "dynamic import"
	CategoryOSCommand       = "os command"
	CategoryFileWrite       = "file write"
	CategoryScriptInjection = "script injection"
	CategorySQLFieldName    = "sql metacharacters in field name"
)

var dangerous = []struct {
	category string
	re       *regexp.Regexp
}{
	// os.* first: os.system(...) must not report as generic exec
	{CategoryOSCommand, regexp.MustCompile(`(?i)(os\.system|os\.popen|os\.spawn)`)},
	{CategoryCodeExecution, regexp.MustCompile(`(?i)(exec\s*\(|eval\s*\(|system\s*\()`)},
	{CategoryDynamicImport, regexp.MustCompile(`(?i)(__import__|importlib|subprocess)`)},
	{CategoryFileWrite, regexp.MustCompile(`(?i)open\s*\(.*?,\s*\\?['"]w\\?['"]\)`)},
	{CategoryScriptInjection, regexp.MustCompile(`(?i)(<script>|<iframe>|javascript:)`)},
}

// Field names become column and identifier names in generated code,
// so they get a stricter scan than values.
var sqlMeta = regexp.MustCompile(`(?i)(--|;|/\*|\*/|@@|@|char\s*\()`)

// Report is the outcome of a gate scan. A single matched pattern
// anywhere fails the whole scan.
type Report struct {
	Passed   bool   `json:"passed"`
	Category string `json:"category,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Scan checks a raw specification document before normalization.
func Scan(doc map[string]any) Report {
	payload, err := json.Marshal(doc)
	if err != nil {
		return Report{Category: "serialization", Detail: err.Error()}
	}
	if rep, ok := scanPayload(payload); !ok {
		return rep
	}
	if models, ok := doc["models"].(map[string]any); ok {
		for modelName, mv := range models {
			def, ok := mv.(map[string]any)
			if !ok {
				continue
			}
			fields, ok := def["fields"].(map[string]any)
			if !ok {
				continue
			}
			for fieldName := range fields {
				if sqlMeta.MatchString(fieldName) {
					return fieldNameReport(modelName)
				}
			}
		}
	}
	return Report{Passed: true}
}

// ScanSpec re-checks a canonical specification. Generators run this
// defensively even though the pipeline already gated the raw input.
func ScanSpec(spec *dsl.Spec) Report {
	payload, err := json.Marshal(specPayload(spec))
	if err != nil {
		return Report{Category: "serialization", Detail: err.Error()}
	}
	if rep, ok := scanPayload(payload); !ok {
		return rep
	}
	for _, m := range spec.Models {
		for _, f := range m.Fields {
			if sqlMeta.MatchString(f.Name) {
				return fieldNameReport(m.Name)
			}
		}
	}
	return Report{Passed: true}
}

func scanPayload(payload []byte) (Report, bool) {
	for _, p := range dangerous {
		if p.re.Match(payload) {
			return Report{Category: p.category}, false
		}
	}
	return Report{}, true
}

func fieldNameReport(model string) Report {
	return Report{
		Category: CategorySQLFieldName,
		Detail:   fmt.Sprintf("model '%s'", model),
	}
}

// specPayload flattens the parts of a canonical spec that carry
// user-controlled text, including the opaque pass-through blocks.
func specPayload(spec *dsl.Spec) map[string]any {
	fields := make(map[string]any)
	for _, m := range spec.Models {
		names := make([]string, 0, len(m.Fields))
		for _, f := range m.Fields {
			names = append(names, f.Name)
		}
		fields[m.Name] = map[string]any{
			"description": m.Description,
			"fields":      names,
		}
	}
	return map[string]any{
		"meta":       spec.Meta,
		"models":     fields,
		"defaults":   collectDefaults(spec),
		"jobs":       spec.Jobs,
		"deployment": spec.Deployment,
	}
}

func collectDefaults(spec *dsl.Spec) []any {
	var out []any
	for _, m := range spec.Models {
		for _, f := range m.Fields {
			if f.Default != nil {
				out = append(out, f.Default)
			}
			if f.HelpText != "" {
				out = append(out, f.HelpText)
			}
			for _, c := range f.Choices {
				out = append(out, c)
			}
		}
	}
	return out
}

// Hash returns the sha256 hex digest of one file's content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Manifest computes the content-hash manifest over a generated file
// set, keyed by relative file path.
func Manifest(files map[string]string) map[string]string {
	out := make(map[string]string, len(files))
	for path, content := range files {
		out[path] = Hash(content)
	}
	return out
}
