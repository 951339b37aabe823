// Package codegen turns a canonical specification into a complete
// project skeleton for one target framework. Each generator emits a
// map of relative file path to file content; output is deterministic
// for a given spec, so the same input always produces the same bytes.
package codegen

import (
	"encoding/json"
	"fmt"
	"strings"

	"infranest/internal/dsl"
	"infranest/internal/security"
)

// Generator is the per-framework capability.
type Generator interface {
	// Framework returns the registry identifier.
	Framework() string
	// Generate produces the full file map, or an error without any
	// partial output.
	Generate(spec *dsl.Spec) (map[string]string, error)
	// Preview describes what Generate would emit, without bodies.
	// It runs the same gating as Generate.
	Preview(spec *dsl.Spec) ([]PreviewFile, error)
}

// PreviewFile is one entry of a generation preview manifest.
type PreviewFile struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

var registry = map[string]Generator{
	"django":   &djangoGenerator{},
	"go-fiber": &fiberGenerator{},
	"rails":    &railsGenerator{},
}

// Frameworks returns the supported framework identifiers.
func Frameworks() []string {
	return append([]string(nil), dsl.Frameworks...)
}

// Lookup resolves a framework identifier against the registry.
func Lookup(framework string) (Generator, error) {
	if g, ok := registry[framework]; ok {
		return g, nil
	}
	return nil, &UnknownFrameworkError{Framework: framework, Supported: Frameworks()}
}

// UnknownFrameworkError names the unsupported identifier and the
// supported set.
type UnknownFrameworkError struct {
	Framework string
	Supported []string
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("unsupported framework %q (supported: %s)",
		e.Framework, strings.Join(e.Supported, ", "))
}

// ValidationError carries the full structural error set of a spec.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid specification: " + strings.Join(e.Errors, "; ")
}

// SecurityError reports the triggering pattern category of a failed
// gate scan.
type SecurityError struct {
	Category string
	Detail   string
}

func (e *SecurityError) Error() string {
	msg := "specification failed security checks: " + e.Category
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// EmitError is the defensive backstop for conditions validation
// should have caught: it is fatal for the generation request.
type EmitError struct {
	Model  string
	Field  string
	Reason string
}

func (e *EmitError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cannot emit field '%s' of model '%s': %s", e.Field, e.Model, e.Reason)
	}
	return fmt.Sprintf("cannot emit model '%s': %s", e.Model, e.Reason)
}

// guard re-runs the checks a well-behaved caller already ran through
// the pipeline. Generators refuse to emit from a spec that was never
// validated or that fails the security gate, rather than producing
// partial or unsafe output.
func guard(spec *dsl.Spec) error {
	if spec == nil || spec.Meta.Name == "" {
		return &ValidationError{Errors: []string{"specification has no meta.name; validate before generating"}}
	}
	for _, m := range spec.Models {
		for _, rel := range m.Relationships {
			if _, ok := spec.Model(rel.Target); !ok {
				return &EmitError{Model: m.Name, Reason: fmt.Sprintf("relationship target '%s' not found in models", rel.Target)}
			}
		}
	}
	if rep := security.ScanSpec(spec); !rep.Passed {
		return &SecurityError{Category: rep.Category, Detail: rep.Detail}
	}
	return nil
}

// addIntegrity appends the integrity.json manifest: one sha256 digest
// per generated file, the manifest itself excluded.
func addIntegrity(files map[string]string) {
	manifest := security.Manifest(files)
	b, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return
	}
	files["integrity.json"] = string(b)
}
