package dsl

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of validating a raw specification. Errors are
// fatal; warnings describe conditions the normalizer repairs.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

var (
	projectNameRe = regexp.MustCompile(`^[a-z0-9-_]+$`)
	modelNameRe   = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

var requiredSections = []string{"meta", "models"}

// Validate checks a raw specification against the structural rules.
// It never fails with an error value: every applicable rule runs and
// the complete error set comes back in one Result.
func Validate(raw *Raw) Result {
	var errs, warns []string

	for _, section := range requiredSections {
		if _, ok := raw.Doc[section]; !ok {
			errs = append(errs, "Missing required section: "+section)
		}
	}

	if meta, ok := raw.Doc["meta"]; ok {
		errs = append(errs, validateMeta(meta)...)
	}
	if models, ok := raw.Doc["models"]; ok {
		e, w := validateModels(raw, models)
		errs = append(errs, e...)
		warns = append(warns, w...)
	}
	if auth, ok := raw.Doc["auth"]; ok {
		errs = append(errs, validateAuth(auth)...)
	}
	if api, ok := raw.Doc["api"]; ok {
		errs = append(errs, validateAPI(api)...)
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

func validateMeta(v any) []string {
	meta, ok := v.(map[string]any)
	if !ok {
		return []string{"Section 'meta' must be a mapping"}
	}

	var errs []string
	for _, field := range []string{"name", "version", "framework"} {
		if _, ok := meta[field]; !ok {
			errs = append(errs, "Missing required field in meta: "+field)
		}
	}

	if fw, ok := meta["framework"]; ok {
		name, _ := fw.(string)
		if !isOneOf(name, Frameworks) {
			errs = append(errs, fmt.Sprintf("Unsupported framework: %v. Supported: %s",
				fw, strings.Join(Frameworks, ", ")))
		}
	}

	if name, ok := meta["name"]; ok {
		s, _ := name.(string)
		if !projectNameRe.MatchString(s) {
			errs = append(errs, "Project name must contain only lowercase letters, numbers, hyphens, and underscores")
		}
	}

	return errs
}

func validateModels(raw *Raw, v any) (errs, warns []string) {
	models, ok := v.(map[string]any)
	if !ok {
		return []string{"Section 'models' must be a mapping"}, nil
	}

	for _, modelName := range raw.ModelNames() {
		if !modelNameRe.MatchString(modelName) {
			errs = append(errs, fmt.Sprintf("Model name '%s' must start with an uppercase letter and contain only letters and numbers", modelName))
		}

		def, ok := models[modelName].(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("Model '%s' definition must be a mapping", modelName))
			continue
		}

		fieldsVal, ok := def["fields"]
		if !ok {
			errs = append(errs, fmt.Sprintf("Model '%s' must have a 'fields' section", modelName))
			continue
		}
		fields, ok := fieldsVal.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("Model '%s' 'fields' must be a mapping", modelName))
			continue
		}

		primaryKeys := 0
		for _, fieldName := range raw.FieldNames(modelName) {
			fdef, ok := fields[fieldName].(map[string]any)
			if !ok {
				// covers both a missing type key and a field defined
				// as a bare scalar
				errs = append(errs, fmt.Sprintf("Field '%s' in model '%s' must have a 'type'", fieldName, modelName))
				continue
			}
			typ, ok := fdef["type"]
			if !ok {
				errs = append(errs, fmt.Sprintf("Field '%s' in model '%s' must have a 'type'", fieldName, modelName))
				continue
			}
			typName, _ := typ.(string)
			if !isOneOf(typName, FieldTypes) {
				errs = append(errs, fmt.Sprintf("Invalid field type '%v' for field '%s' in model '%s'", typ, fieldName, modelName))
			}
			if pk, _ := fdef["primary_key"].(bool); pk {
				primaryKeys++
			}
		}

		switch {
		case primaryKeys == 0:
			warns = append(warns, fmt.Sprintf("Model '%s' has no primary key. An 'id' field will be auto-generated.", modelName))
		case primaryKeys > 1:
			errs = append(errs, fmt.Sprintf("Model '%s' has multiple primary keys", modelName))
		}

		e, w := validateRelationships(modelName, def, models)
		errs = append(errs, e...)
		warns = append(warns, w...)
	}

	return errs, warns
}

func validateRelationships(modelName string, def, models map[string]any) (errs, warns []string) {
	relsVal, ok := def["relationships"]
	if !ok {
		return nil, nil
	}
	rels, ok := relsVal.([]any)
	if !ok {
		return []string{fmt.Sprintf("Model '%s' 'relationships' must be a sequence", modelName)}, nil
	}

	for i, rv := range rels {
		rel, ok := rv.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("Relationship #%d in model '%s' must be a mapping", i+1, modelName))
			continue
		}

		typ, _ := rel["type"].(string)
		if !isOneOf(typ, RelationshipTypes) {
			errs = append(errs, fmt.Sprintf("Invalid relationship type '%v' in model '%s'. Supported: %s",
				rel["type"], modelName, strings.Join(RelationshipTypes, ", ")))
		}

		target, _ := rel["target"].(string)
		if target == "" {
			errs = append(errs, fmt.Sprintf("Relationship #%d in model '%s' must have a 'target'", i+1, modelName))
		} else if _, ok := models[target]; !ok {
			errs = append(errs, fmt.Sprintf("Relationship target '%s' in model '%s' is not defined in models", target, modelName))
		}

		if typ == "foreign_key" {
			od, ok := rel["on_delete"]
			if !ok {
				warns = append(warns, fmt.Sprintf("Relationship to '%s' in model '%s' has no on_delete policy; defaulting to cascade", target, modelName))
			} else if s, _ := od.(string); !isOneOf(s, OnDeletePolicies) {
				errs = append(errs, fmt.Sprintf("Invalid on_delete policy '%v' in model '%s'. Supported: %s",
					od, modelName, strings.Join(OnDeletePolicies, ", ")))
			}
		}
	}

	return errs, warns
}

func validateAuth(v any) []string {
	auth, ok := v.(map[string]any)
	if !ok {
		return []string{"Section 'auth' must be a mapping"}
	}

	var errs []string
	provider, ok := auth["provider"]
	if !ok {
		errs = append(errs, "Auth section must specify a 'provider'")
	} else if s, _ := provider.(string); !isOneOf(s, AuthProviders) {
		errs = append(errs, fmt.Sprintf("Unsupported auth provider: %v. Supported: %s",
			provider, strings.Join(AuthProviders, ", ")))
	}
	return errs
}

func validateAPI(v any) []string {
	api, ok := v.(map[string]any)
	if !ok {
		return []string{"Section 'api' must be a mapping"}
	}

	var errs []string
	endpointsVal, ok := api["endpoints"]
	if !ok {
		return nil
	}
	endpoints, ok := endpointsVal.([]any)
	if !ok {
		return []string{"API 'endpoints' must be a sequence"}
	}

	for i, ev := range endpoints {
		ep, ok := ev.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("API endpoint #%d must be a mapping", i+1))
			continue
		}
		if _, ok := ep["path"]; !ok {
			errs = append(errs, fmt.Sprintf("API endpoint #%d must have a 'path'", i+1))
		}
		if _, ok := ep["method"]; !ok {
			errs = append(errs, fmt.Sprintf("API endpoint #%d must have a 'method'", i+1))
		}
		// handler is optional: generators derive one from path+method
	}
	return errs
}
