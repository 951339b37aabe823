package dsl

import (
	"fmt"
	"strings"
)

// Normalize builds the canonical typed specification from a raw
// document: field order is preserved from the source, defaults are
// filled in, and models without a primary key get a synthetic uuid
// `id` field injected first.
//
// Precondition: Validate must have reported Valid for the same raw
// document. Normalizing an invalid document is undefined.
//
// The raw document is never mutated; callers keep their input.
func Normalize(raw *Raw) (*Spec, error) {
	spec := &Spec{}

	if meta, ok := raw.Doc["meta"].(map[string]any); ok {
		spec.Meta = Meta{
			Name:        asString(meta["name"]),
			Description: asString(meta["description"]),
			Version:     asString(meta["version"]),
			Framework:   asString(meta["framework"]),
			Database:    asString(meta["database"]),
		}
	}
	if spec.Meta.Version == "" {
		spec.Meta.Version = "0.1.0"
	}

	models, _ := raw.Doc["models"].(map[string]any)
	for _, name := range raw.ModelNames() {
		def, ok := models[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("normalize: model %q is not a mapping", name)
		}
		model, err := normalizeModel(raw, name, def)
		if err != nil {
			return nil, err
		}
		spec.Models = append(spec.Models, model)
	}

	if auth, ok := raw.Doc["auth"].(map[string]any); ok {
		spec.Auth = &Auth{
			Provider:       asString(auth["provider"]),
			UserModel:      asString(auth["user_model"]),
			RequiredFields: asStringSlice(auth["required_fields"]),
			OptionalFields: asStringSlice(auth["optional_fields"]),
		}
	}

	if api, ok := raw.Doc["api"].(map[string]any); ok {
		spec.API = normalizeAPI(api)
	}

	if jobs, ok := raw.Doc["jobs"].(map[string]any); ok {
		spec.Jobs = jobs
	}
	if deployment, ok := raw.Doc["deployment"].(map[string]any); ok {
		spec.Deployment = deployment
	}

	return spec, nil
}

func normalizeModel(raw *Raw, name string, def map[string]any) (Model, error) {
	model := Model{
		Name:        name,
		Description: asString(def["description"]),
	}

	fields, _ := def["fields"].(map[string]any)
	for _, fieldName := range raw.FieldNames(name) {
		fdef, ok := fields[fieldName].(map[string]any)
		if !ok {
			return Model{}, fmt.Errorf("normalize: field %q in model %q is not a mapping", fieldName, name)
		}
		model.Fields = append(model.Fields, normalizeField(fieldName, fdef))
	}

	// Auto-repair: a model without any primary key gets a synthetic
	// uuid id injected as the first field. A literal `id` field the
	// user declared without the primary_key flag is respected as-is
	// and nothing is injected.
	if _, ok := model.PrimaryKey(); !ok && !model.HasField("id") {
		id := Field{Name: "id", Type: "uuid", PrimaryKey: true, AutoGenerated: true}
		model.Fields = append([]Field{id}, model.Fields...)
	}

	if rels, ok := def["relationships"].([]any); ok {
		for _, rv := range rels {
			rel, ok := rv.(map[string]any)
			if !ok {
				continue
			}
			r := Relationship{
				Type:     asString(rel["type"]),
				Target:   asString(rel["target"]),
				OnDelete: asString(rel["on_delete"]),
			}
			if r.Type == "foreign_key" && r.OnDelete == "" {
				r.OnDelete = "cascade"
			}
			model.Relationships = append(model.Relationships, r)
		}
	}

	return model, nil
}

func normalizeField(name string, def map[string]any) Field {
	f := Field{
		Name:          name,
		Type:          asString(def["type"]),
		Required:      asBool(def["required"]),
		Unique:        asBool(def["unique"]),
		PrimaryKey:    asBool(def["primary_key"]),
		AutoGenerated: asBool(def["auto_generated"]),
		MaxLength:     asInt(def["max_length"]),
		MinValue:      asFloatPtr(def["min_value"]),
		MaxValue:      asFloatPtr(def["max_value"]),
		Default:       def["default"],
		HelpText:      asString(def["help_text"]),
		Choices:       asStringSlice(def["choices"]),
		Target:        asString(def["target"]),
	}
	return f
}

func normalizeAPI(api map[string]any) *API {
	out := &API{BasePath: asString(api["base_path"])}
	if out.BasePath == "" {
		out.BasePath = "/api/v1"
	}
	if endpoints, ok := api["endpoints"].([]any); ok {
		for _, ev := range endpoints {
			ep, ok := ev.(map[string]any)
			if !ok {
				continue
			}
			out.Endpoints = append(out.Endpoints, Endpoint{
				Path:         asString(ep["path"]),
				Method:       strings.ToUpper(asString(ep["method"])),
				Handler:      asString(ep["handler"]),
				Public:       asBool(ep["public"]),
				AuthRequired: asBool(ep["auth_required"]),
			})
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asFloatPtr(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil
	}
	return &f
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
