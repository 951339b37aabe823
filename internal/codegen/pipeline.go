package codegen

import (
	"infranest/internal/dsl"
	"infranest/internal/security"
)

// Result is a completed generation: the file map plus the integrity
// manifest over it and any validation warnings that were repaired.
type Result struct {
	Project   string
	Framework string
	Files     map[string]string
	Manifest  map[string]string
	Warnings  []string
}

// Run drives one generation request through the full state machine:
// Received -> Validated -> SecurityChecked -> Normalized -> Generated.
// Any failed stage rejects the request with a typed error and no
// partial file map. There are no retries; validation and generation
// are deterministic, so a caller retrying must submit a fixed spec as
// a brand-new request.
func Run(raw *dsl.Raw, framework string) (*Result, error) {
	gen, err := Lookup(framework)
	if err != nil {
		return nil, err
	}

	res := dsl.Validate(raw)
	if !res.Valid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	if rep := security.Scan(raw.Doc); !rep.Passed {
		return nil, &SecurityError{Category: rep.Category, Detail: rep.Detail}
	}

	spec, err := dsl.Normalize(raw)
	if err != nil {
		return nil, err
	}

	files, err := gen.Generate(spec)
	if err != nil {
		return nil, err
	}

	return &Result{
		Project:   spec.Meta.Name,
		Framework: framework,
		Files:     files,
		Manifest:  security.Manifest(files),
		Warnings:  res.Warnings,
	}, nil
}

// Preview runs the same gating as Run but asks the generator only for
// its manifest of would-be output. An invalid or unsafe spec fails a
// preview exactly as it fails a generation.
func Preview(raw *dsl.Raw, framework string) ([]PreviewFile, []string, error) {
	gen, err := Lookup(framework)
	if err != nil {
		return nil, nil, err
	}

	res := dsl.Validate(raw)
	if !res.Valid {
		return nil, nil, &ValidationError{Errors: res.Errors}
	}

	if rep := security.Scan(raw.Doc); !rep.Passed {
		return nil, nil, &SecurityError{Category: rep.Category, Detail: rep.Detail}
	}

	spec, err := dsl.Normalize(raw)
	if err != nil {
		return nil, nil, err
	}

	files, err := gen.Preview(spec)
	if err != nil {
		return nil, nil, err
	}
	return files, res.Warnings, nil
}
