package codegen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"infranest/internal/dsl"
)

// Identifier helpers shared by the generators. Model names arrive in
// PascalCase (enforced by validation); routes and tables want
// pluralized snake_case, Go struct fields want exported CamelCase.

func underscore(name string) string {
	return inflect.Underscore(name)
}

func camelize(name string) string {
	c := inflect.Camelize(name)
	// exported Go names want ID, not Id
	if strings.HasSuffix(c, "Id") {
		c = strings.TrimSuffix(c, "Id") + "ID"
	}
	return c
}

// tableName returns the pluralized snake_case form, e.g.
// "BlogCategory" -> "blog_categories".
func tableName(model string) string {
	return inflect.Tableize(model)
}

// routeName is the URL segment for a model's collection routes.
func routeName(model string) string {
	return tableName(model)
}

// pluralizeLower is the original generators' naive plural, used where
// generated prose names a collection, e.g. "tasks".
func pluralizeLower(model string) string {
	return inflect.Pluralize(strings.ToLower(model))
}

// handlerName derives a handler identifier from an endpoint when the
// spec declares none: "GET /stats/daily" -> "get_stats_daily" (or
// "GetStatsDaily" camelized by the caller).
func handlerName(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, ":{}")
		seg = strings.TrimPrefix(seg, "<")
		seg = strings.TrimSuffix(seg, ">")
		if seg == "" {
			continue
		}
		parts = append(parts, underscore(seg))
	}
	return strings.Join(parts, "_")
}

// endpointHandler resolves the declared or derived handler name of an
// endpoint, in snake_case.
func endpointHandler(ep dsl.Endpoint) string {
	if ep.Handler != "" {
		return underscore(ep.Handler)
	}
	return handlerName(ep.Method, ep.Path)
}
