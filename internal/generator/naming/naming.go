// Package naming provides the case and pluralization helpers shared by all
// generators. Each helper is an ordinary pure function passed where needed;
// there is no template-engine registry.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Pascal converts a name to PascalCase.
func Pascal(s string) string {
	return inflect.Camelize(inflect.Underscore(s))
}

// Camel converts a name to camelCase.
func Camel(s string) string {
	return inflect.CamelizeDownFirst(inflect.Underscore(s))
}

// Snake converts a name to snake_case.
func Snake(s string) string {
	return inflect.Underscore(s)
}

// Kebab converts a name to kebab-case.
func Kebab(s string) string {
	return strings.ReplaceAll(Snake(s), "_", "-")
}

// Plural applies the tool's deliberately naive English pluralization:
// trailing y becomes ies, trailing s/sh/ch appends es, everything else
// appends s. Generated route and table names depend on these exact rules,
// so inflect's fuller dictionary is not used here.
func Plural(s string) string {
	switch {
	case strings.HasSuffix(s, "y"):
		return strings.TrimSuffix(s, "y") + "ies"
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "sh"), strings.HasSuffix(s, "ch"):
		return s + "es"
	default:
		return s + "s"
	}
}

// TableName returns the storage table name for an entity: the explicit
// override when present, otherwise the pluralized snake_case entity name.
func TableName(entityName, override string) string {
	if override != "" {
		return override
	}
	return Plural(Snake(entityName))
}
