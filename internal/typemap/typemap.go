// Package typemap maps the abstract DataType variant into target-specific
// representations: OpenAPI and AsyncAPI property objects, storage column
// types, and generated TypeScript types. Every function is pure and keyed
// off the same discriminant, so adding a kind means revisiting each family.
package typemap

import (
	"fmt"
	"strings"

	"github.com/apiforge/apiforge/internal/model"
)

// OpenAPIProperty maps a DataType to an OpenAPI 3.0 property object. Enum
// references become $ref and carry nothing else; every other kind carries
// default, nullable and description through when present.
func OpenAPIProperty(dt model.DataType) map[string]any {
	if ref, ok := dt.EnumRef(); ok {
		return map[string]any{"$ref": "#/components/schemas/" + ref}
	}

	prop := map[string]any{}
	switch dt.Type {
	case model.KindString:
		prop["type"] = "string"
		if dt.Format != "" {
			prop["format"] = dt.Format
		}
		if v := dt.Validation; v != nil {
			if v.MinLength != nil {
				prop["minLength"] = *v.MinLength
			}
			if v.MaxLength != nil {
				prop["maxLength"] = *v.MaxLength
			}
			if v.Pattern != "" {
				prop["pattern"] = v.Pattern
			}
		}
	case model.KindNumber:
		if dt.Format == "int32" || dt.Format == "int64" {
			prop["type"] = "integer"
		} else {
			prop["type"] = "number"
		}
		if dt.Format != "" {
			prop["format"] = dt.Format
		}
		if v := dt.Validation; v != nil {
			if v.Min != nil {
				prop["minimum"] = *v.Min
			}
			if v.Max != nil {
				prop["maximum"] = *v.Max
			}
		}
	case model.KindBoolean:
		prop["type"] = "boolean"
	case model.KindDate:
		prop["type"] = "string"
		if dt.Format != "" {
			prop["format"] = dt.Format
		} else {
			prop["format"] = "date-time"
		}
	case model.KindArray:
		prop["type"] = "array"
		if dt.Items != nil {
			prop["items"] = OpenAPIProperty(*dt.Items)
		} else {
			prop["items"] = map[string]any{}
		}
	case model.KindObject:
		prop["type"] = "object"
		props := map[string]any{}
		for name, nested := range dt.Properties {
			if nested != nil {
				props[name] = OpenAPIProperty(*nested)
			}
		}
		prop["properties"] = props
	case model.KindEnum:
		prop["type"] = "string"
		prop["enum"] = dt.Enum
	}

	if dt.Default != nil {
		prop["default"] = dt.Default
	}
	if dt.Nullable {
		prop["nullable"] = true
	}
	if dt.Description != "" {
		prop["description"] = dt.Description
	}
	return prop
}

// AsyncAPIProperty maps a DataType to an AsyncAPI 2.x property object. The
// switch deliberately mirrors OpenAPIProperty case for case; the two
// families describe the same DataType space and must not drift apart.
func AsyncAPIProperty(dt model.DataType) map[string]any {
	if ref, ok := dt.EnumRef(); ok {
		return map[string]any{"$ref": "#/components/schemas/" + ref}
	}

	prop := map[string]any{}
	switch dt.Type {
	case model.KindString:
		prop["type"] = "string"
		if dt.Format != "" {
			prop["format"] = dt.Format
		}
		if v := dt.Validation; v != nil {
			if v.MinLength != nil {
				prop["minLength"] = *v.MinLength
			}
			if v.MaxLength != nil {
				prop["maxLength"] = *v.MaxLength
			}
			if v.Pattern != "" {
				prop["pattern"] = v.Pattern
			}
		}
	case model.KindNumber:
		if dt.Format == "int32" || dt.Format == "int64" {
			prop["type"] = "integer"
		} else {
			prop["type"] = "number"
		}
		if dt.Format != "" {
			prop["format"] = dt.Format
		}
		if v := dt.Validation; v != nil {
			if v.Min != nil {
				prop["minimum"] = *v.Min
			}
			if v.Max != nil {
				prop["maximum"] = *v.Max
			}
		}
	case model.KindBoolean:
		prop["type"] = "boolean"
	case model.KindDate:
		prop["type"] = "string"
		if dt.Format != "" {
			prop["format"] = dt.Format
		} else {
			prop["format"] = "date-time"
		}
	case model.KindArray:
		prop["type"] = "array"
		if dt.Items != nil {
			prop["items"] = AsyncAPIProperty(*dt.Items)
		} else {
			prop["items"] = map[string]any{}
		}
	case model.KindObject:
		prop["type"] = "object"
		props := map[string]any{}
		for name, nested := range dt.Properties {
			if nested != nil {
				props[name] = AsyncAPIProperty(*nested)
			}
		}
		prop["properties"] = props
	case model.KindEnum:
		prop["type"] = "string"
		prop["enum"] = dt.Enum
	}

	if dt.Default != nil {
		prop["default"] = dt.Default
	}
	if dt.Nullable {
		prop["nullable"] = true
	}
	if dt.Description != "" {
		prop["description"] = dt.Description
	}
	return prop
}

// ColumnType maps a DataType to a storage column type.
func ColumnType(dt model.DataType) string {
	switch dt.Type {
	case model.KindString:
		if dt.Format == "uuid" {
			return "uuid"
		}
		if v := dt.Validation; v != nil && v.MaxLength != nil && *v.MaxLength <= 255 {
			return "varchar"
		}
		return "text"
	case model.KindNumber:
		switch dt.Format {
		case "int32":
			return "int"
		case "int64":
			return "bigint"
		default:
			return "decimal"
		}
	case model.KindBoolean:
		return "boolean"
	case model.KindDate:
		if dt.Format == "date" {
			return "date"
		}
		return "timestamp"
	case model.KindArray, model.KindObject:
		return "json"
	case model.KindEnum:
		return "enum"
	default:
		return "text"
	}
}

// TSType maps a DataType to a generated TypeScript type. When the field
// carries a relationship, the target's type is authoritative: to-many sides
// render as arrays of the target type regardless of the item DataType.
func TSType(dt model.DataType, relationshipTarget string) string {
	if relationshipTarget != "" {
		if dt.Type == model.KindArray {
			return relationshipTarget + "[]"
		}
		return relationshipTarget
	}

	switch dt.Type {
	case model.KindString:
		return "string"
	case model.KindNumber:
		return "number"
	case model.KindBoolean:
		return "boolean"
	case model.KindDate:
		return "Date"
	case model.KindArray:
		if dt.Items == nil {
			return "any[]"
		}
		return TSType(*dt.Items, "") + "[]"
	case model.KindObject:
		return "Record<string, any>"
	case model.KindEnum:
		if _, ok := dt.EnumRef(); ok {
			return "string"
		}
		if len(dt.Enum) == 0 {
			return "string"
		}
		literals := make([]string, len(dt.Enum))
		for i, v := range dt.Enum {
			literals[i] = fmt.Sprintf("'%s'", v)
		}
		return strings.Join(literals, " | ")
	default:
		return "any"
	}
}
