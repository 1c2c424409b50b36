// Package validation implements the two validation passes over a data-model
// document: structural validation against the fixed document schema, and
// business-rule validation over the decoded DataModel.
package validation

import (
	"fmt"
	"regexp"

	"github.com/apiforge/apiforge/internal/model"
)

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Outcome is the result of structural validation. Errors are instance-path
// prefixed, one entry per violation.
type Outcome struct {
	Valid  bool
	Errors []string
}

// ValidateStructure checks a raw decoded document against the model schema:
// required keys, value types, the version pattern, and the DataType
// discriminant. It never inspects cross-entity references; those belong to
// the business-rule pass.
func ValidateStructure(raw map[string]any) Outcome {
	var errs []string
	push := func(path, reason string) {
		errs = append(errs, fmt.Sprintf("%s: %s", path, reason))
	}

	name, ok := raw["name"]
	if !ok {
		push("/name", "required property is missing")
	} else if _, ok := name.(string); !ok {
		push("/name", "must be a string")
	}

	version, ok := raw["version"]
	if !ok {
		push("/version", "required property is missing")
	} else if s, ok := version.(string); !ok {
		push("/version", "must be a string")
	} else if !versionPattern.MatchString(s) {
		push("/version", fmt.Sprintf("%q does not match the semver pattern MAJOR.MINOR.PATCH", s))
	}

	entities, ok := raw["entities"]
	if !ok {
		push("/entities", "required property is missing")
	} else if list, ok := asSlice(entities); !ok {
		push("/entities", "must be an array")
	} else {
		for i, item := range list {
			validateEntityShape(fmt.Sprintf("/entities/%d", i), item, push)
		}
	}

	if enums, ok := raw["enums"]; ok {
		if list, ok := asSlice(enums); !ok {
			push("/enums", "must be an array")
		} else {
			for i, item := range list {
				validateEnumShape(fmt.Sprintf("/enums/%d", i), item, push)
			}
		}
	}

	return Outcome{Valid: len(errs) == 0, Errors: errs}
}

func validateEntityShape(path string, item any, push func(path, reason string)) {
	entity, ok := asMap(item)
	if !ok {
		push(path, "must be an object")
		return
	}

	if name, ok := entity["name"]; !ok {
		push(path+"/name", "required property is missing")
	} else if _, ok := name.(string); !ok {
		push(path+"/name", "must be a string")
	}

	fields, ok := entity["fields"]
	if !ok {
		push(path+"/fields", "required property is missing")
		return
	}
	list, ok := asSlice(fields)
	if !ok {
		push(path+"/fields", "must be an array")
		return
	}
	if len(list) == 0 {
		push(path+"/fields", "must contain at least one field")
		return
	}
	for i, f := range list {
		validateFieldShape(fmt.Sprintf("%s/fields/%d", path, i), f, push)
	}
}

func validateFieldShape(path string, item any, push func(path, reason string)) {
	field, ok := asMap(item)
	if !ok {
		push(path, "must be an object")
		return
	}

	if name, ok := field["name"]; !ok {
		push(path+"/name", "required property is missing")
	} else if _, ok := name.(string); !ok {
		push(path+"/name", "must be a string")
	}

	dataType, ok := field["dataType"]
	if !ok {
		push(path+"/dataType", "required property is missing")
		return
	}
	validateDataTypeShape(path+"/dataType", dataType, push)
}

func validateDataTypeShape(path string, item any, push func(path, reason string)) {
	dt, ok := asMap(item)
	if !ok {
		push(path, "must be an object")
		return
	}

	kindRaw, ok := dt["type"]
	if !ok {
		push(path+"/type", "required property is missing")
		return
	}
	kind, ok := kindRaw.(string)
	if !ok {
		push(path+"/type", "must be a string")
		return
	}
	if !isKnownKind(kind) {
		push(path+"/type", fmt.Sprintf("%q is not one of %v", kind, model.Kinds))
		return
	}

	switch model.DataTypeKind(kind) {
	case model.KindEnum:
		values, ok := dt["enum"]
		if !ok {
			push(path+"/enum", "enum data type must declare values or a reference")
			return
		}
		list, ok := asSlice(values)
		if !ok || len(list) == 0 {
			push(path+"/enum", "must be a non-empty array of strings")
			return
		}
		for i, v := range list {
			if _, ok := v.(string); !ok {
				push(fmt.Sprintf("%s/enum/%d", path, i), "must be a string")
			}
		}
	case model.KindArray:
		if items, ok := dt["items"]; ok {
			validateDataTypeShape(path+"/items", items, push)
		}
	case model.KindObject:
		if props, ok := dt["properties"]; ok {
			propsMap, ok := asMap(props)
			if !ok {
				push(path+"/properties", "must be an object")
				return
			}
			for name, nested := range propsMap {
				validateDataTypeShape(path+"/properties/"+name, nested, push)
			}
		}
	}
}

func isKnownKind(kind string) bool {
	for _, k := range model.Kinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

func validateEnumShape(path string, item any, push func(path, reason string)) {
	enum, ok := asMap(item)
	if !ok {
		push(path, "must be an object")
		return
	}
	if name, ok := enum["name"]; !ok {
		push(path+"/name", "required property is missing")
	} else if _, ok := name.(string); !ok {
		push(path+"/name", "must be a string")
	}
	values, ok := enum["values"]
	if !ok {
		push(path+"/values", "required property is missing")
		return
	}
	list, ok := asSlice(values)
	if !ok || len(list) == 0 {
		push(path+"/values", "must be a non-empty array of strings")
		return
	}
	for i, v := range list {
		if _, ok := v.(string); !ok {
			push(fmt.Sprintf("%s/values/%d", path, i), "must be a string")
		}
	}
}

// asMap normalizes the map shapes produced by the JSON and YAML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
