package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/apiforge/internal/model"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestOpenAPIProperty(t *testing.T) {
	tests := []struct {
		name string
		dt   model.DataType
		want map[string]any
	}{
		{
			"plain string",
			model.DataType{Type: model.KindString},
			map[string]any{"type": "string"},
		},
		{
			"string with format and bounds",
			model.DataType{
				Type:       model.KindString,
				Format:     "email",
				Validation: &model.ValidationRules{MinLength: intPtr(3), MaxLength: intPtr(120)},
			},
			map[string]any{"type": "string", "format": "email", "minLength": 3, "maxLength": 120},
		},
		{
			"int64 becomes integer",
			model.DataType{Type: model.KindNumber, Format: "int64"},
			map[string]any{"type": "integer", "format": "int64"},
		},
		{
			"float stays number",
			model.DataType{
				Type:       model.KindNumber,
				Format:     "float",
				Validation: &model.ValidationRules{Min: floatPtr(0), Max: floatPtr(5)},
			},
			map[string]any{"type": "number", "format": "float", "minimum": 0.0, "maximum": 5.0},
		},
		{
			"boolean",
			model.DataType{Type: model.KindBoolean},
			map[string]any{"type": "boolean"},
		},
		{
			"date defaults to date-time",
			model.DataType{Type: model.KindDate},
			map[string]any{"type": "string", "format": "date-time"},
		},
		{
			"date keeps explicit format",
			model.DataType{Type: model.KindDate, Format: "date"},
			map[string]any{"type": "string", "format": "date"},
		},
		{
			"array recurses into items",
			model.DataType{Type: model.KindArray, Items: &model.DataType{Type: model.KindString}},
			map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		{
			"array without items",
			model.DataType{Type: model.KindArray},
			map[string]any{"type": "array", "items": map[string]any{}},
		},
		{
			"inline enum",
			model.DataType{Type: model.KindEnum, Enum: []string{"ACTIVE", "BANNED"}},
			map[string]any{"type": "string", "enum": []string{"ACTIVE", "BANNED"}},
		},
		{
			"enum reference becomes $ref only",
			model.DataType{Type: model.KindEnum, Enum: []string{"UserRole"}, Description: "ignored"},
			map[string]any{"$ref": "#/components/schemas/UserRole"},
		},
		{
			"default and nullable carried through",
			model.DataType{Type: model.KindBoolean, Default: false, Nullable: true},
			map[string]any{"type": "boolean", "default": false, "nullable": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpenAPIProperty(tt.dt))
		})
	}
}

func TestAsyncAPIProperty_MirrorsOpenAPI(t *testing.T) {
	// The two families cover the same DataType space; for the kinds below
	// they must produce identical property objects.
	cases := []model.DataType{
		{Type: model.KindString, Format: "uuid"},
		{Type: model.KindNumber, Format: "int32"},
		{Type: model.KindBoolean},
		{Type: model.KindDate},
		{Type: model.KindEnum, Enum: []string{"UserRole"}},
		{Type: model.KindArray, Items: &model.DataType{Type: model.KindNumber}},
	}
	for _, dt := range cases {
		assert.Equal(t, OpenAPIProperty(dt), AsyncAPIProperty(dt))
	}
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		name string
		dt   model.DataType
		want string
	}{
		{"uuid string", model.DataType{Type: model.KindString, Format: "uuid"}, "uuid"},
		{"bounded string", model.DataType{Type: model.KindString, Validation: &model.ValidationRules{MaxLength: intPtr(255)}}, "varchar"},
		{"long bounded string", model.DataType{Type: model.KindString, Validation: &model.ValidationRules{MaxLength: intPtr(256)}}, "text"},
		{"unbounded string", model.DataType{Type: model.KindString}, "text"},
		{"int32", model.DataType{Type: model.KindNumber, Format: "int32"}, "int"},
		{"int64", model.DataType{Type: model.KindNumber, Format: "int64"}, "bigint"},
		{"plain number", model.DataType{Type: model.KindNumber}, "decimal"},
		{"float", model.DataType{Type: model.KindNumber, Format: "float"}, "decimal"},
		{"boolean", model.DataType{Type: model.KindBoolean}, "boolean"},
		{"date", model.DataType{Type: model.KindDate, Format: "date"}, "date"},
		{"datetime", model.DataType{Type: model.KindDate}, "timestamp"},
		{"array", model.DataType{Type: model.KindArray}, "json"},
		{"object", model.DataType{Type: model.KindObject}, "json"},
		{"enum", model.DataType{Type: model.KindEnum, Enum: []string{"A", "B"}}, "enum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnType(tt.dt))
		})
	}
}

func TestTSType(t *testing.T) {
	tests := []struct {
		name   string
		dt     model.DataType
		target string
		want   string
	}{
		{"string", model.DataType{Type: model.KindString}, "", "string"},
		{"number", model.DataType{Type: model.KindNumber}, "", "number"},
		{"boolean", model.DataType{Type: model.KindBoolean}, "", "boolean"},
		{"date", model.DataType{Type: model.KindDate}, "", "Date"},
		{"typed array", model.DataType{Type: model.KindArray, Items: &model.DataType{Type: model.KindNumber}}, "", "number[]"},
		{"untyped array", model.DataType{Type: model.KindArray}, "", "any[]"},
		{"object", model.DataType{Type: model.KindObject}, "", "Record<string, any>"},
		{"inline enum union", model.DataType{Type: model.KindEnum, Enum: []string{"ACTIVE", "BANNED"}}, "", "'ACTIVE' | 'BANNED'"},
		{"enum reference falls back to string", model.DataType{Type: model.KindEnum, Enum: []string{"UserRole"}}, "", "string"},
		{"to-one relationship", model.DataType{Type: model.KindObject}, "User", "User"},
		{"to-many relationship", model.DataType{Type: model.KindArray}, "Post", "Post[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TSType(tt.dt, tt.target))
		})
	}
}

func TestOpenAPIProperty_ObjectProperties(t *testing.T) {
	dt := model.DataType{
		Type: model.KindObject,
		Properties: map[string]*model.DataType{
			"street": {Type: model.KindString},
			"zip":    {Type: model.KindNumber, Format: "int32"},
		},
	}

	prop := OpenAPIProperty(dt)
	require.Equal(t, "object", prop["type"])
	props, ok := prop["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "string"}, props["street"])
	assert.Equal(t, map[string]any{"type": "integer", "format": "int32"}, props["zip"])
}
