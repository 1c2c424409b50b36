// Package model contains the core domain types for the data-model pipeline:
// the DataModel aggregate parsed from a JSON/YAML document, the ProjectConfig
// supplied by the caller, and the GeneratedFile artifacts produced by the
// generators.
package model

// DataModel is the aggregate root describing an API's domain: entities,
// their fields and relationships, and named enums.
type DataModel struct {
	Name        string           `json:"name" yaml:"name"`
	Version     string           `json:"version" yaml:"version"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Entities    []Entity         `json:"entities" yaml:"entities"`
	Enums       []EnumDefinition `json:"enums,omitempty" yaml:"enums,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Entity represents one resource/table definition.
type Entity struct {
	Name        string        `json:"name" yaml:"name"`
	TableName   string        `json:"tableName,omitempty" yaml:"tableName,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []EntityField `json:"fields" yaml:"fields"`
	Indexes     []Index       `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Constraints []Constraint  `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Timestamps  bool          `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	SoftDelete  bool          `json:"softDelete,omitempty" yaml:"softDelete,omitempty"`
}

// EntityField is a single field on an entity.
type EntityField struct {
	Name               string        `json:"name" yaml:"name"`
	DataType           DataType      `json:"dataType" yaml:"dataType"`
	Relationship       *Relationship `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	IsPrimaryKey       bool          `json:"isPrimaryKey,omitempty" yaml:"isPrimaryKey,omitempty"`
	IsUnique           bool          `json:"isUnique,omitempty" yaml:"isUnique,omitempty"`
	IsIndexed          bool          `json:"isIndexed,omitempty" yaml:"isIndexed,omitempty"`
	IsGenerated        bool          `json:"isGenerated,omitempty" yaml:"isGenerated,omitempty"`
	GenerationStrategy string        `json:"generationStrategy,omitempty" yaml:"generationStrategy,omitempty"`
}

// Generation strategies for generated fields.
const (
	GenerateUUID      = "uuid"
	GenerateIncrement = "increment"
	GenerateTimestamp = "timestamp"
)

// DataTypeKind is the discriminant of the DataType variant.
type DataTypeKind string

const (
	KindString  DataTypeKind = "string"
	KindNumber  DataTypeKind = "number"
	KindBoolean DataTypeKind = "boolean"
	KindDate    DataTypeKind = "date"
	KindArray   DataTypeKind = "array"
	KindObject  DataTypeKind = "object"
	KindEnum    DataTypeKind = "enum"
)

// Kinds lists every allowed DataType discriminant.
var Kinds = []DataTypeKind{
	KindString, KindNumber, KindBoolean, KindDate, KindArray, KindObject, KindEnum,
}

// DataType is a tagged variant over the seven abstract data kinds. The
// payload fields below the discriminant are kind-specific: Items for array,
// Properties for object, Enum for enum.
type DataType struct {
	Type        DataTypeKind         `json:"type" yaml:"type"`
	Format      string               `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Nullable    bool                 `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Default     any                  `json:"default,omitempty" yaml:"default,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Enum        []string             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *DataType            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*DataType `json:"properties,omitempty" yaml:"properties,omitempty"`
	Validation  *ValidationRules     `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// EnumRef reports whether this enum data type is a reference to a named
// EnumDefinition. A one-element enum array is interpreted as a reference,
// not a one-value inline enum; that overload is part of the input format
// and is resolved in exactly this one place.
func (dt DataType) EnumRef() (string, bool) {
	if dt.Type == KindEnum && len(dt.Enum) == 1 {
		return dt.Enum[0], true
	}
	return "", false
}

// ValidationRules carries the optional constraints attached to a DataType.
// Numeric bounds are pointers so that an absent bound and a zero bound stay
// distinguishable.
type ValidationRules struct {
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Email     bool     `json:"email,omitempty" yaml:"email,omitempty"`
	URL       bool     `json:"url,omitempty" yaml:"url,omitempty"`
	UUID      bool     `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Custom    []string `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// RelationType represents the type of a relationship between entities.
type RelationType string

const (
	OneToOne   RelationType = "oneToOne"
	OneToMany  RelationType = "oneToMany"
	ManyToOne  RelationType = "manyToOne"
	ManyToMany RelationType = "manyToMany"
)

// ReferentialAction is the onDelete behavior of a relationship.
type ReferentialAction string

const (
	Cascade  ReferentialAction = "CASCADE"
	SetNull  ReferentialAction = "SET NULL"
	Restrict ReferentialAction = "RESTRICT"
)

// Relationship is a typed, directed association from the owning field's
// entity to Target.
type Relationship struct {
	Type       RelationType      `json:"type" yaml:"type"`
	Target     string            `json:"target" yaml:"target"`
	ForeignKey string            `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty"`
	JoinTable  string            `json:"joinTable,omitempty" yaml:"joinTable,omitempty"`
	Cascade    bool              `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	Eager      bool              `json:"eager,omitempty" yaml:"eager,omitempty"`
	OnDelete   ReferentialAction `json:"onDelete,omitempty" yaml:"onDelete,omitempty"`
}

// ToMany reports whether the relationship's owning side holds a collection.
func (r *Relationship) ToMany() bool {
	return r.Type == OneToMany || r.Type == ManyToMany
}

// EnumDefinition is a named enum declared at the model's top level.
type EnumDefinition struct {
	Name        string   `json:"name" yaml:"name"`
	Values      []string `json:"values" yaml:"values"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Index is a secondary index declaration on an entity.
type Index struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
	Unique bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// Constraint is an entity-level constraint declaration.
type Constraint struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string   `json:"type" yaml:"type"`
	Fields     []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Expression string   `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// Entity lookup helpers used by validators and generators.

// EntityNames returns the set of entity names in the model.
func (m *DataModel) EntityNames() map[string]bool {
	names := make(map[string]bool, len(m.Entities))
	for _, e := range m.Entities {
		names[e.Name] = true
	}
	return names
}

// EnumByName returns the named EnumDefinition, if declared.
func (m *DataModel) EnumByName(name string) (*EnumDefinition, bool) {
	for i := range m.Enums {
		if m.Enums[i].Name == name {
			return &m.Enums[i], true
		}
	}
	return nil, false
}

// PrimaryKey returns the first primary-key field of the entity, if any.
func (e *Entity) PrimaryKey() (*EntityField, bool) {
	for i := range e.Fields {
		if e.Fields[i].IsPrimaryKey {
			return &e.Fields[i], true
		}
	}
	return nil, false
}
