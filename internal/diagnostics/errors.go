package diagnostics

import "fmt"

// Named constructors for every business-rule violation, so message wording
// lives in one place and validators stay declarative.

// NewDuplicateEntityError reports two entities sharing a name.
func NewDuplicateEntityError(entity string) Error {
	return NewError(fmt.Sprintf("Duplicate entity name '%s'", entity))
}

// NewDuplicateFieldError reports two fields of one entity sharing a name.
func NewDuplicateFieldError(entity, field string) Error {
	return NewError(fmt.Sprintf("Entity %s: duplicate field name '%s'", entity, field))
}

// NewUnknownRelationTargetError reports a relationship pointing at an
// undeclared entity.
func NewUnknownRelationTargetError(entity, field, target string) Error {
	return NewError(fmt.Sprintf("Entity %s.%s: relationship target '%s' does not exist", entity, field, target))
}

// NewMissingPrimaryKeyError reports an entity without any primary key field.
func NewMissingPrimaryKeyError(entity string) Error {
	return NewError(fmt.Sprintf("Entity %s has no primary key field", entity))
}

// NewMultipleGeneratedPrimaryKeysError reports an entity with more than one
// generated primary key.
func NewMultipleGeneratedPrimaryKeysError(entity string) Error {
	return NewError(fmt.Sprintf("Entity %s has more than one generated primary key field", entity))
}

// NewUnknownEnumReferenceError reports an enum field referencing an
// undeclared EnumDefinition.
func NewUnknownEnumReferenceError(entity, field, enum string) Error {
	return NewError(fmt.Sprintf("Entity %s.%s: referenced enum '%s' is not defined", entity, field, enum))
}

// NewLengthBoundsError reports minLength > maxLength on a string field.
func NewLengthBoundsError(entity, field string, min, max int) Error {
	return NewError(fmt.Sprintf("Entity %s.%s: minLength %d is greater than maxLength %d", entity, field, min, max))
}

// NewNumericBoundsError reports min > max on a number field.
func NewNumericBoundsError(entity, field string, min, max float64) Error {
	return NewError(fmt.Sprintf("Entity %s.%s: min %v is greater than max %v", entity, field, min, max))
}

// NewStructuralError reports a schema-shape violation at an instance path.
func NewStructuralError(path, reason string) Error {
	return NewError(fmt.Sprintf("%s: %s", path, reason))
}

// Warning constructors follow.

// NewMissingForeignKeyWarning flags a oneToOne/manyToOne relationship
// without an explicit foreignKey.
func NewMissingForeignKeyWarning(entity, field string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s.%s: %s relationship should declare a foreignKey", entity, field, "to-one"))
}

// NewMissingJoinTableWarning flags a manyToMany relationship without an
// explicit joinTable.
func NewMissingJoinTableWarning(entity, field string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s.%s: manyToMany relationship should declare a joinTable", entity, field))
}

// NewEntityNamingWarning flags an entity name that is not PascalCase.
func NewEntityNamingWarning(entity string) Warning {
	return NewWarning(fmt.Sprintf("Entity name '%s' should be PascalCase", entity))
}

// NewFieldNamingWarning flags a field name that is not camelCase.
func NewFieldNamingWarning(entity, field string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s: field name '%s' should be camelCase", entity, field))
}

// NewEnumNamingWarning flags an enum name that is not PascalCase.
func NewEnumNamingWarning(enum string) Warning {
	return NewWarning(fmt.Sprintf("Enum name '%s' should be PascalCase", enum))
}

// NewEnumValueNamingWarning flags an enum value that is not UPPER_CASE.
func NewEnumValueNamingWarning(enum, value string) Warning {
	return NewWarning(fmt.Sprintf("Enum %s: value '%s' should be UPPER_CASE", enum, value))
}

// NewMissingDescriptionWarning flags a field without a description.
func NewMissingDescriptionWarning(entity, field string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s.%s: field has no description", entity, field))
}

// NewMissingMaxLengthWarning flags a string field without a maxLength bound.
func NewMissingMaxLengthWarning(entity, field string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s.%s: string field has no maxLength constraint", entity, field))
}

// NewCircularRelationshipWarning flags an entity participating in a
// relationship cycle.
func NewCircularRelationshipWarning(entity string) Warning {
	return NewWarning(fmt.Sprintf("Entity %s participates in a circular relationship", entity))
}
