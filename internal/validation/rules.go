package validation

import (
	"regexp"

	"github.com/apiforge/apiforge/internal/diagnostics"
	"github.com/apiforge/apiforge/internal/model"
)

var (
	pascalCasePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	camelCasePattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	upperCasePattern  = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// RuleValidator runs the business-rule pass: every rule is independent and
// additive, accumulating into one Diagnostics collection. Strict mode adds
// extra warnings but never turns a warning into an error.
type RuleValidator struct {
	Strict bool
}

// NewRuleValidator creates a business-rule validator.
func NewRuleValidator(strict bool) *RuleValidator {
	return &RuleValidator{Strict: strict}
}

// Validate evaluates every rule against the model. It never returns an
// error; the caller decides whether accumulated errors are fatal.
func (v *RuleValidator) Validate(m *model.DataModel) *diagnostics.Diagnostics {
	diags := diagnostics.New()

	v.checkEntityNames(m, diags)
	entityNames := m.EntityNames()
	for i := range m.Entities {
		v.checkEntity(m, &m.Entities[i], entityNames, diags)
	}
	v.checkEnums(m, diags)
	v.checkCycles(m, diags)

	return diags
}

func (v *RuleValidator) checkEntityNames(m *model.DataModel, diags *diagnostics.Diagnostics) {
	seen := make(map[string]bool, len(m.Entities))
	for _, e := range m.Entities {
		if seen[e.Name] {
			diags.PushError(diagnostics.NewDuplicateEntityError(e.Name))
		}
		seen[e.Name] = true

		if !pascalCasePattern.MatchString(e.Name) {
			diags.PushWarning(diagnostics.NewEntityNamingWarning(e.Name))
		}
	}
}

func (v *RuleValidator) checkEntity(m *model.DataModel, e *model.Entity, entityNames map[string]bool, diags *diagnostics.Diagnostics) {
	seenFields := make(map[string]bool, len(e.Fields))
	primaryKeys := 0
	generatedPrimaryKeys := 0

	for i := range e.Fields {
		f := &e.Fields[i]
		if seenFields[f.Name] {
			diags.PushError(diagnostics.NewDuplicateFieldError(e.Name, f.Name))
		}
		seenFields[f.Name] = true

		if !camelCasePattern.MatchString(f.Name) {
			diags.PushWarning(diagnostics.NewFieldNamingWarning(e.Name, f.Name))
		}

		if f.IsPrimaryKey {
			primaryKeys++
			if f.IsGenerated {
				generatedPrimaryKeys++
			}
		}

		v.checkRelationship(e, f, entityNames, diags)
		v.checkDataType(m, e, f, diags)
	}

	if primaryKeys == 0 {
		diags.PushError(diagnostics.NewMissingPrimaryKeyError(e.Name))
	}
	if generatedPrimaryKeys > 1 {
		diags.PushError(diagnostics.NewMultipleGeneratedPrimaryKeysError(e.Name))
	}
}

func (v *RuleValidator) checkRelationship(e *model.Entity, f *model.EntityField, entityNames map[string]bool, diags *diagnostics.Diagnostics) {
	rel := f.Relationship
	if rel == nil {
		return
	}

	if !entityNames[rel.Target] {
		diags.PushError(diagnostics.NewUnknownRelationTargetError(e.Name, f.Name, rel.Target))
	}

	switch rel.Type {
	case model.ManyToMany:
		if rel.JoinTable == "" {
			diags.PushWarning(diagnostics.NewMissingJoinTableWarning(e.Name, f.Name))
		}
	case model.OneToOne, model.ManyToOne:
		if rel.ForeignKey == "" {
			diags.PushWarning(diagnostics.NewMissingForeignKeyWarning(e.Name, f.Name))
		}
	}
}

func (v *RuleValidator) checkDataType(m *model.DataModel, e *model.Entity, f *model.EntityField, diags *diagnostics.Diagnostics) {
	dt := f.DataType

	switch dt.Type {
	case model.KindEnum:
		// A one-element enum array is a reference to a named definition;
		// anything else is an inline enum and always valid.
		if ref, ok := dt.EnumRef(); ok {
			if _, defined := m.EnumByName(ref); !defined {
				diags.PushError(diagnostics.NewUnknownEnumReferenceError(e.Name, f.Name, ref))
			}
		}
	case model.KindString:
		if rules := dt.Validation; rules != nil && rules.MinLength != nil && rules.MaxLength != nil {
			if *rules.MinLength > *rules.MaxLength {
				diags.PushError(diagnostics.NewLengthBoundsError(e.Name, f.Name, *rules.MinLength, *rules.MaxLength))
			}
		}
		if v.Strict {
			if dt.Validation == nil || dt.Validation.MaxLength == nil {
				diags.PushWarning(diagnostics.NewMissingMaxLengthWarning(e.Name, f.Name))
			}
		}
	case model.KindNumber:
		if rules := dt.Validation; rules != nil && rules.Min != nil && rules.Max != nil {
			if *rules.Min > *rules.Max {
				diags.PushError(diagnostics.NewNumericBoundsError(e.Name, f.Name, *rules.Min, *rules.Max))
			}
		}
	}

	if v.Strict && dt.Description == "" {
		diags.PushWarning(diagnostics.NewMissingDescriptionWarning(e.Name, f.Name))
	}
}

func (v *RuleValidator) checkEnums(m *model.DataModel, diags *diagnostics.Diagnostics) {
	for _, enum := range m.Enums {
		if !pascalCasePattern.MatchString(enum.Name) {
			diags.PushWarning(diagnostics.NewEnumNamingWarning(enum.Name))
		}
		if v.Strict {
			for _, value := range enum.Values {
				if !upperCasePattern.MatchString(value) {
					diags.PushWarning(diagnostics.NewEnumValueNamingWarning(enum.Name, value))
				}
			}
		}
	}
}

func (v *RuleValidator) checkCycles(m *model.DataModel, diags *diagnostics.Diagnostics) {
	for _, entity := range DetectCycles(m) {
		diags.PushWarning(diagnostics.NewCircularRelationshipWarning(entity))
	}
}
