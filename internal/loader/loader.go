// Package loader turns raw JSON/YAML text into a validated DataModel. It
// orchestrates the two validation passes: structural validation runs first
// and short-circuits, since a structurally invalid document provides no
// guarantee the shapes the business rules assume exist.
package loader

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apiforge/apiforge/internal/diagnostics"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/validation"
)

// ParseError reports malformed source text that is not valid JSON or YAML.
type ParseError struct {
	Format model.Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError aggregates every violation found in one pass, one message
// per line, so callers can render all problems at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model validation failed:\n%s", strings.Join(e.Errors, "\n"))
}

// Loader parses and validates data-model documents. Instances are cheap and
// single-use; concurrent invocations should each construct their own.
type Loader struct {
	Strict bool
}

// New creates a Loader. Strict mode adds advisory warnings without ever
// escalating them to errors.
func New(strict bool) *Loader {
	return &Loader{Strict: strict}
}

// Parse decodes, structurally validates, and business-rule validates a
// document. On success it returns the trusted model plus the accumulated
// warnings. Failure is one of *ParseError (malformed text) or
// *ValidationError (structural or business violations).
func (l *Loader) Parse(raw []byte, format model.Format) (*model.DataModel, *diagnostics.Diagnostics, error) {
	rawObject, err := decodeRaw(raw, format)
	if err != nil {
		return nil, nil, err
	}

	outcome := validation.ValidateStructure(rawObject)
	if !outcome.Valid {
		return nil, nil, &ValidationError{Errors: outcome.Errors}
	}

	dataModel, err := decodeModel(raw, format)
	if err != nil {
		// The structural pass accepted the document, so a decode failure
		// here means the document schema and the model types have drifted.
		return nil, nil, &ParseError{Format: format, Err: err}
	}

	diags := validation.NewRuleValidator(l.Strict).Validate(dataModel)
	if diags.HasErrors() {
		return nil, diags, &ValidationError{Errors: diags.ErrorMessages()}
	}

	return dataModel, diags, nil
}

// ParseFile parses a document whose format is derived from the path's
// extension. The content must already be loaded; the loader does no I/O.
func (l *Loader) ParseFile(path string, raw []byte) (*model.DataModel, *diagnostics.Diagnostics, error) {
	format, err := model.FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	return l.Parse(raw, format)
}

func decodeRaw(raw []byte, format model.Format) (map[string]any, error) {
	var rawObject map[string]any
	switch format {
	case model.FormatJSON:
		if err := json.Unmarshal(raw, &rawObject); err != nil {
			return nil, &ParseError{Format: format, Err: err}
		}
	case model.FormatYAML:
		if err := yaml.Unmarshal(raw, &rawObject); err != nil {
			return nil, &ParseError{Format: format, Err: err}
		}
	default:
		return nil, &model.ErrUnsupportedFormat{Extension: string(format)}
	}
	return rawObject, nil
}

func decodeModel(raw []byte, format model.Format) (*model.DataModel, error) {
	var m model.DataModel
	switch format {
	case model.FormatJSON:
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	case model.FormatYAML:
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	default:
		return nil, &model.ErrUnsupportedFormat{Extension: string(format)}
	}
	return &m, nil
}
