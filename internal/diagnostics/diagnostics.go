// Package diagnostics accumulates validation errors and warnings. Validators
// never fail fast: every rule evaluates independently and pushes its findings
// here, so a caller can render all problems in a single pass.
package diagnostics

import (
	"strings"
)

// Error is a fatal model violation.
type Error struct {
	message string
}

// NewError creates an Error with the given message.
func NewError(message string) Error {
	return Error{message: message}
}

// Message returns the human-readable violation text.
func (e Error) Message() string { return e.message }

// Warning is an advisory finding that never blocks generation.
type Warning struct {
	message string
}

// NewWarning creates a Warning with the given message.
func NewWarning(message string) Warning {
	return Warning{message: message}
}

// Message returns the human-readable warning text.
func (w Warning) Message() string { return w.message }

// Diagnostics is a collection of errors and warnings accumulated during a
// validation pass.
type Diagnostics struct {
	errors   []Error
	warnings []Warning
}

// New creates an empty Diagnostics collection.
func New() *Diagnostics {
	return &Diagnostics{
		errors:   make([]Error, 0),
		warnings: make([]Warning, 0),
	}
}

// PushError adds an error to the collection.
func (d *Diagnostics) PushError(err Error) {
	d.errors = append(d.errors, err)
}

// PushWarning adds a warning to the collection.
func (d *Diagnostics) PushWarning(warning Warning) {
	d.warnings = append(d.warnings, warning)
}

// Merge appends all findings from other into d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	d.errors = append(d.errors, other.errors...)
	d.warnings = append(d.warnings, other.warnings...)
}

// HasErrors returns true if there is at least one error in this collection.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// Errors returns all errors in the collection.
func (d *Diagnostics) Errors() []Error { return d.errors }

// Warnings returns all warnings in the collection.
func (d *Diagnostics) Warnings() []Warning { return d.warnings }

// ErrorMessages returns the error texts, one per violation.
func (d *Diagnostics) ErrorMessages() []string {
	msgs := make([]string, len(d.errors))
	for i, e := range d.errors {
		msgs[i] = e.Message()
	}
	return msgs
}

// WarningMessages returns the warning texts, one per finding.
func (d *Diagnostics) WarningMessages() []string {
	msgs := make([]string, len(d.warnings))
	for i, w := range d.warnings {
		msgs[i] = w.Message()
	}
	return msgs
}

// JoinErrors returns all error messages newline-joined.
func (d *Diagnostics) JoinErrors() string {
	return strings.Join(d.ErrorMessages(), "\n")
}
