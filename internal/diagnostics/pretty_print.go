package diagnostics

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
)

// ToPrettyString renders all errors as a flat colored list, one line per
// violation, so every problem is visible in a single pass.
func (d *Diagnostics) ToPrettyString() string {
	var buf bytes.Buffer
	errorTitle := color.New(color.FgRed, color.Bold)
	for _, err := range d.errors {
		errorTitle.Fprint(&buf, "error")
		fmt.Fprintf(&buf, ": %s\n", err.Message())
	}
	return buf.String()
}

// WarningsToPrettyString renders all warnings, one line per finding.
func (d *Diagnostics) WarningsToPrettyString() string {
	var buf bytes.Buffer
	warningTitle := color.New(color.FgYellow, color.Bold)
	for _, warn := range d.warnings {
		warningTitle.Fprint(&buf, "warning")
		fmt.Fprintf(&buf, ": %s\n", warn.Message())
	}
	return buf.String()
}
