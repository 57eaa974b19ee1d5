// Package issues provides the issue type reported by the generator passes
// and collected by the pipeline.
package issues

import (
	"fmt"

	"github.com/erraggy/declgen/internal/severity"
)

// Issue represents a single problem found while building a declaration tree.
type Issue struct {
	// Path is the doc path or declaration full name the issue relates to
	// (e.g., "Highcharts.Chart#addSeries")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
	// Line is the 1-based line number in the documented source file (0 if unknown)
	Line int
	// File is the documented source file, taken from the doc node meta
	File string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var result string
	if i.Line > 0 {
		result = fmt.Sprintf("%s %s (%s): %s", symbol, i.Path, i.Location(), i.Message)
	} else {
		result = fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	}

	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}

	return result
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line" if file is set, "line N" if only line is set,
// or the path if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d", i.File, i.Line)
	}
	return fmt.Sprintf("line %d", i.Line)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Count returns how many issues carry the given severity.
func Count(list []Issue, s severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == s {
			n++
		}
	}
	return n
}
