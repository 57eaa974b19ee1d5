// Package severity provides severity level constants for issues reported
// while generating, joining and pruning declaration trees.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a generation issue.
type Severity int

const (
	// SeverityError indicates input that could not be turned into a declaration.
	SeverityError Severity = iota

	// SeverityWarning indicates a degraded result: a skipped doc node, a
	// malformed values payload, an ambiguous alias name.
	SeverityWarning

	// SeverityInfo indicates informational messages about generation choices.
	SeverityInfo

	// SeverityCritical indicates a pass that could not complete.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
