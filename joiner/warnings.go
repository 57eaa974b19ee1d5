package joiner

import (
	"fmt"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/internal/severity"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnKindMismatch indicates same-named declarations of different kinds were merged.
	WarnKindMismatch WarningCategory = "kind_mismatch"
)

// JoinWarning represents a structured warning from the joiner package.
type JoinWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path is the full name of the affected target declaration.
	Path string
	// Message is a human-readable description.
	Message string
	// Severity indicates warning severity (default: SeverityWarning).
	Severity severity.Severity
}

// String returns the warning message.
func (w *JoinWarning) String() string {
	return w.Message
}

func newKindMismatchWarning(target, source *declaration.Declaration) *JoinWarning {
	return &JoinWarning{
		Category: WarnKindMismatch,
		Path:     target.FullName(),
		Message:  fmt.Sprintf("merged %s into %s of a different kind", source.Kind, target),
		Severity: severity.SeverityWarning,
	}
}

// JoinWarnings is a collection of JoinWarning pointers.
type JoinWarnings []*JoinWarning

// Strings returns warning messages for display.
func (ws JoinWarnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// ByCategory returns the warnings of category c.
func (ws JoinWarnings) ByCategory(c WarningCategory) JoinWarnings {
	var out JoinWarnings
	for _, w := range ws {
		if w.Category == c {
			out = append(out, w)
		}
	}
	return out
}
