package fixer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeInvalidType indicates an undeclared type reference was replaced with any
	FixTypeInvalidType FixType = "invalid-type"
)

// Fix represents a single fix applied to a declaration
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the full name of the fixed declaration (e.g., "Highcharts.Chart.addSeries.options")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the type list before the fix
	Before []string
	// After is the type list after the fix
	After []string
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Namespace is the fixed declaration tree
	Namespace *declaration.Declaration
	// Removed lists every replaced type name in first-seen order
	Removed []string
	// Fixes contains all fixes applied
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// Fixer prunes invalid type references
type Fixer struct {
	// Prefix selects the names that are checked. Empty means the namespace
	// name followed by ".".
	Prefix string
	// Logger receives fix diagnostics
	Logger doctree.Logger
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{Logger: doctree.NopLogger{}}
}

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

type fixConfig struct {
	namespace *declaration.Declaration
	prefix    *string
	logger    doctree.Logger
}

// FixWithOptions prunes a namespace using functional options.
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}
	f := New()
	if cfg.prefix != nil {
		f.Prefix = *cfg.prefix
	}
	if cfg.logger != nil {
		f.Logger = cfg.logger
	}
	return f.Fix(cfg.namespace), nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*fixConfig, error) {
	cfg := &fixConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.namespace == nil {
		return nil, fmt.Errorf("must specify a namespace declaration")
	}
	return cfg, nil
}

// WithNamespace sets the declaration tree to fix
func WithNamespace(ns *declaration.Declaration) Option {
	return func(cfg *fixConfig) error {
		cfg.namespace = ns
		return nil
	}
}

// WithPrefix sets the prefix of checked type names
// Default: the namespace name followed by "."
func WithPrefix(prefix string) Option {
	return func(cfg *fixConfig) error {
		if !strings.HasSuffix(prefix, ".") {
			return fmt.Errorf("prefix %q must end with \".\"", prefix)
		}
		cfg.prefix = &prefix
		return nil
	}
}

// WithLogger sets the logger for fix diagnostics
// Default: doctree.NopLogger
func WithLogger(l doctree.Logger) Option {
	return func(cfg *fixConfig) error {
		cfg.logger = l
		return nil
	}
}

// PruneInvalidTypes replaces every undeclared namespaced type reference in
// namespace with any and returns the replaced names.
func PruneInvalidTypes(namespace *declaration.Declaration) []string {
	return New().Fix(namespace).Removed
}

// Fix prunes namespace in place.
func (f *Fixer) Fix(namespace *declaration.Declaration) *FixResult {
	result := &FixResult{Namespace: namespace}
	if namespace == nil {
		return result
	}
	prefix := f.Prefix
	if prefix == "" {
		prefix = namespace.Name + "."
	}
	declared := declaredNames(namespace)

	namespace.Walk(func(d *declaration.Declaration) {
		if len(d.Types) == 0 {
			return
		}
		before := slices.Clone(d.Types)
		var replaced []string
		for _, name := range declaration.ExtractTypeNames(d.Types...) {
			if !strings.HasPrefix(name, prefix) || declared[name] {
				continue
			}
			changed := false
			for i, t := range d.Types {
				if out, ok := replaceTypeName(t, name, declaration.AnyType); ok {
					d.Types[i] = out
					changed = true
				}
			}
			if changed {
				replaced = append(replaced, name)
			}
		}
		if len(replaced) == 0 {
			return
		}
		d.SetTypes(d.Types...)
		result.Removed = declaration.MergeStrings(result.Removed, replaced...)
		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeInvalidType,
			Path:        d.FullName(),
			Description: fmt.Sprintf("replaced undeclared %s with %s", strings.Join(replaced, ", "), declaration.AnyType),
			Before:      before,
			After:       slices.Clone(d.Types),
		})
	})
	result.FixCount = len(result.Fixes)

	if result.HasFixes() {
		doctree.OrNop(f.Logger).Info("removed invalid types",
			"namespace", namespace.FullName(),
			"count", len(result.Removed),
			"types", strings.Join(result.Removed, ", "),
		)
	}
	return result
}

// declaredNames collects the full name of every declaration below ns along
// with each of its dotted prefixes.
func declaredNames(ns *declaration.Declaration) map[string]bool {
	names := make(map[string]bool)
	for _, full := range ns.ChildrenNames(true) {
		for {
			names[full] = true
			i := strings.LastIndexByte(full, '.')
			if i < 0 {
				break
			}
			full = full[:i]
		}
	}
	return names
}

// replaceTypeName replaces whole-token occurrences of name in expr. Quoted
// literals are skipped.
func replaceTypeName(expr, name, with string) (string, bool) {
	var b strings.Builder
	found := false
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := strings.IndexByte(expr[i+1:], c)
			if end < 0 {
				b.WriteString(expr[i:])
				i = len(expr)
				continue
			}
			b.WriteString(expr[i : i+end+2])
			i += end + 2
		case declaration.IsNameChar(c):
			j := i
			for j < len(expr) && declaration.IsNameChar(expr[j]) {
				j++
			}
			if expr[i:j] == name && isTokenEnd(expr, j) {
				b.WriteString(with)
				found = true
			} else {
				b.WriteString(expr[i:j])
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	if !found {
		return expr, false
	}
	return b.String(), true
}

func isTokenEnd(expr string, i int) bool {
	if i == len(expr) {
		return true
	}
	switch expr[i] {
	case '|', '>', ')', ']', ',':
		return true
	}
	return false
}
