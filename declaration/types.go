package declaration

import (
	"slices"
	"strings"
)

// TypeSeparator joins alternatives of a union type expression.
const TypeSeparator = "|"

// AnyType is the catch-all type expression.
const AnyType = "any"

// MergeStrings appends to dst every value not already present, skipping
// empty strings, and returns the result.
func MergeStrings(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

// IsNameChar reports whether r can appear inside a dotted type name.
func IsNameChar(r byte) bool {
	return r == '_' || r == '$' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ExtractTypeNames returns every dotted identifier referenced by the given
// type expressions, in first-seen order. Quoted string literals and numbers
// are skipped.
func ExtractTypeNames(types ...string) []string {
	var names []string
	for _, expr := range types {
		for i := 0; i < len(expr); {
			c := expr[i]
			switch {
			case c == '"' || c == '\'' || c == '`':
				end := strings.IndexByte(expr[i+1:], c)
				if end < 0 {
					i = len(expr)
				} else {
					i += end + 2
				}
			case IsNameChar(c):
				j := i
				for j < len(expr) && IsNameChar(expr[j]) {
					j++
				}
				tok := strings.Trim(expr[i:j], ".")
				if tok != "" && !(tok[0] >= '0' && tok[0] <= '9') {
					names = MergeStrings(names, tok)
				}
				i = j
			default:
				i++
			}
		}
	}
	return names
}

// SplitUnion splits a type expression on top-level "|" separators,
// leaving unions nested inside brackets, generics, or parentheses intact.
func SplitUnion(expr string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(expr[start:]))
}

// Namespaces splits a documentation path into its segments. The "." "#"
// and "~" separators are honored only outside of brackets, so
// "series.[key:string]" yields "series" and "[key:string]". Empty segments
// are dropped.
func Namespaces(name string) []string {
	var segs []string
	depth, start := 0, 0
	flush := func(end int) {
		if s := strings.TrimSpace(name[start:end]); s != "" {
			segs = append(segs, s)
		}
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '.', '#', '~':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(name))
	return segs
}

// Equal reports whether two trees are structurally identical: same kinds,
// names, documentation, flags, parameters, and children in the same order.
// Parent pointers are not compared.
func Equal(a, b *Declaration) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Description != b.Description ||
		a.TypesDescription != b.TypesDescription || a.DefaultValue != b.DefaultValue ||
		a.IsOptional != b.IsOptional || a.IsPrivate != b.IsPrivate ||
		a.IsStatic != b.IsStatic || a.IsVariable != b.IsVariable || a.Path != b.Path {
		return false
	}
	if !slices.Equal(a.See, b.See) || !slices.Equal(a.Types, b.Types) ||
		!slices.Equal(a.Events, b.Events) || !slices.Equal(a.Imports, b.Imports) ||
		!slices.Equal(a.Exports, b.Exports) {
		return false
	}
	if len(a.parameters) != len(b.parameters) || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.parameters {
		if !Equal(a.parameters[i], b.parameters[i]) {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
