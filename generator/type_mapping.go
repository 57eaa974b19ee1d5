// This file implements doc type name to declaration type mapping.

package generator

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/declgen/declaration"
)

// typeTable maps jsdoc type names to their declaration spelling.
var typeTable = map[string]string{
	"*":       declaration.AnyType,
	"Array":   "Array<any>",
	"Boolean": "boolean",
	"Number":  "number",
	"Object":  "object",
	"String":  "string",
}

// anyTypeRegex matches an "any" token delimited by a generic, group or
// union boundary.
var anyTypeRegex = regexp.MustCompile(`(^|[<(|])any([|)>]|$)`)

// MapType normalizes one doc type expression. Names in the type table are
// replaced wherever they appear as a whole token, including inside
// generics and unions; the jsdoc "Array.<T>" form becomes "Array<T>" and
// union members are joined without spaces.
func MapType(expr string) string {
	expr = strings.TrimSpace(strings.ReplaceAll(expr, ".<", "<"))
	if mapped, ok := typeTable[expr]; ok {
		return mapped
	}
	if parts := declaration.SplitUnion(expr); len(parts) > 1 {
		for i, p := range parts {
			parts[i] = MapType(p)
		}
		return strings.Join(parts, declaration.TypeSeparator)
	}

	var b strings.Builder
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '"' || c == '\'':
			end := strings.IndexByte(expr[i+1:], c)
			if end < 0 {
				b.WriteString(expr[i:])
				return b.String()
			}
			b.WriteString(expr[i : i+end+2])
			i += end + 2
		case c == '*':
			b.WriteString(declaration.AnyType)
			i++
		case declaration.IsNameChar(c):
			j := i
			for j < len(expr) && declaration.IsNameChar(expr[j]) {
				j++
			}
			tok := expr[i:j]
			mapped, ok := typeTable[tok]
			if !ok || (tok == "Array" && j < len(expr) && expr[j] == '<') {
				mapped = tok
			}
			b.WriteString(mapped)
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// MapTypes maps every expression and removes duplicates.
func MapTypes(exprs []string) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		out = declaration.MergeStrings(out, MapType(e))
	}
	return out
}

// MapValue turns one enumerated option value into a literal type.
func MapValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		b, _ := json.Marshal(val)
		return string(b)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return declaration.AnyType
		}
		return string(b)
	}
}

// parseValues decodes a raw values payload. ok is false when the payload
// is empty; err is set when it is present but not a JSON array.
func parseValues(raw string) (types []string, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false, nil
	}
	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, err
	}
	for _, v := range values {
		types = declaration.MergeStrings(types, MapValue(v))
	}
	return types, true, nil
}

// replaceAnyType substitutes name for every any token in expr.
func replaceAnyType(expr, name string) (string, bool) {
	if !anyTypeRegex.MatchString(expr) {
		return expr, false
	}
	// Adjacent tokens share a delimiter, so repeat until none remain.
	for anyTypeRegex.MatchString(expr) {
		expr = anyTypeRegex.ReplaceAllString(expr, "${1}"+name+"${2}")
	}
	return expr, true
}

// isLiteralUnion reports whether types holds two or more string literals
// and nothing else.
func isLiteralUnion(types []string) bool {
	if len(types) < 2 {
		return false
	}
	for _, t := range types {
		if !strings.HasPrefix(t, `"`) {
			return false
		}
	}
	return true
}

// classTypes keeps the names that are not all lower case; an extends list
// names classes, not primitives.
func classTypes(types []string) []string {
	var out []string
	for _, t := range types {
		if t != strings.ToLower(t) {
			out = append(out, t)
		}
	}
	return out
}
