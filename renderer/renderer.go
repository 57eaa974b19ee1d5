package renderer

import (
	"bytes"
	"strings"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/internal/stringutil"
)

const (
	// DefaultIndent is one nesting level
	DefaultIndent = "    "
	// DefaultWrap is the maximum width of comment lines
	DefaultWrap = 80
)

// Renderer turns declaration trees into .d.ts text.
type Renderer struct {
	// Indent is one nesting level
	Indent string
	// Wrap is the maximum width of comment lines
	Wrap int
}

// New creates a Renderer with default settings
func New() *Renderer {
	return &Renderer{Indent: DefaultIndent, Wrap: DefaultWrap}
}

// Render renders module with default settings.
func Render(module *declaration.Declaration) string {
	return New().Render(module)
}

// Render returns the declaration text of module. Declarations other than
// modules render as a single top-level declaration.
func (r *Renderer) Render(module *declaration.Declaration) string {
	if module == nil {
		return ""
	}
	size := len(module.Children())
	b := getBuffer(size)
	defer putBuffer(b, size)
	if module.Kind != declaration.KindModule {
		r.scopeMember(b, module, "", "declare ")
		return b.String()
	}

	if module.Description != "" {
		b.WriteString("/*!*\n *\n")
		b.WriteString(stringutil.Pad(module.Description, " *  ", r.Wrap))
		b.WriteString(" *\n *!*/\n")
	}
	for _, line := range module.Imports {
		b.WriteString(line + "\n")
	}
	prefix := "export "
	if module.Name == "" {
		prefix = "declare "
	}
	r.scopeMembers(b, module, "", prefix)
	for _, line := range module.Exports {
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (r *Renderer) scopeMembers(b *bytes.Buffer, scope *declaration.Declaration, indent, prefix string) {
	rendered := make(map[string]bool)
	for _, child := range scope.Children() {
		if child.IsPrivate {
			continue
		}
		if child.Kind == declaration.KindFunctionType {
			if rendered[child.Name] {
				continue
			}
			rendered[child.Name] = true
			r.functionType(b, scope, child, indent, prefix)
			continue
		}
		r.scopeMember(b, child, indent, prefix)
	}
}

func (r *Renderer) scopeMember(b *bytes.Buffer, d *declaration.Declaration, indent, prefix string) {
	switch d.Kind {
	case declaration.KindNamespace:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "namespace " + strings.TrimSuffix(d.Name, ":") + " {\n")
		r.scopeMembers(b, d, indent+r.Indent, "export ")
		b.WriteString(indent + "}\n")
	case declaration.KindExternalModule:
		r.comment(b, d, indent)
		b.WriteString(indent + "declare module " + quote(d.Path) + " {\n")
		r.scopeMembers(b, d, indent+r.Indent, "")
		b.WriteString(indent + "}\n")
	case declaration.KindModule:
		r.scopeMembers(b, d, indent, prefix)
	case declaration.KindInterface:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "interface " + d.Name)
		if len(d.Types) > 0 {
			b.WriteString(" extends " + strings.Join(d.Types, ", "))
		}
		b.WriteString(" {\n")
		r.members(b, d, indent+r.Indent)
		b.WriteString(indent + "}\n")
	case declaration.KindClass:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "class " + d.Name)
		if len(d.Types) > 0 {
			b.WriteString(" extends " + d.Types[0])
		}
		if len(d.Types) > 1 {
			b.WriteString(" implements " + strings.Join(d.Types[1:], ", "))
		}
		b.WriteString(" {\n")
		r.members(b, d, indent+r.Indent)
		b.WriteString(indent + "}\n")
	case declaration.KindFunction:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "function " + d.Name + signature(d, ": ") + ";\n")
	case declaration.KindFunctionType:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "type " + d.Name + " = " + signature(d, " => ") + ";\n")
	case declaration.KindType:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "type " + d.Name + " = " + aliasTypes(d) + ";\n")
	case declaration.KindProperty:
		r.comment(b, d, indent)
		b.WriteString(indent + prefix + "let " + d.Name + ": " + types(d) + ";\n")
	}
}

// functionType renders every function type of scope named like d as one
// alias.
func (r *Renderer) functionType(b *bytes.Buffer, scope, d *declaration.Declaration, indent, prefix string) {
	var signatures []*declaration.Declaration
	for _, s := range scope.ChildrenNamed(d.Name) {
		if s.Kind == declaration.KindFunctionType && !s.IsPrivate {
			signatures = append(signatures, s)
		}
	}
	if len(signatures) == 1 {
		r.scopeMember(b, d, indent, prefix)
		return
	}
	r.comment(b, d, indent)
	parts := make([]string, len(signatures))
	for i, s := range signatures {
		parts[i] = "(" + signature(s, " => ") + ")"
	}
	b.WriteString(indent + prefix + "type " + d.Name + " = " + strings.Join(parts, "&") + ";\n")
}

func (r *Renderer) members(b *bytes.Buffer, owner *declaration.Declaration, indent string) {
	for _, m := range owner.Children() {
		if m.IsPrivate {
			continue
		}
		static := ""
		if m.IsStatic && owner.Kind == declaration.KindClass {
			static = "static "
		}
		switch m.Kind {
		case declaration.KindProperty:
			r.comment(b, m, indent)
			b.WriteString(indent + static + m.Name + optional(m) + ": " + types(m) + ";\n")
		case declaration.KindFunction:
			r.comment(b, m, indent)
			b.WriteString(indent + static + m.Name + signature(m, ": ") + ";\n")
		case declaration.KindConstructor:
			r.comment(b, m, indent)
			b.WriteString(indent + "constructor(" + parameters(m) + ");\n")
		}
	}
}

// comment writes the doc comment of d, if it has anything to say.
func (r *Renderer) comment(b *bytes.Buffer, d *declaration.Declaration, indent string) {
	line := indent + " * "
	var sections []string
	if d.Description != "" {
		sections = append(sections, stringutil.Pad(d.Description, line, r.Wrap))
	}
	for _, p := range d.Parameters() {
		if p.Description == "" {
			continue
		}
		sections = append(sections, line+"@param "+p.Name+"\n"+stringutil.Pad(p.Description, line+"       ", r.Wrap))
	}
	if d.TypesDescription != "" {
		sections = append(sections, line+"@return\n"+stringutil.Pad(d.TypesDescription, line+"       ", r.Wrap))
	}
	var tags strings.Builder
	for _, e := range d.Children() {
		if e.Kind == declaration.KindEvent {
			tags.WriteString(line + "@emits " + e.Name + "\n")
		}
	}
	for _, name := range d.Events {
		tags.WriteString(line + "@fires " + name + "\n")
	}
	for _, link := range d.See {
		tags.WriteString(line + "@see " + link + "\n")
	}
	if tags.Len() > 0 {
		sections = append(sections, tags.String())
	}
	if len(sections) == 0 {
		return
	}
	b.WriteString(indent + "/**\n")
	b.WriteString(strings.Join(sections, strings.TrimRight(line, " ")+"\n"))
	b.WriteString(indent + " */\n")
}

// signature renders "(params)" followed by sep and the return type.
func signature(d *declaration.Declaration, sep string) string {
	ret := "void"
	if len(d.Types) > 0 {
		ret = strings.Join(d.Types, declaration.TypeSeparator)
	}
	return "(" + parameters(d) + ")" + sep + ret
}

func parameters(d *declaration.Declaration) string {
	params := d.Parameters()
	out := make([]string, len(params))
	for i, p := range params {
		if p.IsVariable {
			out[i] = "..." + p.Name + ": Array<" + types(p) + ">"
			continue
		}
		out[i] = p.Name + optional(p) + ": " + types(p)
	}
	return strings.Join(out, ", ")
}

func optional(d *declaration.Declaration) string {
	if d.IsOptional && !strings.HasPrefix(d.Name, "[") {
		return "?"
	}
	return ""
}

func types(d *declaration.Declaration) string {
	if len(d.Types) == 0 {
		return declaration.AnyType
	}
	return strings.Join(d.Types, declaration.TypeSeparator)
}

func aliasTypes(d *declaration.Declaration) string {
	if len(d.Types) > 1 {
		return "(" + types(d) + ")"
	}
	return types(d)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
