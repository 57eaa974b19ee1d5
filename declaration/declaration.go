// Package declaration implements the typed declaration tree that declgen
// builds from documentation and hands to a renderer.
//
// Every node is a *Declaration tagged with a Kind. Children are owned by
// their parent's child list, in insertion order, and parent is a plain
// back-reference used only to compute full names and resolve enclosing
// scopes. Lookups by name always return the first match: same-named
// siblings are overloaded functions, and the model does not disambiguate.
//
// Concurrency: a tree is not safe for concurrent mutation.
package declaration

import (
	"fmt"
	"strings"
)

// Kind tags the construct a Declaration represents.
type Kind int

const (
	// KindModule is a top-level module (one rendered artifact)
	KindModule Kind = iota
	// KindNamespace is a nested namespace
	KindNamespace
	// KindInterface is an interface
	KindInterface
	// KindClass is a class
	KindClass
	// KindFunction is a function or method signature
	KindFunction
	// KindFunctionType is a function type alias
	KindFunctionType
	// KindConstructor is a class constructor signature
	KindConstructor
	// KindProperty is a property or variable
	KindProperty
	// KindParameter is a parameter of a callable
	KindParameter
	// KindType is a type alias
	KindType
	// KindEvent is an event documented on a callable
	KindEvent
	// KindExternalModule augments a module imported from another path
	KindExternalModule
)

var kindNames = [...]string{
	KindModule:         "module",
	KindNamespace:      "namespace",
	KindInterface:      "interface",
	KindClass:          "class",
	KindFunction:       "function",
	KindFunctionType:   "function type",
	KindConstructor:    "constructor",
	KindProperty:       "property",
	KindParameter:      "parameter",
	KindType:           "type",
	KindEvent:          "event",
	KindExternalModule: "external module",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsCallable reports whether declarations of this kind carry parameters.
func (k Kind) IsCallable() bool {
	return k == KindFunction || k == KindFunctionType || k == KindConstructor
}

// IsClassLike reports whether the kind is a class or an interface.
func (k Kind) IsClassLike() bool {
	return k == KindClass || k == KindInterface
}

// IsScope reports whether the kind is a module-like container.
func (k Kind) IsScope() bool {
	return k == KindModule || k == KindNamespace || k == KindExternalModule
}

// ConstructorName is the name given to constructor declarations.
const ConstructorName = "constructor"

// Declaration is one node of the declaration tree.
type Declaration struct {
	Kind Kind
	// Name is the local identifier. It is not unique among siblings.
	Name        string
	Description string
	// See lists reference links, deduplicated in first-seen order
	See []string
	// Types lists type expressions, deduplicated in first-seen order.
	// For callables these are the return types.
	Types []string
	// TypesDescription documents the return value of a callable
	TypesDescription string
	// DefaultValue documents a parameter default
	DefaultValue string
	IsOptional   bool
	IsPrivate    bool
	IsStatic     bool
	// IsVariable marks a rest parameter
	IsVariable bool
	// Events lists the names of events a callable fires
	Events []string
	// Imports and Exports are module header and footer statements
	Imports []string
	Exports []string
	// Path is the import path of an external module
	Path string

	parameters []*Declaration
	children   []*Declaration
	parent     *Declaration
}

// New creates a detached declaration of the given kind.
func New(kind Kind, name string) *Declaration {
	return &Declaration{Kind: kind, Name: name}
}

// NewModule creates a module declaration.
func NewModule(name string) *Declaration { return New(KindModule, name) }

// NewNamespace creates a namespace declaration.
func NewNamespace(name string) *Declaration { return New(KindNamespace, name) }

// NewInterface creates an interface declaration.
func NewInterface(name string) *Declaration { return New(KindInterface, name) }

// NewClass creates a class declaration.
func NewClass(name string) *Declaration { return New(KindClass, name) }

// NewFunction creates a function declaration.
func NewFunction(name string) *Declaration { return New(KindFunction, name) }

// NewConstructor creates a constructor declaration.
func NewConstructor() *Declaration { return New(KindConstructor, ConstructorName) }

// NewProperty creates a property declaration.
func NewProperty(name string) *Declaration { return New(KindProperty, name) }

// NewParameter creates a parameter declaration.
func NewParameter(name string) *Declaration { return New(KindParameter, name) }

// NewType creates a type alias declaration.
func NewType(name string) *Declaration { return New(KindType, name) }

// NewExternalModule creates an external module declaration augmenting the
// module named name at import path.
func NewExternalModule(name, path string) *Declaration {
	d := New(KindExternalModule, name)
	d.Path = path
	return d
}

// Parent returns the enclosing declaration, or nil for a root or a detached node.
func (d *Declaration) Parent() *Declaration {
	return d.parent
}

// FullName joins the names of d and its ancestors with ".", skipping
// ancestors without a name.
func (d *Declaration) FullName() string {
	var parts []string
	for n := d; n != nil; n = n.parent {
		if n.Name != "" {
			parts = append(parts, n.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Root returns the topmost ancestor of d.
func (d *Declaration) Root() *Declaration {
	n := d
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// EnclosingScope returns d or its nearest ancestor whose kind satisfies match.
func (d *Declaration) EnclosingScope(match func(Kind) bool) *Declaration {
	for n := d; n != nil; n = n.parent {
		if match(n.Kind) {
			return n
		}
	}
	return nil
}

// AddChildren appends children to d and makes d their parent. A child that
// belongs to another declaration is detached from it first.
func (d *Declaration) AddChildren(children ...*Declaration) {
	for _, c := range children {
		if c == nil {
			continue
		}
		d.adopt(c)
		d.children = append(d.children, c)
	}
}

func (d *Declaration) adopt(c *Declaration) {
	for n := d; n != nil; n = n.parent {
		if n == c {
			panic(fmt.Sprintf("declaration: adding %q under %q would create a cycle", c.FullName(), d.FullName()))
		}
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = d
}

func (d *Declaration) detach(c *Declaration) {
	for i, child := range d.children {
		if child == c {
			d.children = append(d.children[:i:i], d.children[i+1:]...)
			c.parent = nil
			return
		}
	}
	for i, p := range d.parameters {
		if p == c {
			d.parameters = append(d.parameters[:i:i], d.parameters[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// HasChildren reports whether d has any children.
func (d *Declaration) HasChildren() bool {
	return len(d.children) > 0
}

// Children returns the children of d in insertion order.
func (d *Declaration) Children() []*Declaration {
	return append([]*Declaration(nil), d.children...)
}

// ChildrenNamed returns every child called name, in insertion order.
func (d *Declaration) ChildrenNamed(name string) []*Declaration {
	var out []*Declaration
	for _, c := range d.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first child called name, or nil.
func (d *Declaration) Child(name string) *Declaration {
	for _, c := range d.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildOfKind returns the first child called name if it has the given kind.
// Later same-named children are not considered.
func (d *Declaration) ChildOfKind(kind Kind, name string) *Declaration {
	if c := d.Child(name); c != nil && c.Kind == kind {
		return c
	}
	return nil
}

// ChildrenNames returns the local names of the children of d. With
// recursive set it returns the full names of every descendant instead,
// in pre-order.
func (d *Declaration) ChildrenNames(recursive bool) []string {
	names := make([]string, 0, len(d.children))
	for _, c := range d.children {
		if !recursive {
			names = append(names, c.Name)
			continue
		}
		names = append(names, c.FullName())
		names = append(names, c.ChildrenNames(true)...)
	}
	return names
}

// RemoveChildren detaches and returns all children of d.
func (d *Declaration) RemoveChildren() []*Declaration {
	removed := d.children
	d.children = nil
	for _, c := range removed {
		c.parent = nil
	}
	return removed
}

// RemoveChild detaches and returns the first child called name, or nil.
func (d *Declaration) RemoveChild(name string) *Declaration {
	c := d.Child(name)
	if c != nil {
		d.detach(c)
	}
	return c
}

// Parameters returns the parameters of a callable in order.
func (d *Declaration) Parameters() []*Declaration {
	return append([]*Declaration(nil), d.parameters...)
}

// HasParameters reports whether d has any parameters.
func (d *Declaration) HasParameters() bool {
	return len(d.parameters) > 0
}

// ParameterNames returns the parameter names in order.
func (d *Declaration) ParameterNames() []string {
	names := make([]string, 0, len(d.parameters))
	for _, p := range d.parameters {
		names = append(names, p.Name)
	}
	return names
}

// SetParameters replaces the parameter list of d.
func (d *Declaration) SetParameters(params ...*Declaration) {
	for _, p := range d.parameters {
		p.parent = nil
	}
	d.parameters = nil
	for _, p := range params {
		if p == nil {
			continue
		}
		d.adopt(p)
		d.parameters = append(d.parameters, p)
	}
}

// AddTypes appends the types not yet present, keeping first-seen order.
func (d *Declaration) AddTypes(types ...string) {
	d.Types = MergeStrings(d.Types, types...)
}

// SetTypes replaces the type list with the deduplicated types.
func (d *Declaration) SetTypes(types ...string) {
	d.Types = MergeStrings(nil, types...)
}

// AddSee appends the links not yet present.
func (d *Declaration) AddSee(links ...string) {
	d.See = MergeStrings(d.See, links...)
}

// Absorb folds documentation into d: the first non-empty description wins,
// see links and types are unioned in first-seen order.
func (d *Declaration) Absorb(description string, see []string, types ...string) {
	if d.Description == "" {
		d.Description = description
	}
	d.AddSee(see...)
	d.AddTypes(types...)
}

// Upsert returns the first child called name when it has the given kind,
// otherwise it appends a new declaration of that kind. created reports
// which happened.
func (d *Declaration) Upsert(kind Kind, name string) (child *Declaration, created bool) {
	if existing := d.ChildOfKind(kind, name); existing != nil {
		return existing, false
	}
	child = New(kind, name)
	d.AddChildren(child)
	return child, true
}

// Clone returns a deep copy of d without a parent. Parameters and children
// are cloned recursively and attached to the copy.
func (d *Declaration) Clone() *Declaration {
	c := &Declaration{
		Kind:             d.Kind,
		Name:             d.Name,
		Description:      d.Description,
		See:              cloneStrings(d.See),
		Types:            cloneStrings(d.Types),
		TypesDescription: d.TypesDescription,
		DefaultValue:     d.DefaultValue,
		IsOptional:       d.IsOptional,
		IsPrivate:        d.IsPrivate,
		IsStatic:         d.IsStatic,
		IsVariable:       d.IsVariable,
		Events:           cloneStrings(d.Events),
		Imports:          cloneStrings(d.Imports),
		Exports:          cloneStrings(d.Exports),
		Path:             d.Path,
	}
	for _, p := range d.parameters {
		pc := p.Clone()
		pc.parent = c
		c.parameters = append(c.parameters, pc)
	}
	for _, child := range d.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Walk calls fn for d, then for its parameters, then for every child
// subtree, in order.
func (d *Declaration) Walk(fn func(*Declaration)) {
	fn(d)
	for _, p := range d.parameters {
		p.Walk(fn)
	}
	for _, c := range d.children {
		c.Walk(fn)
	}
}

// String returns the kind and full name, e.g. "interface Highcharts.Options".
func (d *Declaration) String() string {
	return d.Kind.String() + " " + d.FullName()
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
