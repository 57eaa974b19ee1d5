// Package doctree holds the read-only documentation tree that declgen
// consumes: doc nodes carrying structured doclets, produced by an external
// jsdoc-style parser and loaded here from JSON or YAML.
package doctree

import (
	"strings"

	"github.com/erraggy/declgen/internal/maputil"
)

// Node is a single entry of the documentation tree.
type Node struct {
	Doclet   *Doclet                `json:"doclet,omitempty"   yaml:"doclet,omitempty"`
	Children maputil.Ordered[*Node] `json:"children,omitzero"  yaml:"children,omitempty"`
	Meta     Meta                   `json:"meta,omitzero"      yaml:"meta,omitempty"`
}

// Doclet is the structured documentation record attached to a node.
type Doclet struct {
	Kind        string                      `json:"kind,omitempty"        yaml:"kind,omitempty"`
	Name        string                      `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string                      `json:"description,omitempty" yaml:"description,omitempty"`
	Types       []string                    `json:"types,omitempty"       yaml:"types,omitempty"`
	Type        *TypeNames                  `json:"type,omitempty"        yaml:"type,omitempty"`
	Parameters  maputil.Ordered[*Parameter] `json:"parameters,omitzero"   yaml:"parameters,omitempty"`
	Return      *Return                     `json:"return,omitempty"      yaml:"return,omitempty"`
	See         []string                    `json:"see,omitempty"         yaml:"see,omitempty"`
	Products    []string                    `json:"products,omitempty"    yaml:"products,omitempty"`
	Access      string                      `json:"access,omitempty"      yaml:"access,omitempty"`
	IsGlobal    bool                        `json:"isGlobal,omitempty"    yaml:"isGlobal,omitempty"`
	IsPrivate   bool                        `json:"isPrivate,omitempty"   yaml:"isPrivate,omitempty"`
	IsStatic    bool                        `json:"isStatic,omitempty"    yaml:"isStatic,omitempty"`
	IsOptional  bool                        `json:"isOptional,omitempty"  yaml:"isOptional,omitempty"`
	// Values is the raw JSON payload of enumerated option values, e.g. `["a", "b"]`.
	Values      string                  `json:"values,omitempty"      yaml:"values,omitempty"`
	Exclude     []string                `json:"exclude,omitempty"     yaml:"exclude,omitempty"`
	Extends     []string                `json:"_extends,omitempty"    yaml:"_extends,omitempty"`
	ExtendsList []string                `json:"extendsList,omitempty" yaml:"extendsList,omitempty"`
	Events      maputil.Ordered[*Event] `json:"events,omitzero"       yaml:"events,omitempty"`
	Fires       []string                `json:"fires,omitempty"       yaml:"fires,omitempty"`
}

// TypeNames is the options-tree form of a declared type list.
type TypeNames struct {
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// Parameter documents one parameter of a callable.
type Parameter struct {
	Description  string   `json:"description,omitempty"  yaml:"description,omitempty"`
	Types        []string `json:"types,omitempty"        yaml:"types,omitempty"`
	IsOptional   bool     `json:"isOptional,omitempty"   yaml:"isOptional,omitempty"`
	IsVariable   bool     `json:"isVariable,omitempty"   yaml:"isVariable,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Return documents the result of a callable.
type Return struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Types       []string `json:"types,omitempty"       yaml:"types,omitempty"`
}

// Event documents an event fired by a callable.
type Event struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Types       []string `json:"types,omitempty"       yaml:"types,omitempty"`
}

// Meta locates a node in the documented sources.
type Meta struct {
	FullName string `json:"fullname,omitempty" yaml:"fullname,omitempty"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Line     int    `json:"line,omitempty"     yaml:"line,omitempty"`
	LineEnd  int    `json:"lineEnd,omitempty"  yaml:"lineEnd,omitempty"`
}

// OrderKey keys a node when its parent lists children as an array.
func (n *Node) OrderKey() string {
	if n == nil {
		return ""
	}
	if n.Meta.Name != "" {
		return n.Meta.Name
	}
	if n.Doclet != nil {
		return n.Doclet.Name
	}
	return ""
}

// Kind returns the doclet kind, or "" when the node has no doclet.
func (n *Node) Kind() string {
	if n == nil || n.Doclet == nil {
		return ""
	}
	return n.Doclet.Kind
}

// Path returns the dotted doc path of the node: meta.fullname, then
// meta.name, then the doclet name.
func (n *Node) Path() string {
	switch {
	case n.Meta.FullName != "":
		return n.Meta.FullName
	case n.Meta.Name != "":
		return n.Meta.Name
	case n.Doclet != nil:
		return n.Doclet.Name
	}
	return ""
}

// HasChildren reports whether the node has any children.
func (n *Node) HasChildren() bool {
	return n.Children.Len() > 0
}

// Child returns the child stored under key.
func (n *Node) Child(key string) *Node {
	c, _ := n.Children.Get(key)
	return c
}

// ChildNodes returns the children in document order.
func (n *Node) ChildNodes() []*Node {
	return n.Children.Values()
}

// IsPrivate reports whether the node is marked private by access or flag.
func (n *Node) IsPrivate() bool {
	return n.Doclet != nil && (n.Doclet.Access == "private" || n.Doclet.IsPrivate)
}

// TypeNames returns the declared types in whichever form the doclet uses.
func (d *Doclet) TypeNames() []string {
	if d == nil {
		return nil
	}
	if d.Type != nil && len(d.Type.Names) > 0 {
		return d.Type.Names
	}
	return d.Types
}

// Inherits returns the doc paths the node inherits options from.
func (d *Doclet) Inherits() []string {
	if d == nil {
		return nil
	}
	if len(d.Extends) > 0 {
		return d.Extends
	}
	return d.ExtendsList
}

// InheritsFrom reports whether any inherited path starts with prefix.
func (d *Doclet) InheritsFrom(prefix string) bool {
	for _, name := range d.Inherits() {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// HasProduct reports whether the doclet is scoped to product. A doclet
// without a product list belongs to every product.
func (d *Doclet) HasProduct(product string) bool {
	if d == nil || product == "" || len(d.Products) == 0 {
		return true
	}
	for _, p := range d.Products {
		if p == product {
			return true
		}
	}
	return false
}

// Stats summarizes a doc tree.
type Stats struct {
	// NodeCount is the number of nodes, including the root
	NodeCount int
	// MaxDepth is the deepest nesting level (root is 1)
	MaxDepth int
	// Kinds counts nodes per doclet kind
	Kinds map[string]int
}

// ComputeStats walks the tree rooted at n.
func ComputeStats(n *Node) Stats {
	stats := Stats{Kinds: make(map[string]int)}
	var walk func(*Node, int)
	walk = func(node *Node, depth int) {
		if node == nil {
			return
		}
		stats.NodeCount++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if k := node.Kind(); k != "" {
			stats.Kinds[k]++
		}
		for _, c := range node.ChildNodes() {
			walk(c, depth+1)
		}
	}
	walk(n, 1)
	return stats
}
