package differ

import (
	"fmt"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/naming"
)

// ChangeType indicates how a declaration entered the incremental surface
type ChangeType string

const (
	// ChangeTypeAdded indicates a declaration without a reference counterpart
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeExtended indicates a class or interface gaining members
	ChangeTypeExtended ChangeType = "extended"
	// ChangeTypeDerived indicates a product specific alias derived from a shared one
	ChangeTypeDerived ChangeType = "derived"
)

// Change represents one declaration of the incremental surface
type Change struct {
	// Path is the full name of the candidate declaration below the root
	Path string
	// Type indicates how the declaration was kept
	Type ChangeType
	// Kind is the kind of the emitted declaration
	Kind declaration.Kind
	// Message is a human-readable description of the change
	Message string
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", c.Path, c.Type, c.Kind, c.Message)
}

// DiffResult contains the incremental surface of a candidate tree
type DiffResult struct {
	// Module is an external module named after the reference root that
	// holds the filtered declarations
	Module *declaration.Declaration
	// Product is the modular product the surface was computed for
	Product string
	// Changes lists the kept declarations in output order
	Changes []Change
	// AddedCount is the number of added declarations
	AddedCount int
	// ExtendedCount is the number of extended classes and interfaces
	ExtendedCount int
	// DerivedCount is the number of derived aliases
	DerivedCount int
	// DiffTime is the duration of the diff
	DiffTime time.Duration
}

// HasChanges returns true if the candidate adds anything
func (r *DiffResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// Differ computes incremental surfaces.
type Differ struct {
	// Product names the modular product; it prefixes derived aliases
	Product string
	// ImportPath is the path of the emitted external module, e.g. "../highcharts"
	ImportPath string
	// Logger receives diff diagnostics
	Logger doctree.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{Logger: doctree.NopLogger{}}
}

// Diff wraps the declarations of candidate that are not in reference in an
// external module named after the reference root.
func (d *Differ) Diff(candidate, reference *declaration.Declaration) *DiffResult {
	start := time.Now()
	f := filter{product: d.Product, record: true}
	result := &DiffResult{
		Module:  declaration.NewExternalModule(reference.Name, d.ImportPath),
		Product: d.Product,
	}
	result.Module.AddChildren(f.filter("", candidate.Children(), reference.Children())...)

	result.Changes = f.changes
	for _, c := range f.changes {
		switch c.Type {
		case ChangeTypeAdded:
			result.AddedCount++
		case ChangeTypeExtended:
			result.ExtendedCount++
		case ChangeTypeDerived:
			result.DerivedCount++
		}
	}
	result.DiffTime = time.Since(start)

	doctree.OrNop(d.Logger).Debug("computed incremental surface",
		"product", d.Product,
		"reference", reference.Name,
		"added", result.AddedCount,
		"extended", result.ExtendedCount,
		"derived", result.DerivedCount,
	)
	return result
}

// Diff returns the incremental surface of candidate over reference for
// product as an external module named after the reference root.
func Diff(candidate, reference *declaration.Declaration, product string) *declaration.Declaration {
	d := New()
	d.Product = product
	return d.Diff(candidate, reference).Module
}

// Filter returns the declarations of toFilter that are novel relative to
// reference. Kept declarations are detached copies; neither input is
// modified.
func Filter(toFilter, reference []*declaration.Declaration, product string) []*declaration.Declaration {
	f := filter{product: product}
	return f.filter("", toFilter, reference)
}

type filter struct {
	product string
	record  bool
	changes []Change
}

func (f *filter) filter(prefix string, toFilter, reference []*declaration.Declaration) []*declaration.Declaration {
	var out []*declaration.Declaration
	for _, decl := range toFilter {
		path := join(prefix, decl.Name)
		found := firstNamed(reference, decl.Name)

		switch {
		case found == nil:
			out = append(out, decl.Clone())
			f.note(path, ChangeTypeAdded, decl.Kind, "not declared in the reference")

		case found.Kind.IsClassLike() && decl.Kind.IsClassLike():
			iface := declaration.NewInterface(decl.Name)
			iface.AddChildren(f.filter(path, decl.Children(), found.Children())...)
			if iface.HasChildren() {
				out = append(out, iface)
				f.note(path, ChangeTypeExtended, iface.Kind, fmt.Sprintf("adds %d members", len(iface.Children())))
			}

		case found.Kind == declaration.KindType && found.Name == naming.SeriesTypeName:
			alias := declaration.NewType(naming.ProductSeriesTypeName(f.product))
			alias.Description = found.Description
			// Members come from the candidate union: the product's own series types.
			alias.AddTypes(decl.Types...)
			out = append(out, alias)
			f.note(path, ChangeTypeDerived, alias.Kind, "derived "+alias.Name)
		}
	}
	return out
}

func (f *filter) note(path string, t ChangeType, kind declaration.Kind, msg string) {
	if f.record {
		f.changes = append(f.changes, Change{Path: path, Type: t, Kind: kind, Message: msg})
	}
}

func firstNamed(decls []*declaration.Declaration, name string) *declaration.Declaration {
	for _, d := range decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
