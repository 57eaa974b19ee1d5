package generator

import (
	"slices"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/declerrors"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/naming"
)

const (
	optionsPass      = "options"
	seriesOptions    = "SeriesOptions"
	seriesTypePath   = "series.type"
	indexerName      = "[key:string]"
	excludedDocument = "Not available"
	seriesTypeDoc    = "The possible types of series options."
	discriminantDoc  = "This property is only in TypeScript non-optional and might be " +
		"`undefined` in series objects from unknown sources."
)

// OptionsGenerator turns a nested options doc tree into interfaces in a
// fresh namespace module. Every run starts over with an empty module.
// It is not safe for concurrent use.
type OptionsGenerator struct {
	cfg       *generateConfig
	namespace *declaration.Declaration
	series    []string
	report    reporter
}

// NewOptionsGenerator creates an options generator.
func NewOptionsGenerator(opts ...Option) (*OptionsGenerator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &OptionsGenerator{cfg: cfg}, nil
}

// Generate builds the options module from the tree rooted at root. A
// missing Options interface, Options.series property or series data
// option aborts the pass with a *declerrors.AnchorError.
func (g *OptionsGenerator) Generate(root *doctree.Node) (*GenerateResult, error) {
	start := time.Now()
	g.namespace = declaration.NewModule(g.cfg.namespace)
	g.series = nil
	g.report = reporter{logger: g.cfg.logger.With("pass", optionsPass)}

	if root == nil {
		return nil, &declerrors.AnchorError{Pass: optionsPass, Anchor: "Options", Message: "options tree is empty"}
	}
	if _, err := g.generateInterface(root); err != nil {
		return nil, err
	}
	if err := g.generateSeriesUnion(); err != nil {
		return nil, err
	}
	g.generateLiteralTypes(g.namespace)

	g.report.logger.Debug("generated options", "declarations", len(g.namespace.ChildrenNames(true)))
	return g.report.result(g.namespace, g.cfg.product, start), nil
}

func (g *OptionsGenerator) qualified(name string) string {
	return g.cfg.namespace + "." + name
}

// generateInterface declares the interface of an object-valued option and
// its properties. extra nodes are treated as additional children.
func (g *OptionsGenerator) generateInterface(node *doctree.Node, extra ...*doctree.Node) (*declaration.Declaration, error) {
	if node.IsPrivate() {
		return nil, nil
	}
	d := g.normalizeOption(node)
	name := naming.OptionsInterfaceName(node.Path())
	iface, _ := g.namespace.Upsert(declaration.KindInterface, name)
	iface.Absorb(d.description, d.see)

	children := append(node.ChildNodes(), extra...)
	if name != seriesOptions {
		for _, child := range children {
			if _, err := g.generateProperty(child, iface); err != nil {
				return nil, err
			}
		}
		return iface, nil
	}

	for _, child := range children {
		if isSeriesType(child) {
			continue
		}
		if _, err := g.generateProperty(child, iface); err != nil {
			return nil, err
		}
	}
	if _, err := g.generateProperty(seriesIndexer(), iface); err != nil {
		return nil, err
	}
	for _, child := range children {
		if !isSeriesType(child) {
			continue
		}
		decl, err := g.generateSeriesType(child)
		if err != nil {
			return nil, err
		}
		if decl != nil {
			g.series = append(g.series, decl.FullName())
		}
	}
	return iface, nil
}

// isSeriesType reports whether a series child defines a series type of its
// own rather than a shared series option.
func isSeriesType(node *doctree.Node) bool {
	return node.HasChildren() && node.Doclet.InheritsFrom("plotOptions")
}

// seriesIndexer is the synthetic "[key:string]: any" option.
func seriesIndexer() *doctree.Node {
	return &doctree.Node{
		Doclet: &doctree.Doclet{Type: &doctree.TypeNames{Names: []string{"*"}}},
		Meta:   doctree.Meta{FullName: "series." + indexerName, Name: indexerName},
	}
}

func (g *OptionsGenerator) generateProperty(node *doctree.Node, target *declaration.Declaration, extra ...*doctree.Node) (*declaration.Declaration, error) {
	if node.IsPrivate() {
		return nil, nil
	}
	d := g.normalizeOption(node)
	types := d.types

	if node.HasChildren() || len(extra) > 0 {
		iface, err := g.generateInterface(node, extra...)
		if err != nil || iface == nil {
			return nil, err
		}
		replaced := false
		mapped := make([]string, 0, len(types)+1)
		for _, t := range types {
			t, ok := replaceAnyType(t, iface.Name)
			replaced = replaced || ok
			mapped = append(mapped, t)
		}
		if !replaced {
			mapped = append(mapped, iface.FullName())
		}
		types = declaration.MergeStrings(nil, mapped...)
	}

	decl := declaration.NewProperty(node.Meta.Name)
	decl.Description = d.description
	decl.AddSee(d.see...)
	decl.IsOptional = node.Path() != seriesTypePath

	values, hasValues, err := parseValues(rawValues(node))
	if err != nil {
		g.report.warn(node, "malformed values payload, keeping declared types", rawValues(node))
	}
	if hasValues {
		decl.AddTypes(values...)
	} else {
		decl.AddTypes(types...)
	}
	target.AddChildren(decl)
	return decl, nil
}

// generateSeriesType declares the interface of one series type. It
// extends the plot options of the type and the shared series options,
// carries a literal type discriminant, and marks excluded options absent.
func (g *OptionsGenerator) generateSeriesType(node *doctree.Node) (*declaration.Declaration, error) {
	if node.Meta.Name == "" || node.IsPrivate() {
		return nil, nil
	}
	data := node.Child("data")
	if data == nil {
		return nil, &declerrors.AnchorError{
			Pass:    optionsPass,
			Anchor:  node.Path() + ".data",
			Message: "series type has no data option",
		}
	}

	d := g.normalizeOption(node)
	iface, _ := g.namespace.Upsert(declaration.KindInterface, naming.OptionsInterfaceName(node.Path()))
	iface.Absorb(d.description, d.see,
		naming.PlotOptionsName(g.cfg.namespace, node.Meta.Name),
		g.qualified(seriesOptions),
	)

	inherited := []string{"type"}
	for _, path := range node.Doclet.Inherits() {
		if base := g.namespace.Child(naming.OptionsInterfaceName(path)); base != nil {
			inherited = declaration.MergeStrings(inherited, base.ChildrenNames(false)...)
		}
	}

	if iface.Child("type") == nil {
		discriminant := declaration.NewProperty("type")
		discriminant.Description = naming.ProductsTag(g.cfg.products) + discriminantDoc
		discriminant.AddTypes(`"` + node.Meta.Name + `"`)
		iface.AddChildren(discriminant)
	}

	for _, key := range node.Children.Keys() {
		if slices.Contains(inherited, key) {
			continue
		}
		child := node.Child(key)
		var extra []*doctree.Node
		if child == data {
			extra = append(extra, seriesIndexer())
		}
		if _, err := g.generateProperty(child, iface, extra...); err != nil {
			return nil, err
		}
	}

	for _, name := range declaration.MergeStrings(nil, excludedOptions(node)...) {
		if slices.Contains(inherited, name) || iface.Child(name) != nil {
			continue
		}
		absent := declaration.NewProperty(name)
		absent.Description = excludedDocument
		absent.IsOptional = true
		absent.AddTypes("undefined")
		iface.AddChildren(absent)
	}
	return iface, nil
}

// generateSeriesUnion declares the union of all series types and retypes
// Options.series with it.
func (g *OptionsGenerator) generateSeriesUnion() error {
	options := g.namespace.ChildOfKind(declaration.KindInterface, "Options")
	if options == nil {
		return &declerrors.AnchorError{Pass: optionsPass, Anchor: "Options", Message: "root options interface not declared"}
	}
	series := options.Child("series")
	if series == nil {
		return &declerrors.AnchorError{Pass: optionsPass, Anchor: "Options.series", Message: "series option not declared"}
	}

	union, _ := g.namespace.Upsert(declaration.KindType, naming.SeriesTypeName)
	union.Absorb(seriesTypeDoc, nil, g.series...)

	series.SetTypes("Array<" + g.qualified(naming.SeriesTypeName) + ">")
	return nil
}

// generateLiteralTypes factors literal unions of properties out into
// named type aliases.
func (g *OptionsGenerator) generateLiteralTypes(decl *declaration.Declaration) {
	if decl.Kind == declaration.KindProperty && isLiteralUnion(decl.Types) {
		alias := g.literalAlias(naming.LiteralAliasName(decl.Name), decl.Types)
		decl.SetTypes(alias.FullName())
	}
	for _, child := range decl.Children() {
		g.generateLiteralTypes(child)
	}
}

// literalAlias reuses an alias with the same literals. An alias of the
// same name with other literals is widened to the union and reported.
func (g *OptionsGenerator) literalAlias(name string, types []string) *declaration.Declaration {
	alias, created := g.namespace.Upsert(declaration.KindType, name)
	if !created && !slices.Equal(alias.Types, types) {
		g.report.warnf(alias.FullName(), "type alias already exists with different types, merging", types)
	}
	alias.AddTypes(types...)
	return alias
}

func rawValues(node *doctree.Node) string {
	if node.Doclet == nil {
		return ""
	}
	return node.Doclet.Values
}

func excludedOptions(node *doctree.Node) []string {
	if node.Doclet == nil {
		return nil
	}
	return node.Doclet.Exclude
}
