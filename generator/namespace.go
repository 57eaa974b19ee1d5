package generator

import (
	"slices"
	"strings"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
)

const externalNamespace = "external:"

// NamespaceGenerator turns a generic API doc tree into declarations below
// a namespace module. Declarations marked global go to a shared globals
// module instead.
//
// A NamespaceGenerator may be run over several doc trees in turn; each run
// keeps populating the same namespace, reusing same-named declarations of
// the same kind. It is not safe for concurrent use.
type NamespaceGenerator struct {
	cfg       *generateConfig
	globals   *declaration.Declaration
	namespace *declaration.Declaration
	report    reporter
	start     time.Time
}

// NewNamespaceGenerator creates a generator populating namespace, with
// global declarations routed to globals.
func NewNamespaceGenerator(globals, namespace *declaration.Declaration, opts ...Option) (*NamespaceGenerator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &NamespaceGenerator{
		cfg:       cfg,
		globals:   globals,
		namespace: namespace,
		report:    reporter{logger: cfg.logger.With("product", cfg.product)},
		start:     time.Now(),
	}, nil
}

// Namespace returns the namespace module the generator populates.
func (g *NamespaceGenerator) Namespace() *declaration.Declaration { return g.namespace }

// Globals returns the shared globals module.
func (g *NamespaceGenerator) Globals() *declaration.Declaration { return g.globals }

// Product returns the product the generator filters on.
func (g *NamespaceGenerator) Product() string { return g.cfg.product }

// Generate walks the doc tree rooted at node into the namespace.
func (g *NamespaceGenerator) Generate(node *doctree.Node) {
	if node == nil {
		return
	}
	g.generate(node, g.namespace)
}

// Result summarizes every run of the generator so far.
func (g *NamespaceGenerator) Result() *GenerateResult {
	return g.report.result(g.namespace, g.cfg.product, g.start)
}

func (g *NamespaceGenerator) generate(node *doctree.Node, target *declaration.Declaration) {
	if !node.Doclet.HasProduct(g.cfg.product) {
		return
	}
	kind := node.Kind()
	if node.Doclet == nil {
		kind = "global"
	}

	switch kind {
	case "class":
		g.generateClassLike(node, target, declaration.KindClass)
	case "interface":
		g.generateClassLike(node, target, declaration.KindInterface)
	case "constructor":
		g.generateConstructor(node, target)
	case "external":
		g.generateExternal(node)
	case "function":
		g.generateFunction(node, target)
	case "global":
		g.generateModuleGlobal(node)
	case "namespace":
		g.generateNamespace(node, target)
	case "member":
		g.generateProperty(node, target)
	case "typedef":
		g.generateTypedef(node, target)
	default:
		g.report.warn(node, "unknown doclet kind, node skipped", kind)
	}
}

func (g *NamespaceGenerator) generateChildren(node *doctree.Node, target *declaration.Declaration) {
	for _, child := range node.ChildNodes() {
		g.generate(child, target)
	}
}

// scope resolves where a declaration goes. Globals win; rootOnly kinds
// fall back to the namespace root when target is not a module.
func (g *NamespaceGenerator) scope(d *doclet, target *declaration.Declaration, rootOnly bool) *declaration.Declaration {
	if d.isGlobal {
		return g.globals
	}
	if rootOnly && target.Kind != g.namespace.Kind {
		return g.namespace
	}
	return target
}

// typedef kinds split four ways on callability and nesting.
func (g *NamespaceGenerator) generateTypedef(node *doctree.Node, target *declaration.Declaration) {
	src := node.Doclet
	declared := src.TypeNames()
	switch {
	case src.Parameters.Len() > 0 || src.Return != nil:
		if node.HasChildren() {
			g.generateFunctionInterface(node, target)
		} else {
			g.generateFunctionType(node, target)
		}
	case node.HasChildren() && len(declared) > 0 && declared[0] != "*":
		g.generateClassLike(node, target, declaration.KindInterface)
	default:
		g.generateType(node, target)
	}
}

func (g *NamespaceGenerator) generateClassLike(node *doctree.Node, target *declaration.Declaration, kind declaration.Kind) *declaration.Declaration {
	d := g.normalizeDoclet(node)
	decl, _ := g.scope(d, target, true).Upsert(kind, d.name)
	decl.Absorb(d.description, d.see, classTypes(d.types)...)
	g.generateChildren(node, decl)
	return decl
}

// inheritDescription copies the description of the first same-named
// sibling accepted by match.
func inheritDescription(decl, scope *declaration.Declaration, match func(*declaration.Declaration) bool) {
	if decl.Description != "" {
		return
	}
	for _, sibling := range scope.ChildrenNamed(decl.Name) {
		if sibling.Description != "" && match(sibling) {
			decl.Description = sibling.Description
			return
		}
	}
}

func (g *NamespaceGenerator) generateConstructor(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	decl := declaration.NewConstructor()
	decl.Description = d.description
	inheritDescription(decl, target, func(s *declaration.Declaration) bool {
		return s.Kind == declaration.KindConstructor
	})
	g.populateCallable(decl, d)
	overload := applyParameters(decl, parameterDeclarations(d.parameters))
	target.AddChildren(overload, decl)
}

func (g *NamespaceGenerator) generateFunction(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	scope := g.scope(d, target, false)
	decl := declaration.NewFunction(d.name)
	decl.Description = d.description
	decl.IsStatic = d.isStatic
	inheritDescription(decl, scope, func(s *declaration.Declaration) bool {
		return s.Kind == declaration.KindFunction && s.IsStatic == d.isStatic
	})
	g.populateCallable(decl, d)
	g.applyReturn(decl, d)
	overload := applyParameters(decl, parameterDeclarations(d.parameters))
	g.addSignatures(scope, overload, decl)
}

// addSignatures appends decls to scope. The globals module is shared by
// every product pass, so a signature it already declares is not repeated.
func (g *NamespaceGenerator) addSignatures(scope *declaration.Declaration, decls ...*declaration.Declaration) {
	for _, decl := range decls {
		if decl == nil {
			continue
		}
		if scope == g.globals && slices.ContainsFunc(scope.ChildrenNamed(decl.Name), func(c *declaration.Declaration) bool {
			return declaration.Equal(c, decl)
		}) {
			continue
		}
		scope.AddChildren(decl)
	}
}

// populateCallable copies events, fired events, visibility and links.
func (g *NamespaceGenerator) populateCallable(decl *declaration.Declaration, d *doclet) {
	decl.AddChildren(eventDeclarations(d.events)...)
	decl.Events = declaration.MergeStrings(decl.Events, d.fires...)
	decl.IsPrivate = decl.IsPrivate || d.isPrivate
	decl.AddSee(d.see...)
}

func (g *NamespaceGenerator) applyReturn(decl *declaration.Declaration, d *doclet) {
	if d.ret == nil {
		return
	}
	if decl.TypesDescription == "" {
		decl.TypesDescription = d.ret.description
	}
	decl.AddTypes(d.ret.types...)
}

// generateFunctionInterface declares a callable interface: an unnamed
// call signature plus the documented members.
func (g *NamespaceGenerator) generateFunctionInterface(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	iface, _ := g.scope(d, target, true).Upsert(declaration.KindInterface, d.name)
	iface.Absorb(d.description, d.see)

	call, _ := iface.Upsert(declaration.KindFunction, "")
	call.Absorb(d.description, nil)
	g.applyReturn(call, d)
	if d.hasParams && !call.HasParameters() {
		if overload := applyParameters(call, parameterDeclarations(d.parameters)); overload != nil {
			iface.AddChildren(overload)
		}
	}
	g.generateChildren(node, iface)
}

func (g *NamespaceGenerator) generateFunctionType(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	scope := g.scope(d, target, true)
	decl, _ := scope.Upsert(declaration.KindFunctionType, d.name)
	decl.Absorb(d.description, d.see)
	g.applyReturn(decl, d)
	if d.hasParams && !decl.HasParameters() {
		if overload := applyParameters(decl, parameterDeclarations(d.parameters)); overload != nil {
			scope.AddChildren(overload)
		}
	}
}

func (g *NamespaceGenerator) generateType(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	decl, _ := g.scope(d, target, true).Upsert(declaration.KindType, d.name)
	types := d.types
	if node.HasChildren() {
		types = classTypes(types)
	}
	decl.Absorb(d.description, d.see, types...)
	g.generateChildren(node, decl)
}

// generateExternal declares a third-party type below the reserved
// "external:" namespace.
func (g *NamespaceGenerator) generateExternal(node *doctree.Node) {
	d := g.normalizeDoclet(node)
	external, _ := g.namespace.Upsert(declaration.KindNamespace, externalNamespace)
	iface, _ := external.Upsert(declaration.KindInterface, strings.TrimPrefix(d.name, externalNamespace))
	iface.Absorb(d.description, d.see)
	g.generateChildren(node, iface)
}

// generateModuleGlobal documents the namespace root itself.
func (g *NamespaceGenerator) generateModuleGlobal(node *doctree.Node) {
	d := g.normalizeDoclet(node)
	g.namespace.Absorb(d.description, d.see)
	g.generateChildren(node, g.namespace)
}

// generateNamespace folds plain namespaces into the root. Only names with
// a trailing ":" become namespace declarations of their own.
func (g *NamespaceGenerator) generateNamespace(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	if len(d.name) == 0 || d.name[len(d.name)-1] != ':' {
		g.generateChildren(node, g.namespace)
		return
	}
	decl, _ := g.scope(d, target, false).Upsert(declaration.KindNamespace, d.name)
	decl.Absorb(d.description, d.see)
	g.generateChildren(node, decl)
}

func (g *NamespaceGenerator) generateProperty(node *doctree.Node, target *declaration.Declaration) {
	d := g.normalizeDoclet(node)
	decl, _ := g.scope(d, target, false).Upsert(declaration.KindProperty, d.name)
	decl.Absorb(d.description, d.see, d.types...)
	decl.IsOptional = decl.IsOptional || d.isOptional
	decl.IsPrivate = decl.IsPrivate || d.isPrivate
	decl.IsStatic = decl.IsStatic || d.isStatic
}
