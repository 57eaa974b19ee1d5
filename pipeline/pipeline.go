package pipeline

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/differ"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/fixer"
	"github.com/erraggy/declgen/generator"
	"github.com/erraggy/declgen/internal/maputil"
	"github.com/erraggy/declgen/joiner"
	"github.com/erraggy/declgen/renderer"
)

// Copyright is the description of every generated module.
const Copyright = "Copyright (c) Highsoft AS. All rights reserved."

const globalsName = "globals"

// Generate runs a namespace pass for product over tree and returns the
// populated namespace module. Use GenerateWithGlobals to keep the global
// declarations as well.
func Generate(product string, tree *doctree.Node, opts ...generator.Option) (*declaration.Declaration, error) {
	ns, _, err := GenerateWithGlobals(product, tree, opts...)
	return ns, err
}

// GenerateWithGlobals runs a namespace pass for product over tree and
// returns the namespace module and the globals module holding every
// declaration marked global.
func GenerateWithGlobals(product string, tree *doctree.Node, opts ...generator.Option) (namespace, globals *declaration.Declaration, err error) {
	namespace = declaration.NewModule(generator.DefaultNamespace)
	globals = declaration.NewModule(globalsName)
	opts = append([]generator.Option{generator.WithProduct(product)}, opts...)
	g, err := generator.NewNamespaceGenerator(globals, namespace, opts...)
	if err != nil {
		return nil, nil, err
	}
	g.Generate(tree)
	return namespace, globals, nil
}

// Merge deep merges source into target.
func Merge(target, source *declaration.Declaration) {
	joiner.Merge(target, source)
}

// Diff returns the declarations candidate adds over reference, wrapped in
// an external module named after reference.
func Diff(candidate, reference *declaration.Declaration, product string) *declaration.Declaration {
	return differ.Diff(candidate, reference, product)
}

// PruneInvalidTypes replaces references to undeclared names in namespace
// with any and returns the replaced names.
func PruneInvalidTypes(namespace *declaration.Declaration) []string {
	return fixer.PruneInvalidTypes(namespace)
}

// Failure records a product pass that could not complete.
type Failure struct {
	Product string
	Pass    string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s pass: %v", f.Product, f.Pass, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// RunResult contains the modules produced by a run.
type RunResult struct {
	// Modules maps module keys to their declaration modules in output order
	Modules maputil.Ordered[*declaration.Declaration]
	// Issues collects the generator issues of every pass
	Issues []generator.GenerateIssue
	// Removed maps product names to the type names pruned from their namespace
	Removed map[string][]string
	// Failures lists product passes that did not complete
	Failures []Failure
	// RunTime is the duration of the run
	RunTime time.Duration
}

// HasFailures returns true if any product pass failed.
func (r *RunResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// Files renders every module as its declaration file pair.
func (r *RunResult) Files() []renderer.File {
	var files []renderer.File
	for _, key := range r.Modules.Keys() {
		module, _ := r.Modules.Get(key)
		files = append(files, renderer.Files(key, module)...)
	}
	return files
}

// Option configures a run
type Option func(*runConfig)

type runConfig struct {
	logger doctree.Logger
}

// WithLogger sets the logger for run diagnostics.
// Default: doctree.NopLogger
func WithLogger(l doctree.Logger) Option {
	return func(cfg *runConfig) {
		cfg.logger = doctree.OrNop(l)
	}
}

// Run generates the declaration modules of every configured product from
// the namespace trees in modules and the options tree. options may be nil.
//
// A product whose pass fails is recorded in RunResult.Failures and left
// out of later passes. Invalid configuration, a missing main module and a
// failed options pass abort the run. ctx is checked between passes.
func Run(ctx context.Context, cfg *Config, modules *maputil.Ordered[*doctree.Node], options *doctree.Node, opts ...Option) (*RunResult, error) {
	rc := &runConfig{logger: doctree.NopLogger{}}
	for _, opt := range opts {
		opt(rc)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	main, ok := modules.Get(cfg.MainModule)
	if !ok {
		return nil, fmt.Errorf("pipeline: main module %q is not in the namespace trees", cfg.MainModule)
	}

	r := &run{
		cfg:        cfg,
		logger:     rc.logger,
		generators: map[string]*generator.NamespaceGenerator{},
		result:     &RunResult{Removed: map[string][]string{}},
	}
	start := time.Now()

	steps := []func(context.Context) error{
		func(context.Context) error { r.generateNamespaces(main); return nil },
		func(ctx context.Context) error { return r.generateModules(ctx, modules) },
		func(context.Context) error { return r.generateOptions(options) },
		func(context.Context) error { r.diffModularProducts(); return nil },
		func(context.Context) error { r.prune(); return nil },
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		if err := step(ctx); err != nil {
			return nil, err
		}
	}

	r.result.RunTime = time.Since(start)
	r.logger.Info("generated declarations",
		"modules", r.result.Modules.Len(),
		"issues", len(r.result.Issues),
		"failures", len(r.result.Failures),
		"duration", r.result.RunTime,
	)
	return r.result, nil
}

type run struct {
	cfg        *Config
	logger     doctree.Logger
	globals    *declaration.Declaration
	generators map[string]*generator.NamespaceGenerator
	// products lists the products whose namespace pass succeeded
	products []string
	result   *RunResult
}

func (r *run) fail(product, pass string, err error) {
	r.result.Failures = append(r.result.Failures, Failure{Product: product, Pass: pass, Err: err})
	r.logger.Error("product pass failed", "product", product, "pass", pass, "error", err)
}

func (r *run) generatorOptions(product string) []generator.Option {
	return []generator.Option{
		generator.WithProduct(product),
		generator.WithProducts(r.cfg.ProductNames()...),
		generator.WithNamespaceName(r.cfg.Namespace),
		generator.WithSeeLink(r.cfg.SeeLink()),
		generator.WithLogger(r.logger),
	}
}

// generateNamespaces runs one namespace pass per product over the main tree.
func (r *run) generateNamespaces(main *doctree.Node) {
	r.globals = declaration.NewModule(globalsName)
	r.globals.Description = Copyright
	r.result.Modules.Set(path.Join(path.Dir(r.cfg.MainModule), globalsName), r.globals)

	for _, product := range r.cfg.ProductNames() {
		ns := declaration.NewModule(r.cfg.Namespace)
		ns.Imports = append(ns.Imports, `import * as globals from "./globals";`)
		ns.Exports = append(ns.Exports, "export as namespace "+r.cfg.Namespace+";")
		g, err := generator.NewNamespaceGenerator(r.globals, ns, r.generatorOptions(product)...)
		if err != nil {
			r.fail(product, "namespace", err)
			continue
		}
		g.Generate(main)
		r.generators[product] = g
		r.products = append(r.products, product)
	}
}

// generateModules runs every product generator over the remaining module
// trees and declares a factory module for each.
func (r *run) generateModules(ctx context.Context, modules *maputil.Ordered[*doctree.Node]) error {
	for _, key := range modules.Keys() {
		if _, done := r.result.Modules.Get(key); done || r.cfg.productOf(key) != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		tree, _ := modules.Get(key)
		for _, product := range r.products {
			r.generators[product].Generate(tree)
		}
		r.result.Modules.Set(key, r.factoryModule(key))
	}

	for _, product := range r.products {
		g := r.generators[product]
		key, _ := r.cfg.Products.Get(product)
		r.result.Modules.Set(key, g.Namespace())
		res := g.Result()
		r.result.Issues = append(r.result.Issues, res.Issues...)
		r.logger.Debug("generated namespace", "product", product, "declarations", res.DeclarationCount)
	}
	return nil
}

// factoryModule declares the default export of a plain module: a factory
// that extends the imported main namespace.
func (r *run) factoryModule(key string) *declaration.Declaration {
	module := declaration.NewModule("")
	module.Description = Copyright
	module.Imports = append(module.Imports,
		fmt.Sprintf(`import * as %s from "%s";`, r.cfg.Namespace, relativeImport(key, r.cfg.MainModule)))
	module.Exports = append(module.Exports, "export default factory;")

	factory := declaration.NewFunction("factory")
	factory.Description = "Adds the module to the imported " + r.cfg.Namespace + " namespace."
	param := declaration.NewParameter(strings.ToLower(r.cfg.Namespace))
	param.Description = "The imported " + r.cfg.Namespace + " namespace to extend."
	param.AddTypes("typeof " + r.cfg.Namespace)
	factory.SetParameters(param)
	module.AddChildren(factory)
	return module
}

// generateOptions generates the option interfaces once and appends a copy
// to every product namespace.
func (r *run) generateOptions(options *doctree.Node) error {
	if options == nil {
		return nil
	}
	g, err := generator.NewOptionsGenerator(r.generatorOptions("")...)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	res, err := g.Generate(options)
	if err != nil {
		return fmt.Errorf("pipeline: options pass: %w", err)
	}
	r.result.Issues = append(r.result.Issues, res.Issues...)

	j := joiner.New(joiner.JoinerConfig{Strategy: joiner.StrategyAppend, Logger: r.logger})
	for _, product := range r.products {
		if _, err := j.Join(r.generators[product].Namespace(), res.Root.Clone()); err != nil {
			r.fail(product, "options", err)
		}
	}
	return nil
}

// diffModularProducts adds to every modular product module the
// declarations its product namespace has over the main namespace.
func (r *run) diffModularProducts() {
	mainProduct := r.cfg.productOf(r.cfg.MainModule)
	mainGen, ok := r.generators[mainProduct]
	for _, product := range r.cfg.ModularProducts.Keys() {
		key, _ := r.cfg.ModularProducts.Get(product)
		if !ok {
			r.fail(product, "diff", fmt.Errorf("main namespace %q was not generated", mainProduct))
			continue
		}
		g, generated := r.generators[product]
		if !generated {
			r.fail(product, "diff", fmt.Errorf("namespace of %q was not generated", product))
			continue
		}
		module, exists := r.result.Modules.Get(key)
		if !exists {
			module = r.factoryModule(key)
			r.result.Modules.Set(key, module)
		}

		d := differ.New()
		d.Product = product
		d.ImportPath = relativeImport(key, r.cfg.MainModule)
		d.Logger = r.logger
		res := d.Diff(g.Namespace(), mainGen.Namespace())
		module.AddChildren(res.Module)
	}
}

// prune replaces undeclared type references in every product namespace.
func (r *run) prune() {
	f := fixer.New()
	f.Logger = r.logger
	for _, product := range r.products {
		res := f.Fix(r.generators[product].Namespace())
		r.result.Removed[product] = res.Removed
	}
}

// relativeImport returns the import path of module to as seen from module from.
// Example: ("code/modules/stock", "code/highcharts") -> "../highcharts"
func relativeImport(from, to string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
