// Package declgen generates TypeScript declaration files (.d.ts) for the
// Highcharts family of charting products from their JSDoc-derived doc trees.
//
// # Overview
//
// Two doc trees drive generation. The namespace tree maps module keys
// (e.g. "code/highcharts", "code/modules/exporting") to the class, function,
// typedef and event documentation of each source module. The options tree
// describes the nested chart configuration object. declgen turns both into
// declaration trees, merges and filters them per product and renders them as
// declaration files:
//
//   - doctree: Load namespace and options doc trees from JSON or YAML
//   - declaration: The declaration tree model (modules, namespaces, classes,
//     interfaces, functions, properties, parameters, type aliases)
//   - generator: Translate doc trees into declarations, one pass per product
//   - joiner: Deep merge declaration trees
//   - differ: Reduce a product namespace to what a reference namespace lacks
//   - fixer: Replace undeclared type references with any
//   - renderer: Render declaration trees as .d.ts text and write files
//   - pipeline: Run every pass for every configured product
//
// # Quick Start
//
//	modules, err := doctree.ParseWithOptions(
//	    doctree.WithFilePath("tree-namespace.json"),
//	    doctree.WithModuleMap(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	options, err := doctree.Parse("tree.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := pipeline.Run(ctx, pipeline.DefaultConfig(), &modules.Modules, options.Root)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := renderer.WriteFiles("build", result.Files()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Products
//
// A products file names every product namespace and the module it is
// written to. Modular products are additionally emitted as add-on modules
// that augment the main product:
//
//	namespace: Highcharts
//	mainModule: code/highcharts
//	products:
//	  highcharts: code/highcharts
//	  highstock: code/highstock
//	modularProducts:
//	  highstock: code/modules/stock
//
// Product passes fail independently. A failed pass is reported in
// RunResult.Failures and the remaining products are still generated.
//
// # Command-Line Interface
//
// The declgen command wraps the pipeline:
//
//	declgen generate -config products.yaml -namespace tree-namespace.json -options tree.json -out build
//	declgen generate -check -namespace tree-namespace.json -options tree.json -out build
//	declgen prune -product highstock highcharts-tree.json
//	declgen mcp
//
// The mcp command serves the generate, diff and prune passes as Model
// Context Protocol tools over stdio.
package declgen
