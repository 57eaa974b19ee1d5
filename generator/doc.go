// Package generator builds declaration trees from documentation trees.
//
// Two generators are provided. NamespaceGenerator walks a generic API doc
// tree (classes, functions, namespaces, typedefs, members) into a namespace
// module. OptionsGenerator walks the nested chart options tree into option
// interfaces, with a discriminated union over the series types.
//
// # Quick Start
//
// Generate the namespace of one product:
//
//	globals := declaration.NewModule("globals")
//	ns := declaration.NewModule("Highcharts")
//	g, err := generator.NewNamespaceGenerator(globals, ns,
//		generator.WithProduct("highstock"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	g.Generate(parsed.Root)
//	result := g.Result()
//
// Generate the options module:
//
//	og, _ := generator.NewOptionsGenerator(generator.WithProducts("highcharts", "highstock"))
//	result, err := og.Generate(optionsTree.Root)
//	if errors.Is(err, declerrors.ErrMissingAnchor) {
//		// Options, Options.series or a series data option is missing
//	}
//
// # Type Mapping
//
// Doc type names are mapped as follows, also inside generics and unions:
//   - * → any
//   - Array → Array<any>
//   - Boolean → boolean
//   - Number → number
//   - Object → object
//   - String → string
//
// A type list holding "undefined" next to other types marks the
// declaration optional instead. An enumerated values payload replaces the
// declared types with literal types.
//
// # Overloads
//
// A callable whose first parameter is optional and whose second is
// required is emitted twice: once with the first parameter required, and
// once without it.
//
// See the exported GenerateResult and GenerateIssue types for complete details.
package generator
