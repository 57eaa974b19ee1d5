// Package differ computes the incremental declaration surface a modular
// product adds on top of a main namespace.
//
// A modular product is generated into its own namespace tree like every
// other product. The differ compares that tree against the main namespace
// and keeps only what is new, so the product module can extend the main
// module instead of repeating it.
//
// # Quick Start
//
//	module := differ.Diff(stockNamespace, mainNamespace, "highstock")
//	fmt.Println(module.ChildrenNames(true))
//
// Or use functional options to collect the individual changes:
//
//	result, err := differ.DiffWithOptions(
//		differ.WithCandidate(stockNamespace),
//		differ.WithReference(mainNamespace),
//		differ.WithProduct("highstock"),
//		differ.WithImportPath("../highcharts"),
//	)
//	for _, change := range result.Changes {
//		fmt.Println(change)
//	}
//
// # Filter Rules
//
// Each candidate declaration is looked up by name among the reference
// declarations, first match wins:
//   - no match: the declaration is new and kept as an independent clone
//   - a class or interface matching a class or interface: the children are
//     filtered recursively and kept in a fresh interface when any remain
//   - a match on the series union alias: a product specific alias such as
//     HighstockSeriesOptionsType is derived instead
//   - any other match, constructors included, is dropped
package differ
