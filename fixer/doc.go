// Package fixer neutralizes dangling type references in a declaration tree.
//
// After product namespaces are generated and merged, a type expression may
// still name a namespaced declaration that the product does not contain,
// for example a series option interface that only exists in another
// product. The fixer rewrites every such reference to any and reports the
// names it removed. It never fails: a dangling reference is a degraded
// result, not an error.
//
// # Quick Start
//
//	removed := fixer.PruneInvalidTypes(namespace)
//	fmt.Println("Removed", strings.Join(removed, ", "))
//
// Or use functional options for per-declaration fix records:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithNamespace(namespace),
//		fixer.WithPrefix("Highcharts."),
//	)
//	for _, fix := range result.Fixes {
//		fmt.Println(fix.Path, fix.Description)
//	}
//
// # Validity
//
// Only names starting with the namespace prefix (by default the namespace
// name followed by ".") are checked. A name is valid when it is the full
// name of a declaration in the namespace, or the dotted prefix of one, so
// "Highcharts.Chart" is valid as soon as "Highcharts.Chart.redraw" exists.
//
// A reference is replaced only as a whole token ending at a union
// separator, a closing delimiter or the end of the expression:
// "Highcharts.Foo" is never matched inside "Highcharts.FooBar", and a
// generic such as "Highcharts.Foo<T>" is left alone. Parameters of
// callables are checked like any other declaration.
package fixer
