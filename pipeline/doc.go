// Package pipeline runs the declaration passes for a set of products.
//
// A run takes the namespace doc trees of every module and the options doc
// tree, and produces one declaration module per module key:
//
//   - one namespace per product, generated from the main module tree and
//     then from every other module tree
//   - a factory module for each remaining module
//   - a shared globals module
//
// Option interfaces are generated once and appended to every product
// namespace. Modular products receive the declarations their product
// namespace adds over the main namespace, as an augmentation of the main
// module. Finally every product namespace is pruned of type references
// that name nothing declared.
//
// # Configuration
//
// Products and modules are configured in YAML:
//
//	namespace: Highcharts
//	mainModule: code/highcharts
//	products:
//	  highcharts: code/highcharts
//	  highstock: code/highstock
//	modularProducts:
//	  highstock: code/modules/stock
//
// # Usage
//
//	cfg, err := pipeline.LoadConfig("products.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := pipeline.Run(ctx, cfg, modules, options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files() {
//	    fmt.Println(f.Name)
//	}
//
// The single-pass helpers [Generate], [Merge], [Diff] and
// [PruneInvalidTypes] expose the individual passes.
package pipeline
