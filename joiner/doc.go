// Package joiner combines declaration trees produced by independent
// generator passes.
//
// The joiner folds a source tree into a target tree. Either tree may come
// from a different product variant of the same documentation; the target
// is mutated in place and the source is left untouched.
//
// # Quick Start
//
// Deep merge one tree into another:
//
//	joiner.Merge(target, source)
//
// Or use functional options for a counted, logged join:
//
//	result, err := joiner.JoinWithOptions(target,
//		joiner.WithSources(stockNamespace, mapsNamespace),
//		joiner.WithStrategy(joiner.StrategyMerge),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("merged %d, added %d\n", result.MergedCount, result.AddedCount)
//
// Or create a reusable Joiner instance:
//
//	j := joiner.New(joiner.DefaultConfig())
//	result, _ := j.Join(target, source)
//
// # Strategies
//
//   - StrategyMerge: deep merge by name (default)
//   - StrategyAppend: move every source child into the target, no matching
//
// # Merge Rules
//
// A merge fills the target description only when it is empty, unions the
// type lists keeping the target order first, and merges children by name.
// The n-th source child of a name merges into the n-th target child of the
// same name, so same-named overloads pair up in order; a source child with
// no partner is cloned and appended. Merging a tree with its own clone
// leaves it unchanged.
package joiner
