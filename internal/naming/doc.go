// Package naming provides the case conversions and derived names shared by
// the declgen generators and filters.
//
// Functions include Capitalize, OptionsInterfaceName, LiteralAliasName,
// PlotOptionsName and ProductSeriesTypeName. They are used for:
//   - Generator package: interface names derived from option paths
//   - Differ package: product-specific series union aliases
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
