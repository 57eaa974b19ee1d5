package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/erraggy/declgen/declaration"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
// Example: "plotOptions" -> "PlotOptions"
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper.String(s[:size]) + s[size:]
}

// CapitalizeAll capitalizes every value.
func CapitalizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Capitalize(v)
	}
	return out
}

// OptionsInterfaceName derives the interface name for an option path.
// Every path segment is capitalized, literal "Options" fragments are
// removed from the joined name, and "Options" is appended.
// Example: "plotOptions.series.dataLabels" -> "PlotSeriesDataLabelsOptions"
// Example: "" -> "Options"
func OptionsInterfaceName(path string) string {
	var b strings.Builder
	for _, seg := range declaration.Namespaces(path) {
		b.WriteString(Capitalize(seg))
	}
	return strings.ReplaceAll(b.String(), "Options", "") + "Options"
}

// LiteralAliasName names the alias extracted from a literal-union property.
// Example: "align" -> "OptionsAlignValue"
func LiteralAliasName(property string) string {
	return "Options" + Capitalize(property) + "Value"
}

// PlotOptionsName names the plot options interface of a series type
// inside namespace.
// Example: ("Highcharts", "line") -> "Highcharts.PlotLineOptions"
func PlotOptionsName(namespace, series string) string {
	return qualify(namespace, "Plot"+Capitalize(series)+"Options")
}

// ProductSeriesTypeName names the series union alias of a modular product.
// Example: "highstock" -> "HighstockSeriesOptionsType"
func ProductSeriesTypeName(product string) string {
	return Capitalize(product) + SeriesTypeName
}

// SeriesTypeName is the name of the union alias over all series interfaces.
const SeriesTypeName = "SeriesOptionsType"

// ProductsTag builds the description prefix listing products.
// Example: ["highcharts", "highstock"] -> "(Highcharts, Highstock) "
func ProductsTag(products []string) string {
	if len(products) == 0 {
		return ""
	}
	return "(" + strings.Join(CapitalizeAll(products), ", ") + ") "
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
