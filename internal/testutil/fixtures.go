// Package testutil provides test utilities and doc tree fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/maputil"
)

// Doc creates a namespace tree node. The node is keyed by the last
// segment of name.
func Doc(kind, name string, children ...*doctree.Node) *doctree.Node {
	n := &doctree.Node{Doclet: &doctree.Doclet{Kind: kind, Name: name}}
	segs := declaration.Namespaces(name)
	if len(segs) > 0 {
		n.Meta.Name = segs[len(segs)-1]
	}
	AddChildren(n, children...)
	return n
}

// Option creates an options tree node for the dotted path.
func Option(path string, doclet *doctree.Doclet, children ...*doctree.Node) *doctree.Node {
	if doclet == nil {
		doclet = &doctree.Doclet{}
	}
	n := &doctree.Node{Doclet: doclet, Meta: doctree.Meta{FullName: path}}
	segs := declaration.Namespaces(path)
	if len(segs) > 0 {
		n.Meta.Name = segs[len(segs)-1]
	}
	AddChildren(n, children...)
	return n
}

// AddChildren appends children to n keyed by their OrderKey.
func AddChildren(n *doctree.Node, children ...*doctree.Node) {
	for _, c := range children {
		n.Children.Set(c.OrderKey(), c)
	}
}

// Typed returns a doclet declaring the given option types.
func Typed(names ...string) *doctree.Doclet {
	return &doctree.Doclet{Type: &doctree.TypeNames{Names: names}}
}

// Params builds an ordered parameter map from name and parameter pairs.
func Params(pairs ...any) maputil.Ordered[*doctree.Parameter] {
	var out maputil.Ordered[*doctree.Parameter]
	for i := 0; i+1 < len(pairs); i += 2 {
		out.Set(pairs[i].(string), pairs[i+1].(*doctree.Parameter))
	}
	return out
}

// NewNamespaceTree creates a small namespace doc tree covering every
// doclet kind the namespace generator handles.
func NewNamespaceTree() *doctree.Node {
	chart := Doc("class", "Highcharts.Chart",
		Doc("constructor", "Highcharts.Chart"),
		Doc("function", "Highcharts.Chart#redraw"),
		Doc("member", "Highcharts.Chart#options"),
	)
	chart.Doclet.Description = "The Chart class."
	chart.Doclet.Types = []string{"Highcharts.Base", "object"}
	ctor := chart.Child("Chart")
	ctor.Doclet.Parameters = Params(
		"renderTo", &doctree.Parameter{Types: []string{"string", "HTMLDOMElement"}, IsOptional: true},
		"options", &doctree.Parameter{Types: []string{"Highcharts.Options"}},
	)
	redraw := chart.Child("redraw")
	redraw.Doclet.Description = "Redraw the chart."
	redraw.Doclet.Parameters = Params("animation", &doctree.Parameter{Types: []string{"Boolean"}, IsOptional: true})
	members := chart.Child("options")
	members.Doclet.Types = []string{"Highcharts.Options"}

	setOptions := Doc("function", "Highcharts.setOptions")
	setOptions.Doclet.Description = "Merge the default options."
	setOptions.Doclet.Return = &doctree.Return{Types: []string{"Highcharts.Options"}}
	setOptions.Doclet.Parameters = Params("options", &doctree.Parameter{Types: []string{"Highcharts.Options"}})

	formatter := Doc("typedef", "Highcharts.FormatterCallbackFunction")
	formatter.Doclet.Parameters = Params("this", &doctree.Parameter{Types: []string{"Highcharts.Point"}})
	formatter.Doclet.Return = &doctree.Return{Types: []string{"String"}}

	color := Doc("typedef", "Highcharts.ColorString")
	color.Doclet.Types = []string{"String"}

	stock := Doc("function", "Highcharts.stockChart")
	stock.Doclet.Products = []string{"highstock"}
	stock.Doclet.Description = "Create a stock chart."

	win := Doc("member", "setTimeout")
	win.Doclet.IsGlobal = true
	win.Doclet.Types = []string{"Function"}

	root := Doc("global", "",
		Doc("namespace", "Highcharts", chart, setOptions, formatter, color, stock),
		win,
	)
	root.Doclet.Description = "Highcharts namespace."
	return root
}

// NewOptionsTree creates a small options doc tree with two series types.
func NewOptionsTree() *doctree.Node {
	align := Typed("String")
	align.Values = `["left", "center", "right"]`
	chart := Option("chart", &doctree.Doclet{Description: "General options for the chart.", Type: &doctree.TypeNames{Names: []string{"*"}}},
		Option("chart.align", align),
		Option("chart.height", Typed("Number", "String")),
	)

	plotOptions := Option("plotOptions", nil,
		Option("plotOptions.series", nil, Option("plotOptions.series.animation", Typed("Boolean"))),
		Option("plotOptions.line", &doctree.Doclet{Extends: []string{"plotOptions.series"}},
			Option("plotOptions.line.step", Typed("String")),
		),
		Option("plotOptions.bar", &doctree.Doclet{Extends: []string{"plotOptions.series"}},
			Option("plotOptions.bar.depth", Typed("Number")),
		),
	)

	line := Option("series.line", &doctree.Doclet{
		Description: "A line series.",
		Extends:     []string{"series", "plotOptions.line"},
		Exclude:     []string{"step", "dataParser", "dataParser"},
	},
		Option("series.line.data", Typed("Array"),
			Option("series.line.data.x", Typed("Number")),
		),
		Option("series.line.type", Typed("String")),
	)
	bar := Option("series.bar", &doctree.Doclet{Extends: []string{"series", "plotOptions.bar"}},
		Option("series.bar.data", Typed("Array")),
		Option("series.bar.depth", Typed("Number")),
	)
	series := Option("series", Typed("Array.<*>"),
		Option("series.type", Typed("String")),
		Option("series.id", Typed("String")),
		line,
		bar,
	)

	private := Option("internal", &doctree.Doclet{Access: "private"})

	return Option("", nil, chart, plotOptions, series, private)
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
