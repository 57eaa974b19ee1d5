package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/declgen/declaration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

const copyright = "Copyright (c) Highsoft AS. All rights reserved."

func param(name string, optional bool, types ...string) *declaration.Declaration {
	p := declaration.NewParameter(name)
	p.IsOptional = optional
	p.AddTypes(types...)
	return p
}

func functionType(name string, params ...*declaration.Declaration) *declaration.Declaration {
	d := declaration.New(declaration.KindFunctionType, name)
	d.SetParameters(params...)
	d.AddTypes("string")
	return d
}

func namespaceModule() *declaration.Declaration {
	ns := declaration.NewModule("Highcharts")
	ns.Description = copyright
	ns.Imports = []string{`import * as globals from "./globals";`}
	ns.Exports = []string{"export as namespace Highcharts;"}

	chart := declaration.NewClass("Chart")
	chart.Description = "The Chart class."
	chart.AddTypes("Highcharts.Base")
	full := declaration.NewConstructor()
	full.SetParameters(param("renderTo", false, "string", "HTMLDOMElement"), param("options", false, "Highcharts.Options"))
	short := declaration.NewConstructor()
	short.SetParameters(param("options", false, "Highcharts.Options"))
	redraw := declaration.NewFunction("redraw")
	redraw.Description = "Redraw the chart."
	animation := param("animation", true, "boolean")
	animation.Description = "Whether to animate."
	redraw.SetParameters(animation)
	redraw.Events = []string{"redraw"}
	index := declaration.NewProperty("index")
	index.IsStatic = true
	index.AddTypes("number")
	chart.AddChildren(full, short, redraw, index)

	color := declaration.NewType("ColorString")
	color.AddTypes("string")
	colorType := declaration.NewType("ColorType")
	colorType.AddTypes("Highcharts.ColorString", "Highcharts.GradientColorObject")

	formatter := functionType("FormatterCallbackFunction", param("this", false, "Highcharts.Point"))
	formatter.Description = "Formats a label."

	setOptions := declaration.NewFunction("setOptions")
	setOptions.Description = "Merge the default options."
	setOptions.SetParameters(param("options", false, "Highcharts.Options"))
	setOptions.AddTypes("Highcharts.Options")
	setOptions.TypesDescription = "The merged options."
	setOptions.AddSee("https://api.highcharts.com/class-reference/Highcharts.setOptions")

	hidden := declaration.NewFunction("internal")
	hidden.IsPrivate = true

	ns.AddChildren(chart, color, colorType, formatter, setOptions, functionType("FormatterCallbackFunction"), hidden)
	return ns
}

func optionsModule() *declaration.Declaration {
	ns := declaration.NewModule("Highcharts")

	line := declaration.NewInterface("SeriesLineOptions")
	line.Description = "A line series."
	line.AddTypes("Highcharts.PlotLineOptions", "Highcharts.SeriesOptions")
	discriminant := declaration.NewProperty("type")
	discriminant.Description = "(Highcharts) This property is only in TypeScript non-optional and might be " +
		"`undefined` in series objects from unknown sources."
	discriminant.AddTypes(`"line"`)
	data := declaration.NewProperty("data")
	data.IsOptional = true
	data.AddTypes("Array<Highcharts.SeriesLineDataOptions>")
	absent := declaration.NewProperty("dataParser")
	absent.Description = "Not available"
	absent.IsOptional = true
	absent.AddTypes("undefined")
	indexer := declaration.NewProperty("[key:string]")
	indexer.IsOptional = true
	indexer.AddTypes("any")
	line.AddChildren(discriminant, data, absent, indexer)

	timeFn := declaration.NewInterface("TimeFunction")
	call := declaration.NewFunction("")
	call.SetParameters(param("timestamp", false, "number"))
	call.AddTypes("string")
	timeFn.AddChildren(call)

	util := declaration.NewNamespace("Util:")
	pick := declaration.NewFunction("pick")
	items := param("items", false, "any")
	items.IsVariable = true
	pick.SetParameters(items)
	pick.AddTypes("any")
	util.AddChildren(pick)

	ns.AddChildren(line, timeFn, util)
	return ns
}

func factoryModule() *declaration.Declaration {
	module := declaration.NewModule("")
	module.Description = copyright
	module.Imports = []string{`import * as Highcharts from "../highcharts";`}
	module.Exports = []string{"export default factory;"}

	factory := declaration.NewFunction("factory")
	factory.Description = "Adds the module to the imported Highcharts namespace."
	highcharts := param("highcharts", false, "typeof Highcharts")
	highcharts.Description = "The imported Highcharts namespace to extend."
	factory.SetParameters(highcharts)

	external := declaration.NewExternalModule("Highcharts", "../highcharts")
	chart := declaration.NewInterface("Chart")
	addAxis := declaration.NewFunction("addAxis")
	addAxis.SetParameters(param("options", false, "Highcharts.AxisOptions"))
	addAxis.AddTypes("Highcharts.Axis")
	chart.AddChildren(addAxis)
	union := declaration.NewType("HighstockSeriesOptionsType")
	union.AddTypes("Highcharts.SeriesCandlestickOptions")
	external.AddChildren(chart, union)

	module.AddChildren(factory, external)
	return module
}

func TestRenderGolden(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "render.txtar"))
	require.NoError(t, err)

	got := map[string]string{
		"namespace.d.ts":   Render(namespaceModule()),
		"options.d.ts":     Render(optionsModule()),
		"factory.d.ts":     Render(factoryModule()),
		"factory.src.d.ts": SourceVariant(Render(factoryModule())),
	}
	require.Len(t, archive.Files, len(got))
	for _, f := range archive.Files {
		t.Run(f.Name, func(t *testing.T) {
			text, ok := got[f.Name]
			require.True(t, ok, "no tree renders %s", f.Name)
			assert.Equal(t, string(f.Data), text)
		})
	}
}

func TestRenderDetached(t *testing.T) {
	assert.Empty(t, Render(nil))

	alias := declaration.NewType("ColorString")
	assert.Equal(t, "declare type ColorString = any;\n", Render(alias))

	fn := declaration.NewFunction("noop")
	assert.Equal(t, "declare function noop(): void;\n", Render(fn))
}

func TestRendererWrap(t *testing.T) {
	p := declaration.NewInterface("Options")
	p.Description = "one two three four"
	r := &Renderer{Indent: "  ", Wrap: 12}
	assert.Equal(t, "/**\n * one two\n * three\n * four\n */\ndeclare interface Options {\n}\n", r.Render(p))
}

func TestSourceVariant(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`import * as globals from "./globals";`, `import * as globals from "./globals.src";`},
		{`declare module "../highcharts" {`, `declare module "../highcharts.src" {`},
		{`import * as Highcharts from "../../highcharts";`, `import * as Highcharts from "../../highcharts.src";`},
		{`import * as M from "./modules/exporting";`, `import * as M from "./modules/exporting";`},
		{`export as namespace Highcharts;`, `export as namespace Highcharts;`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceVariant(tt.in))
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	files := Files("code/modules/stock", factoryModule())
	require.Len(t, files, 2)
	assert.Equal(t, "code/modules/stock.d.ts", files[0].Name)
	assert.Equal(t, "code/modules/stock.src.d.ts", files[1].Name)

	require.NoError(t, WriteFiles(dir, files))
	data, err := os.ReadFile(filepath.Join(dir, "code", "modules", "stock.src.d.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `declare module "../highcharts.src" {`)

	err = WriteFiles(dir, []File{{Name: "../escape.d.ts"}})
	assert.ErrorContains(t, err, "must be a relative path inside the output directory")
}
