package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/declerrors"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/generator"
	"github.com/erraggy/declgen/internal/maputil"
	"github.com/erraggy/declgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namespaceTrees() *maputil.Ordered[*doctree.Node] {
	navigator := testutil.Doc("function", "Highcharts.navigator")
	navigator.Doclet.Products = []string{"highstock"}
	stock := testutil.Doc("global", "", testutil.Doc("namespace", "Highcharts", navigator))

	modules := &maputil.Ordered[*doctree.Node]{}
	modules.Set("code/highcharts", testutil.NewNamespaceTree())
	modules.Set("code/modules/stock", stock)
	return modules
}

func runProducts(t *testing.T) *RunResult {
	t.Helper()
	cfg, err := ParseConfig([]byte(productsYAML))
	require.NoError(t, err)
	result, err := Run(context.Background(), cfg, namespaceTrees(), testutil.NewOptionsTree())
	require.NoError(t, err)
	return result
}

func module(t *testing.T, r *RunResult, key string) *declaration.Declaration {
	t.Helper()
	m, ok := r.Modules.Get(key)
	require.True(t, ok, "missing module %s", key)
	return m
}

func TestRunModules(t *testing.T) {
	r := runProducts(t)
	assert.False(t, r.HasFailures())
	assert.Equal(t, []string{"code/globals", "code/modules/stock", "code/highcharts", "code/highstock"}, r.Modules.Keys())

	globals := module(t, r, "code/globals")
	assert.Equal(t, Copyright, globals.Description)
	assert.NotNil(t, globals.Child("setTimeout"))

	highcharts := module(t, r, "code/highcharts")
	assert.Equal(t, []string{`import * as globals from "./globals";`}, highcharts.Imports)
	assert.Equal(t, []string{"export as namespace Highcharts;"}, highcharts.Exports)
	assert.Nil(t, highcharts.Child("stockChart"))
	assert.Nil(t, highcharts.Child("navigator"))
	assert.NotNil(t, highcharts.ChildOfKind(declaration.KindInterface, "Options"))
	assert.NotNil(t, highcharts.ChildOfKind(declaration.KindType, "SeriesOptionsType"))

	highstock := module(t, r, "code/highstock")
	assert.NotNil(t, highstock.Child("stockChart"))
	assert.NotNil(t, highstock.Child("navigator"))
	assert.NotNil(t, highstock.ChildOfKind(declaration.KindInterface, "Options"))
}

func TestRunFactoryModule(t *testing.T) {
	r := runProducts(t)
	stock := module(t, r, "code/modules/stock")

	assert.Empty(t, stock.Name)
	assert.Equal(t, []string{`import * as Highcharts from "../highcharts";`}, stock.Imports)
	assert.Equal(t, []string{"export default factory;"}, stock.Exports)

	factory := stock.ChildOfKind(declaration.KindFunction, "factory")
	require.NotNil(t, factory)
	require.Len(t, factory.Parameters(), 1)
	assert.Equal(t, "highcharts", factory.Parameters()[0].Name)
	assert.Equal(t, []string{"typeof Highcharts"}, factory.Parameters()[0].Types)
}

func TestRunModularProduct(t *testing.T) {
	r := runProducts(t)
	stock := module(t, r, "code/modules/stock")

	external := stock.ChildOfKind(declaration.KindExternalModule, "Highcharts")
	require.NotNil(t, external)
	assert.Equal(t, "../highcharts", external.Path)
	assert.Equal(t, []string{"stockChart", "navigator", "HighstockSeriesOptionsType"}, external.ChildrenNames(false))
}

func TestRunPrunes(t *testing.T) {
	r := runProducts(t)

	for _, product := range []string{"highcharts", "highstock"} {
		assert.Contains(t, r.Removed[product], "Highcharts.Base")
		assert.Contains(t, r.Removed[product], "Highcharts.Point")
		assert.NotContains(t, r.Removed[product], "Highcharts.Options")
	}
	chart := module(t, r, "code/highcharts").ChildOfKind(declaration.KindClass, "Chart")
	require.NotNil(t, chart)
	assert.Equal(t, []string{"any"}, chart.Types)
}

func TestRunFiles(t *testing.T) {
	files := runProducts(t).Files()
	require.Len(t, files, 8)
	assert.Equal(t, "code/globals.d.ts", files[0].Name)
	assert.Equal(t, "code/globals.src.d.ts", files[1].Name)
	assert.Contains(t, string(files[3].Content), `declare module "../highcharts.src" {`)
}

func TestRunWithoutOptions(t *testing.T) {
	result, err := Run(context.Background(), DefaultConfig(), namespaceTrees(), nil)
	require.NoError(t, err)
	highcharts := module(t, result, "code/highcharts")
	assert.Nil(t, highcharts.Child("Options"))
}

func TestRunErrors(t *testing.T) {
	t.Run("missing main module", func(t *testing.T) {
		_, err := Run(context.Background(), DefaultConfig(), &maputil.Ordered[*doctree.Node]{}, nil)
		assert.ErrorContains(t, err, `main module "code/highcharts"`)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Run(context.Background(), &Config{}, namespaceTrees(), nil)
		assert.True(t, errors.Is(err, declerrors.ErrConfig))
	})

	t.Run("missing options anchor", func(t *testing.T) {
		options := testutil.Option("", nil, testutil.Option("chart", nil))
		_, err := Run(context.Background(), DefaultConfig(), namespaceTrees(), options)
		assert.True(t, errors.Is(err, declerrors.ErrMissingAnchor))
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, DefaultConfig(), namespaceTrees(), nil)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestGenerate(t *testing.T) {
	ns, err := Generate("highstock", testutil.NewNamespaceTree())
	require.NoError(t, err)
	assert.Equal(t, "Highcharts", ns.Name)
	assert.NotNil(t, ns.Child("stockChart"))
	assert.Nil(t, ns.Child("setTimeout"))

	main, err := Generate("highcharts", testutil.NewNamespaceTree())
	require.NoError(t, err)
	added := Diff(ns, main, "highstock")
	assert.Equal(t, []string{"stockChart"}, added.ChildrenNames(false))

	Merge(main, ns)
	assert.NotNil(t, main.Child("stockChart"))

	removed := PruneInvalidTypes(main)
	assert.Contains(t, removed, "Highcharts.Options")
}

func TestGenerateWithGlobals(t *testing.T) {
	ns, globals, err := GenerateWithGlobals("highcharts", testutil.NewNamespaceTree())
	require.NoError(t, err)
	assert.Nil(t, ns.Child("setTimeout"))
	assert.Equal(t, "globals", globals.Name)
	assert.NotNil(t, globals.ChildOfKind(declaration.KindProperty, "setTimeout"))

	_, _, err = GenerateWithGlobals("highcharts", testutil.NewNamespaceTree(), generator.WithNamespaceName(""))
	assert.Error(t, err)
}

func TestRelativeImport(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"code/modules/stock", "code/highcharts", "../highcharts"},
		{"code/highstock", "code/highcharts", "./highcharts"},
		{"code/es-modules/masters/modules/a", "code/highcharts", "../../../highcharts"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeImport(tt.from, tt.to))
	}
}

func TestFailureError(t *testing.T) {
	f := Failure{Product: "highstock", Pass: "diff", Err: errors.New("boom")}
	assert.Equal(t, "highstock diff pass: boom", f.Error())
	assert.True(t, errors.Is(f, f.Err))
}
