package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/testutil"
)

func TestDefaultSeeLink(t *testing.T) {
	tests := []struct {
		name, kind, product string
		want                string
	}{
		{"chart.type", "option", "highstock", "https://api.highcharts.com/highstock/chart.type"},
		{"chart.type", "option", "", "https://api.highcharts.com/highcharts/chart.type"},
		{"Highcharts.Chart", "class", "", "https://api.highcharts.com/class-reference/Highcharts.Chart"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultSeeLink(tt.name, tt.kind, tt.product))
	}
}

func TestApplyOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := applyOptions()
		require.NoError(t, err)
		assert.Equal(t, DefaultNamespace, cfg.namespace)
		assert.Empty(t, cfg.product)
		assert.NotNil(t, cfg.seeLink)
		assert.IsType(t, doctree.NopLogger{}, cfg.logger)
	})

	t.Run("overrides", func(t *testing.T) {
		products := []string{"highcharts", "highstock"}
		cfg, err := applyOptions(
			WithProduct("highstock"),
			WithProducts(products...),
			WithNamespaceName("Charts"),
			WithSeeLink(nil),
			WithLogger(nil),
		)
		require.NoError(t, err)
		assert.Equal(t, "highstock", cfg.product)
		assert.Equal(t, products, cfg.products)
		assert.Equal(t, "Charts", cfg.namespace)
		assert.Nil(t, cfg.seeLink)
		assert.IsType(t, doctree.NopLogger{}, cfg.logger)

		products[0] = "changed"
		assert.Equal(t, "highcharts", cfg.products[0])
	})

	t.Run("empty namespace", func(t *testing.T) {
		_, err := applyOptions(WithNamespaceName(""))
		assert.ErrorContains(t, err, "generator: invalid options: namespace name cannot be empty")
	})
}

func TestReporter(t *testing.T) {
	r := &reporter{logger: doctree.NopLogger{}}
	node := testutil.Doc("function", "Highcharts.Chart#redraw")
	node.Meta.Filename = "ts/Core/Chart/Chart.ts"
	node.Meta.Line = 42
	r.warn(node, "unsupported doclet kind", "mixin")
	r.warnf("series.line.type", "malformed values", "[")

	root := declaration.NewModule(DefaultNamespace)
	root.AddChildren(declaration.NewFunction("noop"))
	res := r.result(root, "highcharts", time.Now())

	require.Len(t, res.Issues, 2)
	assert.Equal(t, "Highcharts.Chart#redraw", res.Issues[0].Path)
	assert.Equal(t, "ts/Core/Chart/Chart.ts", res.Issues[0].File)
	assert.Equal(t, 42, res.Issues[0].Line)
	assert.Equal(t, "series.line.type", res.Issues[1].Path)
	assert.Equal(t, 2, res.WarningCount)
	assert.Equal(t, 0, res.InfoCount)
	assert.Equal(t, 1, res.DeclarationCount)
	assert.Equal(t, "highcharts", res.Product)
	assert.True(t, res.HasWarnings())

	r.issues = append(r.issues, GenerateIssue{Severity: SeverityInfo})
	assert.Len(t, res.Issues, 2, "result must not alias the reporter issues")
}
