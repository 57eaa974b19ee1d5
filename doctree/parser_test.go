package doctree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/declgen/declerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namespaceJSON = `{
  "doclet": {"kind": "global", "description": "Root"},
  "children": [
    {
      "doclet": {
        "kind": "function",
        "name": "Highcharts.chart",
        "parameters": {
          "renderTo": {"types": ["string", "Highcharts.HTMLDOMElement"], "isOptional": true},
          "options": {"types": ["Highcharts.Options"]},
          "callback": {"types": ["Highcharts.ChartCallbackFunction"], "isOptional": true}
        },
        "return": {"types": ["Highcharts.Chart"]}
      },
      "meta": {"filename": "Core/Chart.js", "line": 12}
    },
    {"doclet": {"kind": "class", "name": "Highcharts.Axis"}}
  ]
}`

const optionsYAML = `
doclet:
  description: Options root
meta:
  fullname: ""
children:
  title:
    doclet:
      type:
        names: [string]
    meta:
      fullname: title
      name: title
  chart:
    doclet: {}
    meta:
      fullname: chart
      name: chart
`

func TestParseWithOptions_JSONArrayChildren(t *testing.T) {
	result, err := ParseWithOptions(WithBytes([]byte(namespaceJSON)))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "<bytes>", result.SourcePath)
	require.NotNil(t, result.Root)
	assert.Equal(t, "global", result.Root.Kind())

	// array children are keyed by doclet name
	assert.Equal(t, []string{"Highcharts.chart", "Highcharts.Axis"}, result.Root.Children.Keys())

	fn := result.Root.Child("Highcharts.chart")
	require.NotNil(t, fn)
	assert.Equal(t, []string{"renderTo", "options", "callback"}, fn.Doclet.Parameters.Keys())
	assert.Equal(t, "Core/Chart.js", fn.Meta.Filename)
	assert.Equal(t, []string{"Highcharts.Chart"}, fn.Doclet.Return.Types)

	assert.Equal(t, 3, result.Stats.NodeCount)
	assert.Equal(t, 2, result.Stats.MaxDepth)
	assert.Equal(t, 1, result.Stats.Kinds["class"])
}

func TestParseWithOptions_YAMLObjectChildren(t *testing.T) {
	result, err := ParseWithOptions(WithReader(strings.NewReader(optionsYAML)))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, []string{"title", "chart"}, result.Root.Children.Keys())
	assert.Equal(t, []string{"string"}, result.Root.Child("title").Doclet.TypeNames())
	assert.Equal(t, "chart", result.Root.Child("chart").Path())
}

func TestParseWithOptions_ModuleMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree-namespace.json")
	content := `{"code/highcharts": ` + namespaceJSON + `, "code/modules/exporting": {"doclet": {"kind": "global"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	result, err := ParseWithOptions(WithFilePath(path), WithModuleMap(true))
	require.NoError(t, err)

	assert.Nil(t, result.Root)
	assert.Equal(t, []string{"code/highcharts", "code/modules/exporting"}, result.Modules.Keys())
	assert.Equal(t, 4, result.Stats.NodeCount)
	assert.Equal(t, path, result.SourcePath)
}

func TestParseWithOptions_ModuleMapYAML(t *testing.T) {
	content := `code/modules/exporting:
  doclet:
    kind: global
code/highcharts:
  doclet:
    kind: global
    description: Root
  children:
    Highcharts:
      doclet:
        kind: namespace
        name: Highcharts
`
	result, err := ParseWithOptions(WithBytes([]byte(content)), WithFormat(SourceFormatYAML), WithModuleMap(true))
	require.NoError(t, err)

	assert.Nil(t, result.Root)
	assert.Equal(t, []string{"code/modules/exporting", "code/highcharts"}, result.Modules.Keys())
	main, ok := result.Modules.Get("code/highcharts")
	require.True(t, ok)
	assert.Equal(t, "Root", main.Doclet.Description)
	assert.Equal(t, []string{"Highcharts"}, main.Children.Keys())
}

func TestParseWithOptions_Errors(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		_, err := ParseWithOptions()
		assert.ErrorIs(t, err, declerrors.ErrConfig)
	})

	t.Run("two inputs", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("{}")), WithFilePath("x.json"))
		assert.ErrorIs(t, err, declerrors.ErrConfig)
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := ParseWithOptions(WithReader(nil))
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("{}")), WithFormat("toml"))
		assert.ErrorIs(t, err, declerrors.ErrConfig)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(`{"doclet": [`)))
		assert.ErrorIs(t, err, declerrors.ErrParse)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestDocletHelpers(t *testing.T) {
	d := &Doclet{
		Types:    []string{"number"},
		Type:     &TypeNames{Names: []string{"string"}},
		Products: []string{"highstock"},
		Extends:  []string{"plotOptions.line", "series"},
	}

	assert.Equal(t, []string{"string"}, d.TypeNames())
	assert.True(t, d.InheritsFrom("plotOptions"))
	assert.False(t, d.InheritsFrom("xAxis"))
	assert.True(t, d.HasProduct("highstock"))
	assert.False(t, d.HasProduct("highmaps"))
	assert.True(t, (&Doclet{}).HasProduct("highmaps"))

	var nilDoclet *Doclet
	assert.Nil(t, nilDoclet.TypeNames())
	assert.True(t, nilDoclet.HasProduct("highcharts"))

	n := &Node{Doclet: &Doclet{Access: "private"}}
	assert.True(t, n.IsPrivate())
	assert.Equal(t, "", (&Node{}).Path())
}
