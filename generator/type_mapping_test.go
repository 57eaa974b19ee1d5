package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"*", "any"},
		{"Array", "Array<any>"},
		{"Boolean", "boolean"},
		{"Number", "number"},
		{"Object", "object"},
		{"String", "string"},
		{"Highcharts.Chart", "Highcharts.Chart"},
		{"Array.<Number>", "Array<number>"},
		{"Array<String|Number>", "Array<string|number>"},
		{"String | Number", "string|number"},
		{"Array<*>", "Array<any>"},
		{"Record<String, Array>", "Record<string, Array<any>>"},
		{`"String"`, `"String"`},
		{"StringTemplate", "StringTemplate"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapType(tt.input))
		})
	}
}

func TestMapTypesDeduplicates(t *testing.T) {
	assert.Equal(t, []string{"string", "Highcharts.ColorString"},
		MapTypes([]string{"String", "Highcharts.ColorString", "string"}))
}

func TestParseValues(t *testing.T) {
	types, ok, err := parseValues(`["left", "center", 1.5, true, null, "left"]`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{`"left"`, `"center"`, "1.5", "true", "null"}, types)

	_, ok, err = parseValues("")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = parseValues(`["left",`)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestReplaceAnyType(t *testing.T) {
	got, ok := replaceAnyType("Array<any>|any", "ChartOptions")
	assert.True(t, ok)
	assert.Equal(t, "Array<ChartOptions>|ChartOptions", got)

	got, ok = replaceAnyType("company", "ChartOptions")
	assert.False(t, ok)
	assert.Equal(t, "company", got)
}

func TestLiteralAndClassTypes(t *testing.T) {
	assert.True(t, isLiteralUnion([]string{`"a"`, `"b"`}))
	assert.False(t, isLiteralUnion([]string{`"a"`}))
	assert.False(t, isLiteralUnion([]string{`"a"`, "number"}))
	assert.Equal(t, []string{"Highcharts.Point"}, classTypes([]string{"object", "Highcharts.Point"}))
}
