package declaration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaces(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Highcharts.Chart#addSeries", []string{"Highcharts", "Chart", "addSeries"}},
		{"Highcharts~callback", []string{"Highcharts", "callback"}},
		{"series.[key:string]", []string{"series", "[key:string]"}},
		{"Array.<Highcharts.Point>", []string{"Array", "<Highcharts.Point>"}},
		{"a..b.", []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespaces(tt.in))
		})
	}
}

func TestExtractTypeNames(t *testing.T) {
	got := ExtractTypeNames(
		"Array<Highcharts.Point>|null",
		`"left"|'right'|Highcharts.Point`,
		"Record<string, 10>",
		"(Highcharts.Axis.)",
	)
	assert.Equal(t, []string{"Array", "Highcharts.Point", "null", "Record", "string", "Highcharts.Axis"}, got)
	assert.Empty(t, ExtractTypeNames(`"unterminated`))
}

func TestSplitUnion(t *testing.T) {
	assert.Equal(t, []string{"string", "Array<number|string>", "Record<string, (a|b)>"},
		SplitUnion("string | Array<number|string>|Record<string, (a|b)>"))
	assert.Equal(t, []string{"number"}, SplitUnion("number"))
}

func TestMergeStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, MergeStrings([]string{"a"}, "b", "", "a", "c", "b"))
	assert.Nil(t, MergeStrings(nil))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(NewModule("a"), nil))
	a, b := sampleTree(), sampleTree()
	assert.True(t, Equal(a, b))
	b.Child("Chart").Child(ConstructorName).Parameters()[1].IsOptional = true
	assert.False(t, Equal(a, b))
}
