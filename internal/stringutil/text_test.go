package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveExamples(t *testing.T) {
	input := "The chart.\n\n```js\nHighcharts.chart('c', {});\n```\nMore text.\n@sample highcharts/demo/line\n<pre>x</pre>"
	assert.Equal(t, "The chart.\n\nMore text.", RemoveExamples(input))
}

func TestTransformLists(t *testing.T) {
	input := "Possible values:\n* left\n1. right\n\nAfter."
	assert.Equal(t, "Possible values:\n\n- left\n- right\n\nAfter.", TransformLists(input))
	assert.Equal(t, "no list", TransformLists("no list"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("a \n b\t\tc", false))
	assert.Equal(t, "a b\n\nc", Normalize("a b  c", true))
}

func TestPad(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
		wrap   int
		want   string
	}{
		{
			name:   "single line",
			input:  "The chart.",
			prefix: " * ",
			wrap:   80,
			want:   " * The chart.\n",
		},
		{
			name:   "wraps words",
			input:  "one two three four",
			prefix: "// ",
			wrap:   12,
			want:   "// one two\n// three\n// four\n",
		},
		{
			name:   "paragraphs and lists",
			input:  "Intro text.\n\n- first\n- second",
			prefix: " * ",
			wrap:   80,
			want:   " * Intro text.\n *\n * - first\n * - second\n",
		},
		{
			name:   "empty",
			input:  "",
			prefix: " * ",
			wrap:   80,
			want:   " *\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.input, tt.prefix, tt.wrap))
		})
	}
}
