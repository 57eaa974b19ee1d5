package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_TieredSizes(t *testing.T) {
	small := getBuffer(5)
	assert.GreaterOrEqual(t, small.Cap(), smallBufferSize)
	putBuffer(small, 5)

	medium := getBuffer(25)
	assert.GreaterOrEqual(t, medium.Cap(), mediumBufferSize)
	putBuffer(medium, 25)

	large := getBuffer(100)
	assert.GreaterOrEqual(t, large.Cap(), largeBufferSize)
	putBuffer(large, 100)
}

func TestBufferPool_Reset(t *testing.T) {
	buf := getBuffer(1)
	buf.WriteString("declare type Stale = any;\n")
	putBuffer(buf, 1)

	assert.Equal(t, 0, getBuffer(1).Len())
	assert.NotPanics(t, func() { putBuffer(nil, 1) })
}

func TestRenderReusesPool(t *testing.T) {
	first := Render(namespaceModule())
	second := Render(namespaceModule())
	assert.Equal(t, first, second)
}

func BenchmarkRender_WithPool(b *testing.B) {
	module := namespaceModule()
	for b.Loop() {
		_ = Render(module)
	}
}

func BenchmarkBuffer_WithoutPool(b *testing.B) {
	for b.Loop() {
		buf := bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
		buf.WriteString("declare namespace Highcharts {\n}\n")
	}
}
