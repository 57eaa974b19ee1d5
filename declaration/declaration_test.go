package declaration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Declaration {
	mod := NewModule("Highcharts")
	chart := NewClass("Chart")
	chart.Description = "The chart class."
	ctor := NewConstructor()
	ctor.SetParameters(NewParameter("renderTo"), NewParameter("options"))
	redraw := NewFunction("redraw")
	redraw.Types = []string{"void"}
	chart.AddChildren(ctor, redraw)
	mod.AddChildren(chart, NewInterface("Options"))
	return mod
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "interface", KindInterface.String())
	assert.Equal(t, "external module", KindExternalModule.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.True(t, KindConstructor.IsCallable())
	assert.False(t, KindProperty.IsCallable())
	assert.True(t, KindClass.IsClassLike())
	assert.True(t, KindNamespace.IsScope())
}

func TestFullName(t *testing.T) {
	mod := sampleTree()
	redraw := mod.Child("Chart").Child("redraw")
	require.NotNil(t, redraw)
	assert.Equal(t, "Highcharts.Chart.redraw", redraw.FullName())

	// unnamed ancestors are skipped
	anon := NewModule("")
	ns := NewNamespace("Highcharts")
	fn := NewFunction("setOptions")
	ns.AddChildren(fn)
	anon.AddChildren(ns)
	assert.Equal(t, "Highcharts.setOptions", fn.FullName())
	assert.Same(t, anon, fn.Root())
	assert.Same(t, ns, fn.EnclosingScope(func(k Kind) bool { return k == KindNamespace }))

	params := mod.Child("Chart").Child(ConstructorName).Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "Highcharts.Chart.constructor.options", params[1].FullName())
}

func TestLookupsReturnFirstMatch(t *testing.T) {
	ns := NewNamespace("Highcharts")
	first := NewFunction("chart")
	second := NewFunction("chart")
	second.Description = "overload"
	ns.AddChildren(first, second, NewProperty("version"))

	assert.Same(t, first, ns.Child("chart"))
	assert.Len(t, ns.ChildrenNamed("chart"), 2)
	assert.Nil(t, ns.ChildOfKind(KindProperty, "chart"))
	assert.NotNil(t, ns.ChildOfKind(KindProperty, "version"))
	assert.Equal(t, []string{"chart", "chart", "version"}, ns.ChildrenNames(false))

	removed := ns.RemoveChild("chart")
	assert.Same(t, first, removed)
	assert.Nil(t, removed.Parent())
	assert.Same(t, second, ns.Child("chart"))
}

func TestChildrenNamesRecursive(t *testing.T) {
	mod := sampleTree()
	assert.Equal(t, []string{
		"Highcharts.Chart",
		"Highcharts.Chart.constructor",
		"Highcharts.Chart.redraw",
		"Highcharts.Options",
	}, mod.ChildrenNames(true))
}

func TestAddChildrenMovesFromPreviousParent(t *testing.T) {
	a := NewNamespace("a")
	b := NewNamespace("b")
	c := NewInterface("c")
	a.AddChildren(c)
	b.AddChildren(c)

	assert.False(t, a.HasChildren())
	assert.Same(t, b, c.Parent())
	assert.Equal(t, "b.c", c.FullName())
}

func TestAddChildrenRejectsCycles(t *testing.T) {
	a := NewNamespace("a")
	b := NewNamespace("b")
	a.AddChildren(b)
	assert.Panics(t, func() { b.AddChildren(a) })
	assert.Panics(t, func() { a.AddChildren(a) })
}

func TestRemoveChildrenClearsParent(t *testing.T) {
	mod := sampleTree()
	removed := mod.RemoveChildren()
	require.Len(t, removed, 2)
	assert.False(t, mod.HasChildren())
	for _, c := range removed {
		assert.Nil(t, c.Parent())
	}
	assert.Equal(t, "Chart", removed[0].FullName())
}

func TestCloneIsIndependent(t *testing.T) {
	mod := sampleTree()
	chart := mod.Child("Chart")
	clone := chart.Clone()

	assert.Nil(t, clone.Parent())
	assert.True(t, Equal(chart, clone))
	assert.Equal(t, "Chart.constructor", clone.Child(ConstructorName).FullName())

	clone.Description = "changed"
	clone.Child("redraw").AddTypes("boolean")
	clone.Child(ConstructorName).Parameters()[0].Name = "container"
	clone.AddChildren(NewProperty("extra"))

	assert.Equal(t, "The chart class.", chart.Description)
	assert.Equal(t, []string{"void"}, chart.Child("redraw").Types)
	assert.Equal(t, []string{"renderTo", "options"}, chart.Child(ConstructorName).ParameterNames())
	assert.Nil(t, chart.Child("extra"))
	assert.False(t, Equal(chart, clone))
}

func TestSetParameters(t *testing.T) {
	fn := NewFunction("f")
	a, b := NewParameter("a"), NewParameter("b")
	fn.SetParameters(a, b)
	assert.True(t, fn.HasParameters())
	assert.Same(t, fn, a.Parent())

	fn.SetParameters(b)
	assert.Nil(t, a.Parent())
	assert.Equal(t, []string{"b"}, fn.ParameterNames())
}

func TestAbsorbAndTypes(t *testing.T) {
	p := NewProperty("color")
	p.Absorb("", nil, "string")
	p.Absorb("The color.", []string{"https://example.com/a"}, "string", "Highcharts.ColorString")
	p.Absorb("Ignored.", []string{"https://example.com/a", "https://example.com/b"}, "")

	assert.Equal(t, "The color.", p.Description)
	assert.Equal(t, []string{"string", "Highcharts.ColorString"}, p.Types)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, p.See)

	p.SetTypes("number", "number", "any")
	assert.Equal(t, []string{"number", "any"}, p.Types)
}

func TestUpsert(t *testing.T) {
	ns := NewNamespace("Highcharts")
	iface, created := ns.Upsert(KindInterface, "Options")
	assert.True(t, created)
	again, created := ns.Upsert(KindInterface, "Options")
	assert.False(t, created)
	assert.Same(t, iface, again)

	// a same-named child of another kind does not satisfy the lookup
	_, created = ns.Upsert(KindClass, "Options")
	assert.True(t, created)
	assert.Len(t, ns.ChildrenNamed("Options"), 2)
}

func TestWalk(t *testing.T) {
	var visited []string
	sampleTree().Walk(func(d *Declaration) {
		visited = append(visited, d.Name)
	})
	assert.Equal(t, []string{
		"Highcharts", "Chart", "constructor", "renderTo", "options", "redraw", "Options",
	}, visited)
}

func TestString(t *testing.T) {
	assert.Equal(t, "class Highcharts.Chart", sampleTree().Child("Chart").String())
}
