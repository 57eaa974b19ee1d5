// Package renderer writes declaration trees as TypeScript declaration
// (.d.ts) text.
//
// # Quick Start
//
//	text := renderer.Render(namespace)
//	files := renderer.Files("code/highcharts", namespace)
//	if err := renderer.WriteFiles("build", files); err != nil {
//		log.Fatal(err)
//	}
//
// # Layout
//
// A module renders as a copyright header built from its description, its
// import statements, its declarations and finally its export statements.
// Declarations of a named module are exported; declarations of an unnamed
// module are ambient (declare). Namespaces nest; external modules become
// "declare module" augmentation blocks.
//
// Same-named function types render as one alias over the intersection of
// their signatures. Callables without return types return void, other
// declarations without types are any. Private declarations are omitted.
package renderer
