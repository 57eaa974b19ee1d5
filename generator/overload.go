package generator

import "github.com/erraggy/declgen/declaration"

// applyParameters sets params on decl. When the first parameter is optional
// and the second is required, the first is made required and a second
// signature without it is returned for the caller to place next to decl.
// Otherwise the returned signature is nil.
func applyParameters(decl *declaration.Declaration, params []*declaration.Declaration) *declaration.Declaration {
	if len(params) < 2 || !params[0].IsOptional || params[1].IsOptional {
		decl.SetParameters(params...)
		return nil
	}
	overload := decl.Clone()
	rest := make([]*declaration.Declaration, 0, len(params)-1)
	for _, p := range params[1:] {
		rest = append(rest, p.Clone())
	}
	overload.SetParameters(rest...)

	params[0].IsOptional = false
	decl.SetParameters(params...)
	return overload
}

func parameterDeclarations(params []parameter) []*declaration.Declaration {
	out := make([]*declaration.Declaration, 0, len(params))
	for _, p := range params {
		decl := declaration.NewParameter(p.name)
		decl.Description = p.description
		decl.DefaultValue = p.defaultValue
		decl.IsVariable = p.isVariable
		decl.IsOptional = p.isOptional
		decl.AddTypes(p.types...)
		out = append(out, decl)
	}
	return out
}

func eventDeclarations(events []event) []*declaration.Declaration {
	out := make([]*declaration.Declaration, 0, len(events))
	for _, e := range events {
		decl := declaration.New(declaration.KindEvent, e.name)
		decl.Description = e.description
		decl.AddTypes(e.types...)
		out = append(out, decl)
	}
	return out
}
