package generator

import (
	"slices"
	"strings"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/doctree"
	"github.com/erraggy/declgen/internal/naming"
	"github.com/erraggy/declgen/internal/stringutil"
)

// doclet is a normalized copy of a doctree.Doclet. The source doclet is
// never modified.
type doclet struct {
	kind        string
	name        string
	path        string
	description string
	types       []string
	parameters  []parameter
	hasParams   bool
	ret         *returnDoc
	see         []string
	events      []event
	fires       []string
	products    []string
	isGlobal    bool
	isPrivate   bool
	isStatic    bool
	isOptional  bool
}

type parameter struct {
	name         string
	description  string
	types        []string
	isOptional   bool
	isVariable   bool
	defaultValue string
}

type returnDoc struct {
	description string
	types       []string
}

type event struct {
	name        string
	description string
	types       []string
}

// cleanDescription trims s, drops examples, strips links into links and
// normalizes lists.
func cleanDescription(s string, links *[]string) string {
	s = stringutil.RemoveExamples(strings.TrimSpace(s))
	s, found := stringutil.StripLinks(s)
	*links = append(*links, found...)
	return stringutil.TransformLists(s)
}

// withProductsTag prefixes a non-empty description with the product list
// unless it already starts with a tag.
func withProductsTag(description string, products []string) string {
	if description == "" || len(products) == 0 || strings.HasPrefix(description, "(") {
		return description
	}
	return naming.ProductsTag(products) + description
}

func defaultTypes(types []string) []string {
	if len(types) == 0 {
		return []string{declaration.AnyType}
	}
	return MapTypes(types)
}

// normalizeDoclet prepares the doclet of a namespace tree node.
func (g *NamespaceGenerator) normalizeDoclet(node *doctree.Node) *doclet {
	src := node.Doclet
	if src == nil {
		src = &doctree.Doclet{Kind: "global"}
	}
	segments := declaration.Namespaces(src.Name)
	d := &doclet{
		kind:      src.Kind,
		path:      strings.Join(segments, "."),
		products:  src.Products,
		isGlobal:  src.IsGlobal,
		isPrivate: src.IsPrivate || src.Access == "private",
		isStatic:  src.IsStatic,
		fires:     src.Fires,
	}
	if len(segments) > 0 {
		d.name = segments[len(segments)-1]
	}

	var links []string
	d.description = withProductsTag(cleanDescription(src.Description, &links), src.Products)

	for _, name := range src.Parameters.Keys() {
		p, _ := src.Parameters.Get(name)
		if p == nil {
			p = &doctree.Parameter{}
		}
		param := parameter{
			name:         name,
			types:        defaultTypes(p.Types),
			isVariable:   p.IsVariable,
			isOptional:   p.IsOptional && !p.IsVariable,
			defaultValue: p.DefaultValue,
		}
		if p.Description != "" {
			param.description = cleanDescription(p.Description, &links)
		}
		d.parameters = append(d.parameters, param)
	}
	d.hasParams = src.Parameters.Len() > 0

	if src.Return != nil {
		d.ret = &returnDoc{types: defaultTypes(src.Return.Types)}
		if src.Return.Description != "" {
			d.ret.description = cleanDescription(src.Return.Description, &links)
		}
	}

	for _, name := range src.Events.Keys() {
		e, _ := src.Events.Get(name)
		ev := event{name: name}
		if e != nil {
			ev.description = e.Description
			ev.types = MapTypes(e.Types)
		}
		d.events = append(d.events, ev)
	}

	links = append(links, src.See...)

	declared := src.TypeNames()
	values, hasValues, err := parseValues(src.Values)
	if err != nil {
		g.report.warn(node, "malformed values payload, keeping declared types", src.Values)
	}
	switch {
	case hasValues:
		d.types = values
	case len(declared) > 0:
		d.types = MapTypes(declared)
		if !strings.HasPrefix(d.name, "[") && len(d.types) > 1 && slices.Contains(d.types, "undefined") {
			d.isOptional = true
			d.types = slices.DeleteFunc(d.types, func(t string) bool { return t == "undefined" })
		}
	default:
		d.types = []string{declaration.AnyType}
	}
	d.isOptional = d.isOptional || src.IsOptional

	if g.cfg.seeLink != nil && d.path != "" {
		for _, link := range links {
			if len(stringutil.URLs(link)) > 0 {
				d.see = []string{g.cfg.seeLink(d.path, d.kind, "")}
				break
			}
		}
	}
	return d
}

// normalizeOption prepares the doclet of an options tree node.
func (g *OptionsGenerator) normalizeOption(node *doctree.Node) *doclet {
	src := node.Doclet
	if src == nil {
		src = &doctree.Doclet{}
	}
	d := &doclet{
		name:      node.Meta.Name,
		path:      node.Path(),
		products:  src.Products,
		isPrivate: node.IsPrivate(),
	}

	var links []string
	d.description = cleanDescription(src.Description, &links)
	links = append(links, src.See...)
	d.types = defaultTypes(src.TypeNames())

	if len(src.Products) > 0 {
		links = links[:0]
		if g.cfg.seeLink != nil {
			for _, product := range src.Products {
				links = append(links, g.cfg.seeLink(d.path, "option", product))
			}
		}
		d.description = withProductsTag(d.description, src.Products)
	}

	if g.cfg.seeLink != nil {
		for _, link := range links {
			if urls := stringutil.URLs(link); len(urls) > 0 {
				d.see = declaration.MergeStrings(d.see, urls[0])
			}
		}
	}
	return d
}
