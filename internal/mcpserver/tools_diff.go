package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/declgen/differ"
	"github.com/erraggy/declgen/pipeline"
	"github.com/erraggy/declgen/renderer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultReferenceProduct = "highcharts"

type diffInput struct {
	Tree             treeInput `json:"tree"                        jsonschema:"The namespace doc tree the product namespace is generated from"`
	Reference        treeInput `json:"reference,omitempty"         jsonschema:"The doc tree of the reference namespace. Defaults to tree"`
	Product          string    `json:"product"                     jsonschema:"The product whose additions are reported, e.g. highstock"`
	ReferenceProduct string    `json:"reference_product,omitempty" jsonschema:"The product of the reference namespace (default highcharts)"`
	ImportPath       string    `json:"import_path,omitempty"       jsonschema:"Import path of the augmented module (default ../highcharts)"`
	IncludeText      bool      `json:"include_text,omitempty"      jsonschema:"Include the rendered augmentation module"`
	Offset           int       `json:"offset,omitempty"            jsonschema:"Skip the first N changes (for pagination)"`
	Limit            int       `json:"limit,omitempty"             jsonschema:"Maximum number of changes to return (default 100)"`
}

type diffChange struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type diffOutput struct {
	Product       string       `json:"product"`
	AddedCount    int          `json:"added_count"`
	ExtendedCount int          `json:"extended_count"`
	DerivedCount  int          `json:"derived_count"`
	Returned      int          `json:"returned"`
	Changes       []diffChange `json:"changes,omitempty"`
	Text          string       `json:"text,omitempty"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	if input.Product == "" {
		return errResult(fmt.Errorf("product is required")), diffOutput{}, nil
	}
	refProduct := input.ReferenceProduct
	if refProduct == "" {
		refProduct = defaultReferenceProduct
	}
	refInput := input.Reference
	if !refInput.isSet() {
		refInput = input.Tree
	}

	tree, err := input.Tree.resolve(false)
	if err != nil {
		return errResult(fmt.Errorf("tree: %w", err)), diffOutput{}, nil
	}
	refTree, err := refInput.resolve(false)
	if err != nil {
		return errResult(fmt.Errorf("reference: %w", err)), diffOutput{}, nil
	}

	candidate, err := pipeline.Generate(input.Product, tree.Root)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	reference, err := pipeline.Generate(refProduct, refTree.Root)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	importPath := input.ImportPath
	if importPath == "" {
		importPath = "../highcharts"
	}
	result, err := differ.DiffWithOptions(
		differ.WithCandidate(candidate),
		differ.WithReference(reference),
		differ.WithProduct(input.Product),
		differ.WithImportPath(importPath),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		Product:       result.Product,
		AddedCount:    result.AddedCount,
		ExtendedCount: result.ExtendedCount,
		DerivedCount:  result.DerivedCount,
	}
	output.Changes = makeSlice[diffChange](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, diffChange{
			Path:    c.Path,
			Type:    string(c.Type),
			Kind:    c.Kind.String(),
			Message: c.Message,
		})
	}
	output.Changes = paginate(output.Changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)
	if input.IncludeText {
		output.Text = renderer.Render(result.Module)
	}

	return nil, output, nil
}
