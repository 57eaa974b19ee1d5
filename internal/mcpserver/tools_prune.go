package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/declgen/fixer"
	"github.com/erraggy/declgen/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type pruneInput struct {
	Tree    treeInput `json:"tree"              jsonschema:"The namespace doc tree to generate and prune"`
	Product string    `json:"product,omitempty" jsonschema:"Filter the namespace to this product. All products when omitted"`
	Offset  int       `json:"offset,omitempty"  jsonschema:"Skip the first N fixes (for pagination)"`
	Limit   int       `json:"limit,omitempty"   jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixApplied struct {
	Type        string   `json:"type"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Before      []string `json:"before"`
	After       []string `json:"after"`
}

type pruneOutput struct {
	Removed  []string     `json:"removed,omitempty"`
	FixCount int          `json:"fix_count"`
	Returned int          `json:"returned"`
	Fixes    []fixApplied `json:"fixes,omitempty"`
}

func handlePrune(_ context.Context, _ *mcp.CallToolRequest, input pruneInput) (*mcp.CallToolResult, pruneOutput, error) {
	tree, err := input.Tree.resolve(false)
	if err != nil {
		return errResult(fmt.Errorf("tree: %w", err)), pruneOutput{}, nil
	}
	ns, err := pipeline.Generate(input.Product, tree.Root)
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	result, err := fixer.FixWithOptions(fixer.WithNamespace(ns))
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	output := pruneOutput{
		Removed:  result.Removed,
		FixCount: result.FixCount,
	}
	output.Fixes = makeSlice[fixApplied](len(result.Fixes))
	for _, f := range result.Fixes {
		output.Fixes = append(output.Fixes, fixApplied{
			Type:        string(f.Type),
			Path:        f.Path,
			Description: f.Description,
			Before:      f.Before,
			After:       f.After,
		})
	}
	output.Fixes = paginate(output.Fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	return nil, output, nil
}
