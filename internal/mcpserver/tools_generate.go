package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/declgen/pipeline"
	"github.com/erraggy/declgen/renderer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Namespace   treeInput `json:"namespace"              jsonschema:"The namespace module map: an object of module key to doc tree"`
	Options     treeInput `json:"options,omitempty"      jsonschema:"The options doc tree. Option interfaces are skipped when omitted"`
	Config      string    `json:"config,omitempty"       jsonschema:"Path to a products YAML file. Defaults to DECLGEN_CONFIG or the single product highcharts"`
	IncludeText bool      `json:"include_text,omitempty" jsonschema:"Include the rendered .d.ts text of every module"`
	OutputDir   string    `json:"output_dir,omitempty"   jsonschema:"Directory to write the .d.ts and .src.d.ts files to"`
}

type moduleSummary struct {
	Key          string `json:"key"`
	Name         string `json:"name,omitempty"`
	Declarations int    `json:"declarations"`
	Text         string `json:"text,omitempty"`
}

type generateOutput struct {
	Modules  []moduleSummary     `json:"modules"`
	Issues   int                 `json:"issues"`
	Removed  map[string][]string `json:"removed,omitempty"`
	Failures []string            `json:"failures,omitempty"`
	Files    []string            `json:"files,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	conf, err := loadProducts(input.Config)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	modules, err := input.Namespace.resolve(true)
	if err != nil {
		return errResult(fmt.Errorf("namespace: %w", err)), generateOutput{}, nil
	}
	options, err := input.Options.resolveOptional()
	if err != nil {
		return errResult(fmt.Errorf("options: %w", err)), generateOutput{}, nil
	}

	result, err := pipeline.Run(ctx, conf, &modules.Modules, options)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Modules: makeSlice[moduleSummary](result.Modules.Len()),
		Issues:  len(result.Issues),
		Removed: result.Removed,
	}
	for _, key := range result.Modules.Keys() {
		module, _ := result.Modules.Get(key)
		summary := moduleSummary{
			Key:          key,
			Name:         module.Name,
			Declarations: len(module.ChildrenNames(true)),
		}
		if input.IncludeText {
			summary.Text = renderer.Render(module)
		}
		output.Modules = append(output.Modules, summary)
	}
	for _, f := range result.Failures {
		output.Failures = append(output.Failures, f.Error())
	}

	if input.OutputDir != "" {
		files := result.Files()
		if err := renderer.WriteFiles(input.OutputDir, files); err != nil {
			return errResult(err), generateOutput{}, nil
		}
		for _, f := range files {
			output.Files = append(output.Files, f.Name)
		}
	}

	return nil, output, nil
}

// loadProducts reads the products configuration from path, falling back to
// DECLGEN_CONFIG and then to the default configuration.
func loadProducts(path string) (*pipeline.Config, error) {
	if path == "" {
		path = cfg.ProductsConfig
	}
	if path == "" {
		return pipeline.DefaultConfig(), nil
	}
	return pipeline.LoadConfig(path)
}
