// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes declgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/declgen"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `declgen MCP server: generates TypeScript declaration trees from API documentation doc trees, diffs product namespaces, and prunes dangling type references.

Doc trees are passed as a file path or inline JSON/YAML content. The generate tool takes a module map (an object of module key to doc tree), the other tools take a single namespace doc tree.

Configuration: All defaults are configurable via DECLGEN_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- DECLGEN_CONFIG: products YAML used when a generate call names none (default: the single product highcharts)
- DECLGEN_CACHE_FILE_TTL (default: 15m): cache TTL for doc tree files
- DECLGEN_CACHE_ENABLED (default: true): disable doc tree caching entirely
- DECLGEN_LIST_LIMIT (default: 100): default result limit for listed changes and fixes

Caching: Loaded doc trees are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		treeCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "declgen", Version: declgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate the declaration modules of every configured product from a namespace module map and an optional options doc tree. Returns a summary per module key. Use include_text=true to return the rendered .d.ts text, or output_dir to write the declaration files. Products are read from config, or from DECLGEN_CONFIG.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compute the declarations a product adds over a reference product. Both namespaces are generated from the same doc tree unless a reference tree is given. Returns added, extended and derived declarations. Use include_text=true for the rendered augmentation module.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prune",
		Description: "Generate a product namespace from a doc tree and replace type references that name no declaration in it with any. Returns the removed type names and one fix per changed declaration. Use offset/limit to paginate through fixes.",
	}, handlePrune)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
