// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasnorm capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasnorm"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasnorm MCP server: normalizes OpenAPI and JSON Schema documents and reports schema drift between two versions.

Configuration: All defaults are configurable via OASNORM_* environment variables set in your MCP client config.

Key settings:
- OASNORM_PRESET (default: normalize): preset used when normalize is called without one
- OASNORM_PRUNE_BOUND (default: 10): maximum removing passes for unused schema pruning
- OASNORM_CONTEXT_LINES (default: 3): unchanged lines around each diff hunk
- OASNORM_CACHE_ENABLED (default: true): cache sibling documents loaded for external refs
- OASNORM_CACHE_SIZE (default: 128): maximum cached sibling documents
- OASNORM_CACHE_TTL (default: 15m): lifetime of a cached sibling document
- OASNORM_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size

Call presets first to see which stages each preset runs.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasnorm", Version: oasnorm.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Normalize an OpenAPI or JSON Schema document through a preset pipeline: inline external refs, flatten allOf/oneOf/anyOf, strip documentation fields, extract inline enums, prune unused schemas. Returns the stage list, rewrite counts, and the normalized document. Use strip to remove extra fields (name, name=value, or prefix*) and tag_rewrites to rename or drop tags. Use output to write to a file instead of returning inline.",
	}, handleNormalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two versions of a schema document structurally. Formatting and key order are ignored. Returns added, removed, and modified JSON Pointer paths plus a unified patch over canonical YAML. Omit base for a new document or revision for a deleted one. Set comment=true to also get a Markdown drift report suitable for a pull request comment.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "presets",
		Description: "List the available normalization presets and the stages each one runs, in order.",
	}, handlePresets)
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
