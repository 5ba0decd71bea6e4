// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemalens capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemalens/schemalens"
)

const serverInstructions = `schemalens MCP server — parses JSON Schema documents and exposes property outlines, reference resolution, full-text search, and anchor codecs.

Configuration: All defaults are configurable via SCHEMALENS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SCHEMALENS_CACHE_FILE_TTL (default: 15m) — cache TTL for local schema files
- SCHEMALENS_CACHE_CONTENT_TTL (default: 15m) — cache TTL for inline content
- SCHEMALENS_CACHE_ENABLED (default: true) — disable document caching entirely
- SCHEMALENS_MAX_INLINE_SIZE (default: 2MiB) — inline content size cap
- SCHEMALENS_RESULT_LIMIT (default: 100) — default result limit for listing tools
- SCHEMALENS_DETAIL_LIMIT (default: 25) — default limit in detail mode

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemalens", Version: schemalens.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a JSON Schema document (JSON or YAML). Returns a structural summary: subschema, property, pattern-property, $ref, and definition counts, maximum nesting depth, and non-fatal warnings about unsupported keywords.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "outline",
		Description: "List the property outline of a schema document. Returns one descriptor per property with its dot path, anchor, type label, required flag, and description. By default lists the top level; pass path to outline beneath a specific property, or recursive=true to flatten the entire subtree (bounded by the extractor's depth ceiling). Pattern-derived properties appear as {pattern} entries with (pattern-N) path segments. Use offset/limit to paginate; default limit is configurable via SCHEMALENS_RESULT_LIMIT.",
	}, handleOutline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search a schema document for properties matching a query. Matching is case-insensitive over property names, descriptions, type labels, stringified examples, and oneOf/anyOf branch descriptions. Each result is classified direct (the property's own content matches), indirect (only a descendant matches), or both. Use hit to filter by classification. Use offset/limit to paginate.",
	}, handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve the schema node at a dot path (or anchor) within a document: dereferences $ref pointers and merges allOf compositions, returning the effective schema as YAML or JSON. Unresolvable references degrade to the original node and are reported as diagnostics, not errors.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "anchor",
		Description: "Convert between dot-delimited property paths and dash-delimited anchors, preserving (pattern-N) segments, and extract the oneOf branch index encoded in a path (default 0). No schema document is required.",
	}, handleAnchor)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
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

// detailLimit returns a lower default limit for detail mode output.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.DetailLimit
	}
	return limit
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
