package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Schema schemaInput `json:"schema" jsonschema:"The schema document to parse"`
}

type parseOutput struct {
	Format               string   `json:"format"`
	Title                string   `json:"title,omitempty"`
	Description          string   `json:"description,omitempty"`
	SchemaCount          int      `json:"schema_count"`
	PropertyCount        int      `json:"property_count"`
	PatternPropertyCount int      `json:"pattern_property_count"`
	RefCount             int      `json:"ref_count"`
	DefinitionCount      int      `json:"definition_count"`
	MaxNestingDepth      int      `json:"max_nesting_depth"`
	SourceSize           int64    `json:"source_size"`
	Warnings             []string `json:"warnings,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Format:               string(result.SourceFormat),
		SchemaCount:          result.Stats.SchemaCount,
		PropertyCount:        result.Stats.PropertyCount,
		PatternPropertyCount: result.Stats.PatternPropertyCount,
		RefCount:             result.Stats.RefCount,
		DefinitionCount:      result.Stats.DefinitionCount,
		MaxNestingDepth:      result.Stats.MaxNestingDepth,
		SourceSize:           result.SourceSize,
		Warnings:             result.Warnings,
	}
	if result.Root != nil {
		output.Title = result.Root.Title
		output.Description = result.Root.Description
	}

	return nil, output, nil
}
