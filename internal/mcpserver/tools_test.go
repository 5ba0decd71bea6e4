package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchemaYAML = `type: object
title: Service Config
description: Root configuration document
definitions:
  endpoint:
    type: object
    description: A network endpoint
    properties:
      host:
        type: string
        description: DNS name to connect to
      port:
        type: integer
        examples: [5432]
    required: [host]
properties:
  name:
    type: string
    description: Service name
  primary:
    $ref: "#/definitions/endpoint"
  plugins:
    type: object
    patternProperties:
      "^[a-z-]+$":
        type: object
        description: Per-plugin settings
required: [name]
`

func TestParseTool_Summary(t *testing.T) {
	input := parseInput{
		Schema: schemaInput{Content: testSchemaYAML},
	}
	_, output, err := handleParse(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, "Service Config", output.Title)
	assert.Equal(t, "Root configuration document", output.Description)
	assert.Equal(t, 1, output.RefCount)
	assert.Equal(t, 1, output.DefinitionCount)
	assert.Equal(t, 1, output.PatternPropertyCount)
	assert.Positive(t, output.SchemaCount)
	assert.Positive(t, output.SourceSize)
}

func TestParseTool_InvalidDocument(t *testing.T) {
	input := parseInput{
		Schema: schemaInput{Content: "not valid yaml: ["},
	}
	result, output, err := handleParse(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Empty(t, output.Format)
}

func TestOutlineTool_TopLevel(t *testing.T) {
	input := outlineInput{
		Schema: schemaInput{Content: testSchemaYAML},
	}
	_, output, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Equal(t, 3, output.Total)
	assert.Equal(t, 3, output.Returned)
	assert.Equal(t, "name", output.Properties[0].Name)
	assert.True(t, output.Properties[0].Required)
	assert.Equal(t, "name", output.Properties[0].Anchor)
	assert.Equal(t, "primary", output.Properties[1].Name)
	assert.Equal(t, "plugins", output.Properties[2].Name)
}

func TestOutlineTool_AtPath(t *testing.T) {
	input := outlineInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Path:   "primary",
	}
	_, output, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Equal(t, 2, output.Total)
	assert.Equal(t, "host", output.Properties[0].Name)
	assert.Equal(t, "primary.host", output.Properties[0].Path)
	assert.Equal(t, "primary-host", output.Properties[0].Anchor)
	assert.True(t, output.Properties[0].Required)
}

func TestOutlineTool_Recursive(t *testing.T) {
	input := outlineInput{
		Schema:    schemaInput{Content: testSchemaYAML},
		Recursive: true,
	}
	_, output, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	var paths []string
	for _, p := range output.Properties {
		paths = append(paths, p.Path)
	}
	assert.Contains(t, paths, "primary.host")
	assert.Contains(t, paths, "plugins.(pattern-0)")
}

func TestOutlineTool_PatternDescriptor(t *testing.T) {
	input := outlineInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Path:   "plugins",
	}
	_, output, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Equal(t, 1, output.Total)
	assert.Equal(t, "{pattern}", output.Properties[0].Name)
	assert.Equal(t, "^[a-z-]+$", output.Properties[0].Pattern)
	assert.False(t, output.Properties[0].Required)
	assert.Equal(t, "plugins-(pattern-0)", output.Properties[0].Anchor)
}

func TestOutlineTool_BadPath(t *testing.T) {
	input := outlineInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Path:   "no.such.thing",
	}
	result, _, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestOutlineTool_Pagination(t *testing.T) {
	input := outlineInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Offset: 1,
		Limit:  1,
	}
	_, output, err := handleOutline(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total)
	require.Equal(t, 1, output.Returned)
	assert.Equal(t, "primary", output.Properties[0].Name)
}

func TestSearchTool(t *testing.T) {
	input := searchInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Query:  "dns",
	}
	_, output, err := handleSearch(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.NotEmpty(t, output.Matches)
	var paths []string
	for _, m := range output.Matches {
		paths = append(paths, m.Path)
	}
	assert.Contains(t, paths, "primary", "ancestor of the match is an indirect hit")
	assert.Contains(t, paths, "primary.host")
}

func TestSearchTool_HitFilter(t *testing.T) {
	input := searchInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Query:  "dns",
		Hit:    "direct",
	}
	_, output, err := handleSearch(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	for _, m := range output.Matches {
		assert.Equal(t, "direct", m.Hit)
	}
}

func TestSearchTool_EmptyQuery(t *testing.T) {
	input := searchInput{
		Schema: schemaInput{Content: testSchemaYAML},
	}
	result, _, err := handleSearch(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestSearchTool_InvalidHitFilter(t *testing.T) {
	input := searchInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Query:  "dns",
		Hit:    "sideways",
	}
	result, _, err := handleSearch(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestResolveTool(t *testing.T) {
	input := resolveInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Path:   "primary",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "primary", output.Path)
	assert.Equal(t, "object", output.TypeLabel)
	assert.Contains(t, output.Resolved, "host")
	assert.NotContains(t, output.Resolved, "$ref")
	assert.Empty(t, output.Diagnostics)
}

func TestResolveTool_ByAnchor(t *testing.T) {
	input := resolveInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Anchor: "primary-host",
		Format: "json",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "primary.host", output.Path)
	assert.Contains(t, output.Resolved, "\"type\"")
}

func TestResolveTool_DanglingRefDiagnostics(t *testing.T) {
	doc := `type: object
properties:
  broken:
    $ref: "#/definitions/missing"
`
	input := resolveInput{
		Schema: schemaInput{Content: doc},
		Path:   "broken",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.NotEmpty(t, output.Diagnostics)
}

func TestResolveTool_InvalidFormat(t *testing.T) {
	input := resolveInput{
		Schema: schemaInput{Content: testSchemaYAML},
		Format: "toml",
	}
	result, _, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestAnchorTool(t *testing.T) {
	_, output, err := handleAnchor(context.Background(), &mcp.CallToolRequest{}, anchorInput{
		Path: "sdk.(pattern-0).dependencies",
	})
	require.NoError(t, err)
	assert.Equal(t, "sdk-(pattern-0)-dependencies", output.Anchor)

	_, output, err = handleAnchor(context.Background(), &mcp.CallToolRequest{}, anchorInput{
		Anchor: "sink-oneOf-2-target",
	})
	require.NoError(t, err)
	assert.Equal(t, "sink.oneOf.2.target", output.Path)
	assert.Equal(t, 2, output.BranchIndex)
}

func TestAnchorTool_InputValidation(t *testing.T) {
	result, _, err := handleAnchor(context.Background(), &mcp.CallToolRequest{}, anchorInput{})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, _, err = handleAnchor(context.Background(), &mcp.CallToolRequest{}, anchorInput{
		Path:   "a.b",
		Anchor: "a-b",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
