package mcpserver

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	yaml "go.yaml.in/yaml/v4"

	"github.com/schemalens/schemalens/anchor"
	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

type resolveInput struct {
	Schema schemaInput `json:"schema"           jsonschema:"The schema document to resolve within"`
	Path   string      `json:"path,omitempty"   jsonschema:"Dot path of the node to resolve; empty for the document root"`
	Anchor string      `json:"anchor,omitempty" jsonschema:"Anchor form of the path; alternative to path"`
	Format string      `json:"format,omitempty" jsonschema:"Output format: yaml (default) or json"`
}

type resolveOutput struct {
	Path        string   `json:"path"`
	TypeLabel   string   `json:"type_label,omitempty"`
	Resolved    string   `json:"resolved"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Unsupported []string `json:"unsupported,omitempty"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	if input.Path != "" && input.Anchor != "" {
		return errResult(fmt.Errorf("provide either path or anchor, not both")), resolveOutput{}, nil
	}
	path := input.Path
	if input.Anchor != "" {
		path = anchor.AnchorToPath(input.Anchor)
	}

	format := strings.ToLower(input.Format)
	switch format {
	case "", "yaml", "json":
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: yaml, json", input.Format)), resolveOutput{}, nil
	}

	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	node, ok := outline.At(result.Root, path)
	if !ok {
		return errResult(fmt.Errorf("no schema node at path %q", path)), resolveOutput{}, nil
	}

	resolved, diags := parser.ResolveSchemaDetail(node, result.Root)

	var data []byte
	if format == "json" {
		data, err = json.MarshalIndent(resolved, "", "  ")
	} else {
		data, err = yaml.Marshal(resolved)
	}
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	output := resolveOutput{
		Path:        path,
		TypeLabel:   parser.TypeLabel(resolved),
		Resolved:    string(data),
		Unsupported: parser.UnsupportedFeatures(resolved),
	}
	for _, d := range diags {
		output.Diagnostics = append(output.Diagnostics, fmt.Sprintf("%s: %s", d.Ref, d.Message))
	}
	return nil, output, nil
}
