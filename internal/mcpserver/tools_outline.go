package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemalens/schemalens/anchor"
	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

type outlineInput struct {
	Schema    schemaInput `json:"schema"              jsonschema:"The schema document to outline"`
	Path      string      `json:"path,omitempty"      jsonschema:"Dot path of the property to outline beneath; empty for the top level"`
	Recursive bool        `json:"recursive,omitempty" jsonschema:"Flatten the entire subtree instead of one level"`
	Offset    int         `json:"offset,omitempty"    jsonschema:"Number of results to skip"`
	Limit     int         `json:"limit,omitempty"     jsonschema:"Maximum results to return"`
}

type propertySummary struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Anchor      string `json:"anchor"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Description string `json:"description,omitempty"`
	Depth       int    `json:"depth"`
}

type outlineOutput struct {
	Total      int               `json:"total"`
	Returned   int               `json:"returned"`
	Properties []propertySummary `json:"properties"`
}

func summarize(p outline.Property) propertySummary {
	s := propertySummary{
		Name:     p.Name,
		Path:     p.PathKey(),
		Anchor:   anchor.PathToAnchor(p.PathKey()),
		Type:     parser.TypeLabel(p.Schema),
		Required: p.Required,
		Depth:    p.Depth,
	}
	if p.Schema != nil {
		s.Description = p.Schema.Description
		if p.Schema.PatternDerived {
			s.Pattern = p.Schema.OriginPattern
		}
	}
	return s
}

func handleOutline(_ context.Context, _ *mcp.CallToolRequest, input outlineInput) (*mcp.CallToolResult, outlineOutput, error) {
	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), outlineOutput{}, nil
	}

	var props []outline.Property
	switch {
	case input.Path == "" && input.Recursive:
		props = outline.Flatten(result.Root)
	case input.Path == "":
		props = outline.ExtractRoot(result.Root)
	default:
		node, ok := outline.At(result.Root, input.Path)
		if !ok {
			return errResult(fmt.Errorf("no property at path %q", input.Path)), outlineOutput{}, nil
		}
		segments := strings.Split(input.Path, ".")
		props = outline.Extract(node, segments, outline.PathDepth(segments), result.Root, nil)
		if input.Recursive {
			var all []outline.Property
			var walk func(list []outline.Property, stack []string, parentKey string)
			walk = func(list []outline.Property, stack []string, parentKey string) {
				childStack := outline.ExtendStack(stack, parentKey)
				for _, p := range list {
					all = append(all, p)
					walk(outline.Extract(p.Schema, p.Path, p.Depth+1, result.Root, childStack), childStack, p.PathKey())
				}
			}
			walk(props, nil, input.Path)
			props = all
		}
	}

	limit := input.Limit
	if input.Recursive {
		limit = detailLimit(limit)
	}
	page := paginate(props, input.Offset, limit)
	output := outlineOutput{
		Total:    len(props),
		Returned: len(page),
	}
	for _, p := range page {
		output.Properties = append(output.Properties, summarize(p))
	}
	return nil, output, nil
}
