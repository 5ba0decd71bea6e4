package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemalens/schemalens/anchor"
)

type anchorInput struct {
	Path   string `json:"path,omitempty"   jsonschema:"Dot-delimited property path to convert to an anchor"`
	Anchor string `json:"anchor,omitempty" jsonschema:"Dash-delimited anchor to convert to a path"`
}

type anchorOutput struct {
	Path        string `json:"path"`
	Anchor      string `json:"anchor"`
	BranchIndex int    `json:"branch_index"`
}

func handleAnchor(_ context.Context, _ *mcp.CallToolRequest, input anchorInput) (*mcp.CallToolResult, anchorOutput, error) {
	if input.Path != "" && input.Anchor != "" {
		return errResult(fmt.Errorf("provide either path or anchor, not both")), anchorOutput{}, nil
	}
	if input.Path == "" && input.Anchor == "" {
		return errResult(fmt.Errorf("one of path or anchor is required")), anchorOutput{}, nil
	}

	output := anchorOutput{}
	if input.Path != "" {
		output.Path = input.Path
		output.Anchor = anchor.PathToAnchor(input.Path)
	} else {
		output.Path = anchor.AnchorToPath(input.Anchor)
		output.Anchor = input.Anchor
	}
	output.BranchIndex = anchor.BranchIndex(output.Path)
	return nil, output, nil
}
