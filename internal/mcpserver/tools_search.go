package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemalens/schemalens/search"
)

type searchInput struct {
	Schema schemaInput `json:"schema"           jsonschema:"The schema document to search"`
	Query  string      `json:"query"            jsonschema:"Case-insensitive text to search for"`
	Hit    string      `json:"hit,omitempty"    jsonschema:"Filter results by classification: direct, indirect, or both"`
	Offset int         `json:"offset,omitempty" jsonschema:"Number of results to skip"`
	Limit  int         `json:"limit,omitempty"  jsonschema:"Maximum results to return"`
}

type searchMatch struct {
	propertySummary
	Hit string `json:"hit"`
}

type searchOutput struct {
	Query    string        `json:"query"`
	Total    int           `json:"total"`
	Returned int           `json:"returned"`
	Matches  []searchMatch `json:"matches"`
}

func handleSearch(_ context.Context, _ *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, searchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return errResult(fmt.Errorf("query must not be empty")), searchOutput{}, nil
	}
	switch input.Hit {
	case "", "direct", "indirect", "both":
	default:
		return errResult(fmt.Errorf("invalid hit value %q; valid values: direct, indirect, both", input.Hit)), searchOutput{}, nil
	}

	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), searchOutput{}, nil
	}

	results := search.Search(result.Root, input.Query)
	if input.Hit != "" {
		filtered := results[:0]
		for _, r := range results {
			if r.HitLabel == input.Hit {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	page := paginate(results, input.Offset, input.Limit)
	output := searchOutput{
		Query:    input.Query,
		Total:    len(results),
		Returned: len(page),
	}
	for _, r := range page {
		output.Matches = append(output.Matches, searchMatch{
			propertySummary: summarize(r.Property),
			Hit:             r.HitLabel,
		})
	}
	return nil, output, nil
}
