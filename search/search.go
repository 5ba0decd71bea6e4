package search

import (
	"strings"

	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

// Result pairs a property descriptor with its classification for one query.
type Result struct {
	Property outline.Property `json:"property"`
	Hit      Hit              `json:"hit"`
	// HitLabel duplicates Hit in its string form for serialized output
	HitLabel string `json:"hitLabel"`
}

// Search classifies every property in the document against query and
// returns the results in document order, outermost properties first. Only
// matched properties are returned; a query that matches nothing yields an
// empty slice.
func Search(root *parser.Schema, query string) []Result {
	var results []Result
	var walk func(node *parser.Schema, path []string, depth int, stack []string)
	walk = func(node *parser.Schema, path []string, depth int, stack []string) {
		children := outline.Extract(node, path, depth, root, stack)
		childStack := outline.ExtendStack(stack, strings.Join(path, "."))
		for _, child := range children {
			if hit := Classify(child, query, root); hit.Matched() {
				results = append(results, Result{
					Property: child,
					Hit:      hit,
					HitLabel: hit.String(),
				})
			}
			walk(child.Schema, child.Path, child.Depth+1, childStack)
		}
	}
	walk(root, nil, 0, nil)
	return results
}
