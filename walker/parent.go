package walker

import "github.com/schemalens/schemalens/parser"

// ParentInfo provides information about a parent node in the traversal.
// This enables handlers to access ancestor nodes for context-aware processing.
type ParentInfo struct {
	// Node is the parent schema
	Node *parser.Schema

	// JSONPath is the JSON path to this parent node
	JSONPath string

	// Keyword is the schema keyword the walk descended through to reach
	// this parent from its own parent
	Keyword string

	// Parent is the grandparent, enabling ancestor chain traversal.
	// nil for the root-level parent.
	Parent *ParentInfo
}

// ParentSchema returns the immediate ancestor schema, if any.
func (wc *WalkContext) ParentSchema() (*parser.Schema, bool) {
	if wc.Parent == nil {
		return nil, false
	}
	return wc.Parent.Node, true
}

// ParentDefinition returns the nearest ancestor reached through a
// definitions or $defs keyword, if any. This identifies which named
// definition a deeply nested schema ultimately belongs to.
func (wc *WalkContext) ParentDefinition() (*parser.Schema, bool) {
	for p := wc.Parent; p != nil; p = p.Parent {
		if p.Keyword == "definitions" || p.Keyword == "$defs" {
			return p.Node, true
		}
	}
	return nil, false
}

// Ancestors returns all ancestors from immediate parent to root.
// The first element is the immediate parent, the last is the root-level
// ancestor. Returns nil if parent tracking is not enabled or there are no
// ancestors.
func (wc *WalkContext) Ancestors() []*ParentInfo {
	var ancestors []*ParentInfo
	for p := wc.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	return ancestors
}

// Depth returns the number of ancestors (nesting depth).
// Returns 0 at root level or when parent tracking is not enabled.
func (wc *WalkContext) Depth() int {
	depth := 0
	for p := wc.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// pushParent records node as the current parent for child traversal.
func (s *walkState) pushParent(node *parser.Schema, jsonPath string) {
	if !s.trackParent {
		return
	}
	s.parent = &ParentInfo{
		Node:     node,
		JSONPath: jsonPath,
		Keyword:  s.keyword,
		Parent:   s.parent,
	}
}
