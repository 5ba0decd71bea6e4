package outline

import (
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/lenserrors"
	"github.com/schemalens/schemalens/parser"
)

// MaxDepth is the nesting ceiling for extraction. Calls at a depth beyond
// it return no descriptors, which silently truncates pathological or
// adversarial schemas while leaving everything shallower fully expandable.
const MaxDepth = 10

// Extract produces the property outline for a single schema node: one
// descriptor per named property in document order, followed by one
// synthetic descriptor per patternProperties rule.
//
// node is resolved against root before its property sets are read, so a
// bare $ref or an allOf composition outlines the same as its expanded
// form. path and depth locate node within the document; stack carries the
// dot-joined paths of the schemas already being expanded on this descent
// and is how recursive schemas terminate. Callers expanding a descriptor's
// children append the current node's own path key to the stack they pass
// down; Extract never appends to the slice it receives.
//
// Extract only descends far enough to describe node's immediate
// properties. Deeper levels are produced lazily by calling it again with
// the child descriptor's schema, path, and depth.
//
// The function is total over well-formed inputs: a nil node, an exceeded
// depth, or a revisited path yields nil rather than an error. Use
// [Validate] at API boundaries where a nil node or negative depth should
// surface as a caller defect instead.
func Extract(node *parser.Schema, path []string, depth int, root *parser.Schema, stack []string) []Property {
	if node == nil || depth > MaxDepth {
		return nil
	}
	if stackContains(stack, strings.Join(path, ".")) {
		return nil
	}

	resolved := parser.ResolveSchema(node, root)
	if resolved == nil {
		return nil
	}

	var props []Property
	for name, child := range resolved.Properties.All() {
		childPath := extendPath(path, name)
		props = append(props, Property{
			Name:     name,
			Schema:   parser.ResolveSchema(child, root),
			Required: resolved.IsRequired(name),
			Path:     childPath,
			Depth:    depth,
		})
	}

	ordinal := 0
	for pattern, child := range resolved.PatternProperties.All() {
		childPath := extendPath(path, PatternToken(ordinal))
		ordinal++
		// A pattern slot can alias a schema already being expanded on
		// this descent; its key on the stack means the slot is a
		// self-reference, not a fresh child.
		if stackContains(stack, strings.Join(childPath, ".")) {
			continue
		}
		props = append(props, Property{
			Name:     PatternPlaceholder,
			Schema:   patternSchema(parser.ResolveSchema(child, root), pattern),
			Required: false,
			Path:     childPath,
			Depth:    depth,
		})
	}

	return props
}

// ExtractRoot outlines the top level of a document: the root schema's own
// properties at depth 0 with single-segment paths.
func ExtractRoot(root *parser.Schema) []Property {
	return Extract(root, nil, 0, root, nil)
}

// Validate reports defects in an extraction request. A nil node or a
// negative depth is a programming error at the call site, not a schema
// shape to degrade over, so boundaries that receive caller-supplied
// arguments check here before calling [Extract].
func Validate(node *parser.Schema, depth int) error {
	if node == nil {
		return &lenserrors.InputError{
			Argument: "node",
			Message:  "schema node must not be nil",
		}
	}
	if depth < 0 {
		return &lenserrors.InputError{
			Argument: "depth",
			Value:    depth,
			Message:  fmt.Sprintf("depth must not be negative: %d", depth),
		}
	}
	return nil
}

// patternSchema stamps a clone of the resolved pattern rule schema so the
// descriptor records its origin without mutating the document tree.
func patternSchema(s *parser.Schema, pattern string) *parser.Schema {
	if s == nil {
		s = &parser.Schema{}
	}
	out := s.Clone()
	out.PatternDerived = true
	out.OriginPattern = pattern
	return out
}

func stackContains(stack []string, key string) bool {
	for _, seen := range stack {
		if seen == key {
			return true
		}
	}
	return false
}

// extendPath copies base and appends seg, so sibling descriptors never
// share backing arrays.
func extendPath(base []string, seg string) []string {
	out := make([]string, len(base)+1)
	copy(out, base)
	out[len(base)] = seg
	return out
}

// ExtendStack returns stack plus key without sharing the backing array,
// for callers expanding a descriptor's children.
func ExtendStack(stack []string, key string) []string {
	out := make([]string, len(stack)+1)
	copy(out, stack)
	out[len(stack)] = key
	return out
}
