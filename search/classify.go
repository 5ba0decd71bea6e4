package search

import (
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

// Hit is the classification of one property against one query.
type Hit int

const (
	// HitNone means neither the property nor any descendant matches.
	HitNone Hit = iota
	// HitDirect means the property's own content matches.
	HitDirect
	// HitIndirect means only a descendant property matches.
	HitIndirect
	// HitBoth means the property and at least one descendant both match.
	HitBoth
)

// String returns the lowercase name of the hit kind.
func (h Hit) String() string {
	switch h {
	case HitDirect:
		return "direct"
	case HitIndirect:
		return "indirect"
	case HitBoth:
		return "both"
	default:
		return "none"
	}
}

// Matched reports whether the hit is anything other than HitNone.
func (h Hit) Matched() bool {
	return h != HitNone
}

// Classify determines how prop relates to query within the document rooted
// at root. An empty or whitespace-only query matches nothing.
//
// A direct hit is a case-insensitive substring match on the property's own
// content: its name, resolved description, computed type label, stringified
// examples, or the description of any oneOf/anyOf branch. An indirect hit
// is a direct hit on any descendant, found by re-running extraction beneath
// the property with the descent seeded so it cannot climb back through the
// property's own ancestors.
func Classify(prop outline.Property, query string, root *parser.Schema) Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return HitNone
	}

	direct := directMatch(prop.Name, prop.Schema, q, root)
	indirect := descendantMatch(prop, q, root)

	switch {
	case direct && indirect:
		return HitBoth
	case direct:
		return HitDirect
	case indirect:
		return HitIndirect
	default:
		return HitNone
	}
}

// directMatch reports a case-insensitive match against the property's own
// content. q must already be lowercased.
func directMatch(name string, schema *parser.Schema, q string, root *parser.Schema) bool {
	if strings.Contains(strings.ToLower(name), q) {
		return true
	}
	s := parser.ResolveSchema(schema, root)
	if s == nil {
		return false
	}
	if strings.Contains(strings.ToLower(s.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(parser.TypeLabel(s)), q) {
		return true
	}
	for _, ex := range s.Examples {
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", ex)), q) {
			return true
		}
	}
	for _, branch := range s.OneOf {
		if branchDescriptionMatch(branch, q, root) {
			return true
		}
	}
	for _, branch := range s.AnyOf {
		if branchDescriptionMatch(branch, q, root) {
			return true
		}
	}
	return false
}

func branchDescriptionMatch(branch *parser.Schema, q string, root *parser.Schema) bool {
	resolved := parser.ResolveSchema(branch, root)
	return resolved != nil && strings.Contains(strings.ToLower(resolved.Description), q)
}

// descendantMatch walks the subtree beneath prop looking for a direct
// match, stopping at the first one. The extraction stack starts from the
// property's ancestor path keys so a recursive schema cannot loop the
// descent back through nodes already above it.
func descendantMatch(prop outline.Property, q string, root *parser.Schema) bool {
	stack := ancestorKeys(prop.Path)
	return searchSubtree(prop.Schema, prop.Path, prop.Depth+1, q, root, stack)
}

func searchSubtree(node *parser.Schema, path []string, depth int, q string, root *parser.Schema, stack []string) bool {
	children := outline.Extract(node, path, depth, root, stack)
	for _, child := range children {
		if directMatch(child.Name, child.Schema, q, root) {
			return true
		}
	}
	childStack := outline.ExtendStack(stack, strings.Join(path, "."))
	for _, child := range children {
		if searchSubtree(child.Schema, child.Path, child.Depth+1, q, root, childStack) {
			return true
		}
	}
	return false
}

// ancestorKeys returns the dot-joined strict prefixes of path, from the
// document root ("") up to but excluding the path itself.
func ancestorKeys(path []string) []string {
	keys := make([]string, 0, len(path))
	keys = append(keys, "")
	for i := 1; i < len(path); i++ {
		keys = append(keys, strings.Join(path[:i], "."))
	}
	return keys
}
