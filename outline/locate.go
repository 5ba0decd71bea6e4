package outline

import (
	"strconv"
	"strings"

	"github.com/schemalens/schemalens/parser"
)

// At returns the schema node at the dot-delimited path, descending through
// resolved properties, pattern slots, and oneOf branch pairs ("oneOf.2").
// The empty path returns root itself. The second return is false when any
// segment cannot be followed.
func At(root *parser.Schema, path string) (*parser.Schema, bool) {
	if root == nil {
		return nil, false
	}
	if path == "" {
		return root, true
	}

	node := root
	var prefix []string
	depth := 0
	segments := strings.Split(path, ".")
	for i := 0; i < len(segments); {
		seg := segments[i]

		if seg == "oneOf" && i+1 < len(segments) {
			idx, err := strconv.Atoi(segments[i+1])
			if err == nil && idx >= 0 {
				resolved := parser.ResolveSchema(node, root)
				if resolved == nil || idx >= len(resolved.OneOf) {
					return nil, false
				}
				node = resolved.OneOf[idx]
				prefix = append(prefix, seg, segments[i+1])
				depth++
				i += 2
				continue
			}
		}

		found := false
		for _, child := range Extract(node, prefix, depth, root, nil) {
			if child.Path[len(child.Path)-1] == seg {
				node = child.Schema
				prefix = child.Path
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
		depth++
		i++
	}
	return node, true
}

// PathDepth returns the nesting depth of the node addressed by the path
// segments: one level per property or pattern hop, with a oneOf branch
// pair ("oneOf", index) counting as a single hop. This is the depth to
// pass Extract when listing that node's children.
func PathDepth(segments []string) int {
	depth := 0
	for i := 0; i < len(segments); {
		if segments[i] == "oneOf" && i+1 < len(segments) {
			if idx, err := strconv.Atoi(segments[i+1]); err == nil && idx >= 0 {
				depth++
				i += 2
				continue
			}
		}
		depth++
		i++
	}
	return depth
}

// Flatten returns the outline of the entire document in depth-first
// document order, bounded by the extractor's cycle and depth guards.
func Flatten(root *parser.Schema) []Property {
	var out []Property
	var walk func(node *parser.Schema, path []string, depth int, stack []string)
	walk = func(node *parser.Schema, path []string, depth int, stack []string) {
		children := Extract(node, path, depth, root, stack)
		childStack := ExtendStack(stack, strings.Join(path, "."))
		for _, child := range children {
			out = append(out, child)
			walk(child.Schema, child.Path, child.Depth+1, childStack)
		}
	}
	walk(root, nil, 0, nil)
	return out
}
