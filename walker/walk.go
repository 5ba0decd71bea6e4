package walker

import (
	"fmt"

	"github.com/schemalens/schemalens/parser"
)

// handleRef processes a $ref if ref tracking is enabled.
// It calls the ref handler if set, and returns Stop if the handler requests it.
func (w *Walker) handleRef(ref string, jsonPath string, state *walkState) Action {
	if !w.trackRefs || ref == "" {
		return Continue
	}

	refInfo := &RefInfo{
		Ref:        ref,
		SourcePath: jsonPath,
	}

	if w.onRef != nil {
		wc := state.buildContext(jsonPath)
		wc.CurrentRef = refInfo
		action := w.onRef(wc, refInfo)
		releaseContext(wc)
		if action == Stop {
			w.stopped = true
			return Stop
		}
	}

	return Continue
}

// walkSchema visits node and recurses into its subschemas in document order.
func (w *Walker) walkSchema(node *parser.Schema, jsonPath string, depth int, state *walkState) error {
	if node == nil || w.stopped {
		return nil
	}
	if depth > w.maxDepth {
		if w.onSchemaSkipped != nil {
			w.onSchemaSkipped("depth", node, jsonPath)
		}
		return nil
	}
	if w.visited[node] {
		if w.onSchemaSkipped != nil {
			w.onSchemaSkipped("cycle", node, jsonPath)
		}
		return nil
	}
	w.visited[node] = true

	if w.handleRef(node.Ref, jsonPath, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onSchema != nil {
		wc := state.buildContext(jsonPath)
		if w.trackRefs && node.Ref != "" {
			wc.CurrentRef = &RefInfo{Ref: node.Ref, SourcePath: jsonPath}
		}
		continueToChildren = w.handleAction(w.onSchema(wc, node))
		releaseContext(wc)
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	childBase := state.clone()
	childBase.pushParent(node, jsonPath)

	if err := w.walkNamedMap(node.Properties, jsonPath, "properties", depth, childBase); err != nil {
		return err
	}
	if err := w.walkNamedMap(node.PatternProperties, jsonPath, "patternProperties", depth, childBase); err != nil {
		return err
	}
	if err := w.walkNamedMap(node.Definitions, jsonPath, "definitions", depth, childBase); err != nil {
		return err
	}
	if err := w.walkNamedMap(node.Defs, jsonPath, "$defs", depth, childBase); err != nil {
		return err
	}

	if err := w.walkItems(node, jsonPath, depth, childBase); err != nil {
		return err
	}
	if ap := node.AdditionalPropertiesSchema(); ap != nil {
		if err := w.walkKeyword(ap, jsonPath, "additionalProperties", depth, childBase); err != nil {
			return err
		}
	}

	if err := w.walkList(node.AllOf, jsonPath, "allOf", depth, childBase); err != nil {
		return err
	}
	if err := w.walkList(node.AnyOf, jsonPath, "anyOf", depth, childBase); err != nil {
		return err
	}
	if err := w.walkList(node.OneOf, jsonPath, "oneOf", depth, childBase); err != nil {
		return err
	}

	single := []struct {
		keyword string
		schema  *parser.Schema
	}{
		{"not", node.Not},
		{"if", node.If},
		{"then", node.Then},
		{"else", node.Else},
		{"contains", node.Contains},
		{"propertyNames", node.PropertyNames},
	}
	for _, sub := range single {
		if sub.schema == nil {
			continue
		}
		if err := w.walkKeyword(sub.schema, jsonPath, sub.keyword, depth, childBase); err != nil {
			return err
		}
	}

	return nil
}

// walkNamedMap walks an ordered schema map under the given keyword,
// dispatching to the keyword-specific handler before recursing.
func (w *Walker) walkNamedMap(m *parser.SchemaMap, basePath, keyword string, depth int, state *walkState) error {
	for name, sub := range m.All() {
		if w.stopped || sub == nil {
			continue
		}
		childPath := fmt.Sprintf("%s.%s['%s']", basePath, keyword, name)
		childState := state.clone()
		childState.keyword = keyword
		childState.name = name
		if keyword == "definitions" || keyword == "$defs" {
			childState.isDefinition = true
		}

		if !w.dispatchNamed(keyword, name, sub, childPath, childState) {
			if w.stopped {
				return nil
			}
			continue
		}
		if err := w.walkSchema(sub, childPath, depth+1, childState); err != nil {
			return err
		}
	}
	return nil
}

// dispatchNamed calls the keyword-specific handler for a named child.
// Returns true when the walk should descend into the child.
func (w *Walker) dispatchNamed(keyword, name string, sub *parser.Schema, jsonPath string, state *walkState) bool {
	var handler func(wc *WalkContext) Action
	switch keyword {
	case "properties":
		if w.onProperty != nil {
			handler = func(wc *WalkContext) Action { return w.onProperty(wc, name, sub) }
		}
	case "patternProperties":
		if w.onPattern != nil {
			handler = func(wc *WalkContext) Action { return w.onPattern(wc, name, sub) }
		}
	case "definitions", "$defs":
		if w.onDefinition != nil {
			handler = func(wc *WalkContext) Action { return w.onDefinition(wc, name, sub) }
		}
	}
	if handler == nil {
		return true
	}

	wc := state.buildContext(jsonPath)
	descend := w.handleAction(handler(wc))
	releaseContext(wc)
	return descend && !w.stopped
}

// walkItems walks the items keyword in both its single and tuple forms.
func (w *Walker) walkItems(node *parser.Schema, basePath string, depth int, state *walkState) error {
	switch items := node.Items.(type) {
	case *parser.Schema:
		return w.walkKeyword(items, basePath, "items", depth, state)
	case []*parser.Schema:
		for i, sub := range items {
			if w.stopped {
				return nil
			}
			childState := state.clone()
			childState.keyword = "items"
			childState.name = ""
			childPath := fmt.Sprintf("%s.items[%d]", basePath, i)
			if err := w.walkSchema(sub, childPath, depth+1, childState); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkList walks an indexed composition list (allOf, anyOf, oneOf).
func (w *Walker) walkList(list []*parser.Schema, basePath, keyword string, depth int, state *walkState) error {
	for i, sub := range list {
		if w.stopped {
			return nil
		}
		childState := state.clone()
		childState.keyword = keyword
		childState.name = ""
		childPath := fmt.Sprintf("%s.%s[%d]", basePath, keyword, i)
		if err := w.walkSchema(sub, childPath, depth+1, childState); err != nil {
			return err
		}
	}
	return nil
}

// walkKeyword walks a single-valued subschema keyword.
func (w *Walker) walkKeyword(sub *parser.Schema, basePath, keyword string, depth int, state *walkState) error {
	childState := state.clone()
	childState.keyword = keyword
	childState.name = ""
	return w.walkSchema(sub, basePath+"."+keyword, depth+1, childState)
}
