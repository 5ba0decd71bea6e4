package parser

import (
	"fmt"
	"strconv"
)

// DocumentStats contains statistical information about a schema document,
// computed once at parse time.
type DocumentStats struct {
	// SchemaCount is the total number of schema nodes in the document
	SchemaCount int
	// PropertyCount is the total number of named properties
	PropertyCount int
	// PatternPropertyCount is the total number of patternProperties rules
	PatternPropertyCount int
	// RefCount is the number of $ref occurrences
	RefCount int
	// DefinitionCount is the number of entries under definitions and $defs
	DefinitionCount int
	// MaxNestingDepth is the deepest structural nesting observed
	MaxNestingDepth int
}

// String returns a human-readable summary of the stats.
func (s DocumentStats) String() string {
	return fmt.Sprintf("schemas: %d, properties: %d, patterns: %d, refs: %d, definitions: %d, max depth: %d",
		s.SchemaCount, s.PropertyCount, s.PatternPropertyCount, s.RefCount, s.DefinitionCount, s.MaxNestingDepth)
}

// collectStats walks the structural tree of the document and fills in stats
// plus per-node unsupported-feature warnings. The decoded document is a
// finite tree (refs are plain strings, never Go pointers back into the
// tree), so no cycle guard is needed here.
func collectStats(root *Schema) (DocumentStats, []string) {
	var stats DocumentStats
	var warnings []string

	visitSubschemas(root, "$", 0, func(path string, s *Schema, depth int) {
		stats.SchemaCount++
		stats.PropertyCount += s.Properties.Len()
		stats.PatternPropertyCount += s.PatternProperties.Len()
		if s.Ref != "" {
			stats.RefCount++
		}
		stats.DefinitionCount += s.Definitions.Len() + s.Defs.Len()
		if depth > stats.MaxNestingDepth {
			stats.MaxNestingDepth = depth
		}
		for _, feature := range UnsupportedFeatures(s) {
			warnings = append(warnings, fmt.Sprintf("%s: unsupported keyword: %s", path, feature))
		}
	})

	return stats, warnings
}

// visitSubschemas invokes fn for the node and every structurally nested
// subschema, depth-first in document order.
func visitSubschemas(s *Schema, path string, depth int, fn func(path string, s *Schema, depth int)) {
	if s == nil {
		return
	}
	fn(path, s, depth)

	visitMap := func(m *SchemaMap, keyword string) {
		for k, v := range m.All() {
			visitSubschemas(v, path+"."+keyword+"."+k, depth+1, fn)
		}
	}
	visitList := func(list []*Schema, keyword string) {
		for i, v := range list {
			visitSubschemas(v, path+"."+keyword+"["+strconv.Itoa(i)+"]", depth+1, fn)
		}
	}
	visitOne := func(v *Schema, keyword string) {
		visitSubschemas(v, path+"."+keyword, depth+1, fn)
	}

	visitMap(s.Properties, "properties")
	visitMap(s.PatternProperties, "patternProperties")
	switch items := s.Items.(type) {
	case *Schema:
		visitOne(items, "items")
	case []*Schema:
		visitList(items, "items")
	}
	if sub := s.AdditionalPropertiesSchema(); sub != nil {
		visitOne(sub, "additionalProperties")
	}
	visitList(s.AllOf, "allOf")
	visitList(s.AnyOf, "anyOf")
	visitList(s.OneOf, "oneOf")
	if s.Not != nil {
		visitOne(s.Not, "not")
	}
	if s.If != nil {
		visitOne(s.If, "if")
	}
	if s.Then != nil {
		visitOne(s.Then, "then")
	}
	if s.Else != nil {
		visitOne(s.Else, "else")
	}
	if s.Contains != nil {
		visitOne(s.Contains, "contains")
	}
	if s.PropertyNames != nil {
		visitOne(s.PropertyNames, "propertyNames")
	}
	visitMap(s.Definitions, "definitions")
	visitMap(s.Defs, "$defs")
}
