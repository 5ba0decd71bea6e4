package outline

import (
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/parser"
)

// PatternPlaceholder is the display name shared by every property descriptor
// synthesized from a patternProperties rule. The originating regex is
// available on the descriptor's schema as OriginPattern.
const PatternPlaceholder = "{pattern}"

// Property describes one entry in a schema's property outline.
//
// Path uniquely and stably identifies the property within one schema
// version; it is the join key for everything layered on top (UI expansion
// state, search state, anchors). Descriptors are created fresh on every
// extraction call and never mutated afterwards.
type Property struct {
	// Name is the literal property key, or PatternPlaceholder for
	// descriptors synthesized from patternProperties rules
	Name string `json:"name"`
	// Schema is the resolved schema node for this property
	Schema *parser.Schema `json:"schema"`
	// Required reports whether the property is listed in its parent's
	// required set. Always false for pattern-derived descriptors.
	Required bool `json:"required"`
	// Path is the ordered list of segments from the document root. Each
	// segment is a property name, a synthetic pattern token such as
	// "(pattern-0)", or a oneOf/index pair inside a composed branch.
	Path []string `json:"path"`
	// Depth is the nesting level; root properties have depth 0
	Depth int `json:"depth"`
}

// PathKey returns the dot-joined form of the property's path, the string
// key used for expansion state, search state, and anchors.
func (p Property) PathKey() string {
	return strings.Join(p.Path, ".")
}

// IsPattern reports whether this descriptor was synthesized from a
// patternProperties rule.
func (p Property) IsPattern() bool {
	return p.Schema != nil && p.Schema.PatternDerived
}

// PatternToken returns the synthetic path segment for the pattern rule at
// the given zero-based ordinal, e.g. "(pattern-0)".
//
// The ordinal is the rule's position in the patternProperties mapping's
// document order, which makes the token stable for a given schema shape but
// not across a reordering of the mapping.
func PatternToken(ordinal int) string {
	return fmt.Sprintf("(pattern-%d)", ordinal)
}
