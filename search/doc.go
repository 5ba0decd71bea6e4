// Package search classifies property descriptors against a free-text query.
//
// [Classify] assigns each descriptor one of four outcomes: no match, a
// direct match on the property's own content, an indirect match somewhere
// in its descendants, or both at once. Direct matching covers the
// property's name, description, computed type label, stringified examples,
// and the descriptions of its oneOf/anyOf branches. Branch descriptions
// count as the property's own content because branches are alternative
// shapes of the same property, not separate children.
//
// Indirect matching re-runs property extraction beneath the descriptor and
// stops at the first direct-matching descendant. The descent inherits the
// extractor's cycle and depth guards, so classification terminates on any
// schema shape. Results are computed fresh per query and never cached.
package search
