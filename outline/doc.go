// Package outline extracts flat property listings from JSON Schema nodes.
//
// Import path: github.com/schemalens/schemalens/outline
//
// [Extract] is the engine's entry point: given a schema node, it produces
// one [Property] descriptor per named property plus one synthetic descriptor
// per patternProperties rule, after resolving the node's $ref and allOf
// composition. It never recurses on its own - a caller expands one level at
// a time by re-invoking Extract on a descriptor's schema, which is how a
// documentation UI expands nodes lazily.
//
// Two guards bound traversal on pathological schemas. A recursion stack of
// visited path keys stops exact cycles (a property whose resolution chain
// revisits an ancestor path), and a hard depth ceiling stops recursive
// shapes whose paths grow forever without repeating. Both truncate silently:
// a cyclic or too-deep branch simply has no children.
package outline
