// Package parser parses JSON Schema documents and resolves their composition.
//
// Import path: github.com/schemalens/schemalens/parser
//
// The package provides three things:
//
//   - A weakly-typed [Schema] model matching the JSON Schema vocabulary,
//     with document-order-preserving property maps ([SchemaMap])
//   - A [Parser] front door accepting YAML or JSON input from files,
//     readers, or byte slices
//   - [ResolveSchema]: the reference resolver that dereferences root-relative
//     $ref pointers and performs allOf merging
//
// # Resolution Contract
//
// ResolveSchema is pure and total. It never fails: a $ref that points
// outside the document, or through a missing segment, degrades by returning
// the original node unchanged. This is deliberate - a documentation renderer
// must never crash on a malformed but realistic schema. Tests that need to
// observe why resolution degraded can use [ResolveSchemaDetail], which
// additionally returns diagnostics.
//
// Cycle safety is not the resolver's job: it expands composition one level
// only, and the traversal layers above it (outline, search) bound indirect
// self-reference with their own recursion guards.
//
// # Property Order
//
// Go maps do not preserve insertion order, but the extraction layer's
// pattern-slot ordinals and property listing are defined in terms of
// document order. [SchemaMap] keeps keys in the order they appear in the
// source document; all schema parsing goes through the YAML decoder (which
// accepts JSON as well) so that order survives decoding.
package parser
