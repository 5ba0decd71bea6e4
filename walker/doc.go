// Package walker provides configurable traversal of parsed schema trees.
//
// The walker visits every subschema of a document in document order and
// calls the handlers registered through functional options. Handlers
// return an [Action] to continue, skip the current node's children, or
// stop the walk entirely.
//
// Basic usage:
//
//	err := walker.Walk(result.Root,
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, s *parser.Schema) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
//
// Traversal is bounded by a configurable depth limit and by pointer-based
// cycle detection, which matters for documents whose YAML aliases alias a
// node into its own subtree. Skipped nodes are reported through
// [WithSchemaSkippedHandler].
//
// For the common collection cases, [CollectSchemas], [CollectRefs], and
// [CollectUnsupported] wrap a walk in a ready-made aggregator.
package walker
